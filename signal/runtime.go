// Package signal implements the reactive signal runtime (emission,
// presence/absence reactions, gathered values) and the process combinators
// built on top of it (Emit, EmitValue, AwaitImmediate, Await, Present).
//
// It depends on both runtime and process: the signal-process combinators
// below produce process.Process/process.ProcessMut values, so unlike
// runtime and process this package cannot live "under" process without
// creating an import cycle.
package signal

import (
	"github.com/google/uuid"

	"github.com/reactive-go/reactrust/internal/contract"
	"github.com/reactive-go/reactrust/runtime"
)

// Runtime holds the single-threaded mutable state that belongs to one
// signal: whether it has been emitted this instant, the three reaction
// queues, the guard bit that prevents scheduling more than one
// later-on-absent flusher per instant, and the default/current/previous
// value machinery a value-carrying signal needs.
//
// V is the externally observable value type (e.g. the accumulated slice
// for a collecting signal, or struct{} for a pure signal); E is the type of
// a single emitted payload, folded into V by gather.
type Runtime[V, E any] struct {
	id uuid.UUID

	emitted bool

	onPresent      []runtime.Continuation[struct{}]
	laterOnPresent []runtime.Continuation[V]
	laterOnAbsent  []runtime.Continuation[struct{}]

	laterOnAbsentScheduled bool

	defaultValue  V
	currentValue  V
	previousValue V
	previousSet   bool

	gather        func(E, *V)
	gatheredCount int
}

// NewRuntime constructs a signal Runtime with the given default value and
// gather function, which folds an emitted payload into the signal's
// current-instant value.
func NewRuntime[V, E any](defaultValue V, gather func(E, *V)) *Runtime[V, E] {
	return &Runtime[V, E]{
		id:           uuid.New(),
		defaultValue: defaultValue,
		currentValue: defaultValue,
		gather:       gather,
	}
}

// ID is the signal's identity, included in the log line Emit writes so log
// lines can be correlated across the instants a given signal is emitted in.
func (r *Runtime[V, E]) ID() uuid.UUID {
	return r.id
}

// Emitted reports whether the signal has been emitted in the instant
// currently being processed.
func (r *Runtime[V, E]) Emitted() bool {
	return r.emitted
}

// CurrentValue returns the value gathered so far in the current instant (or
// the default, if the signal has not been emitted yet this instant).
func (r *Runtime[V, E]) CurrentValue() V {
	return r.currentValue
}

// PreviousValue returns the value gathered in the most recent completed
// instant in which the signal was emitted; instants in which it was absent
// leave it unchanged. It panics with a contract violation if no instant in
// which the signal was emitted has completed yet: the value is genuinely
// unready, not merely defaulted.
func (r *Runtime[V, E]) PreviousValue() V {
	if !r.previousSet {
		panic(contract.New(contract.SignalValueUnready, nil))
	}
	return r.previousValue
}

func (r *Runtime[V, E]) scheduleEndOfInstantReset(s *runtime.Scheduler) {
	s.OnEndOfInstant(runtime.ContinuationFunc[struct{}](func(s *runtime.Scheduler, _ struct{}) {
		r.emitted = false
		r.onPresent = nil
		r.laterOnPresent = nil
		r.laterOnAbsentScheduled = false

		r.previousValue = r.currentValue
		r.previousSet = true
		r.currentValue = r.defaultValue
	}))
}

// Emit marks the signal present for the rest of the current instant and
// folds value into its current-instant value via the signal's gather
// function. It is idempotent within an instant: a second Emit in the same
// instant is a no-op (value is silently dropped).
//
// Ordering matters here, and must not be reordered: the end-of-instant
// reset hook is registered before the value is gathered (harmless, since it
// only runs at end-of-instant, but it keeps registration grouped with the
// "first emit this instant" guard above it); the later_on_absent queue is
// purged only after the value has been gathered, which is what makes
// absent-exclusion hold even when later_on_absent was registered earlier in
// this same instant, before this Emit ran.
func (r *Runtime[V, E]) Emit(s *runtime.Scheduler, value E) {
	if r.emitted {
		return
	}
	r.emitted = true
	r.scheduleEndOfInstantReset(s)

	r.gather(value, &r.currentValue)
	r.gatheredCount++

	s.Logger().Debug().
		Str("signal_id", r.ID().String()).
		Int("gathered_count", r.gatheredCount).
		Log("signal emitted")

	r.laterOnAbsent = nil
	r.laterOnAbsentScheduled = false

	r.drainOnPresent(s)
	r.drainLaterOnPresent(s)
}

func (r *Runtime[V, E]) drainOnPresent(s *runtime.Scheduler) {
	pending := r.onPresent
	r.onPresent = nil
	for _, k := range pending {
		s.OnCurrentInstant(k)
	}
}

func (r *Runtime[V, E]) drainLaterOnPresent(s *runtime.Scheduler) {
	pending := r.laterOnPresent
	r.laterOnPresent = nil
	for _, k := range pending {
		k := k
		s.OnNextInstant(runtime.ContinuationFunc[struct{}](func(s *runtime.Scheduler, _ struct{}) {
			k.Call(s, r.previousValue)
		}))
	}
}

// OnPresent registers k to run during the current instant if the signal is
// (or becomes) present during it.
func (r *Runtime[V, E]) OnPresent(s *runtime.Scheduler, k runtime.Continuation[struct{}]) {
	if r.emitted {
		s.OnCurrentInstant(k)
		return
	}
	r.onPresent = append(r.onPresent, k)
}

// LaterOnPresent registers k to run during the next instant if the signal
// is present during the current one, receiving the value the signal
// carried in the instant it was present (delivered as that instant's
// "previous value" once the clock has ticked).
func (r *Runtime[V, E]) LaterOnPresent(s *runtime.Scheduler, k runtime.Continuation[V]) {
	if r.emitted {
		s.OnNextInstant(runtime.ContinuationFunc[struct{}](func(s *runtime.Scheduler, _ struct{}) {
			k.Call(s, r.previousValue)
		}))
		return
	}
	r.laterOnPresent = append(r.laterOnPresent, k)
}

// LaterOnAbsent registers k to run during the next instant if the signal
// turns out to have been absent throughout the current one, detected,
// necessarily, only once the following instant begins.
func (r *Runtime[V, E]) LaterOnAbsent(s *runtime.Scheduler, k runtime.Continuation[struct{}]) {
	if r.emitted {
		return
	}
	r.laterOnAbsent = append(r.laterOnAbsent, k)

	if !r.laterOnAbsentScheduled {
		r.laterOnAbsentScheduled = true
		s.OnNextInstant(runtime.ContinuationFunc[struct{}](func(s *runtime.Scheduler, _ struct{}) {
			r.laterOnAbsentScheduled = false
			if r.emitted {
				r.laterOnAbsent = nil
				return
			}
			pending := r.laterOnAbsent
			r.laterOnAbsent = nil
			for _, k := range pending {
				s.OnCurrentInstant(k)
			}
		}))
	}
}
