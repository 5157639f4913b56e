package runtime

import (
	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"

	"github.com/reactive-go/reactrust/internal/contract"
)

// thunk is what the three instant pools actually hold: a zero-argument
// Continuation, i.e. one already closed over whatever value it resumes
// with. Combinators build these with Continuation.Call against struct{}{}.
type thunk = Continuation[struct{}]

// Scheduler drives the three ordered instant pools (current, end-of-instant,
// next) that every process and signal in this module is built on top of.
// It is not safe for concurrent use: the whole point of the runtime is a
// single-threaded, cooperative notion of an "instant".
type Scheduler struct {
	current      []thunk
	endOfInstant []thunk
	next         []thunk

	logger *logiface.Logger[*izerolog.Event]

	instantBudget int
	instantCount  int

	running bool
}

// SchedulerOption configures a Scheduler at construction time, following the
// functional-options convention the teacher's event loop uses for its own
// construction (LoopOption/resolveLoopOptions).
type SchedulerOption func(*Scheduler)

// WithLogger attaches a structured logger. A nil logger (or omitting this
// option) disables all scheduler logging; logiface.Logger is nil-safe, so
// every call site below works unconditionally whether or not this option
// was given.
func WithLogger(logger *logiface.Logger[*izerolog.Event]) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithInstantBudget sets a soft rail on how many instants Execute will run
// before it starts logging a warning on every subsequent instant. It never
// aborts execution (this runtime has no cancellation primitive), it only
// gives an operator visibility into a reactive program that isn't
// terminating. The default, zero, means unlimited.
func WithInstantBudget(n int) SchedulerOption {
	return func(s *Scheduler) {
		s.instantBudget = n
	}
}

// NewScheduler constructs a Scheduler ready to have continuations scheduled
// on it and driven via Execute.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Logger returns the scheduler's attached logger, which may be nil. Signal
// runtimes and other packages that want to log through the same sink should
// use this rather than holding their own reference, so WithLogger remains
// the single place logging is configured.
func (s *Scheduler) Logger() *logiface.Logger[*izerolog.Event] {
	return s.logger
}

// OnCurrentInstant schedules k to run within the current instant, i.e.
// before the clock is allowed to tick.
func (s *Scheduler) OnCurrentInstant(k thunk) {
	s.current = append(s.current, k)
}

// OnEndOfInstant schedules k to run once the current-instant pool has
// reached a fixed point, but still before the clock ticks. End-of-instant
// continuations that themselves schedule more current or end-of-instant
// work are folded back into the same instant.
func (s *Scheduler) OnEndOfInstant(k thunk) {
	s.endOfInstant = append(s.endOfInstant, k)
}

// OnNextInstant schedules k to run starting with the next instant, after
// the clock has ticked.
func (s *Scheduler) OnNextInstant(k thunk) {
	s.next = append(s.next, k)
}

// currentInstant drains the current-instant pool, LIFO, until it is empty.
// Continuations popped from it may themselves push more work onto current
// or end-of-instant; draining only stops once both are exhausted by
// Instant's fixed-point loop.
func (s *Scheduler) currentInstant() {
	for len(s.current) > 0 {
		n := len(s.current) - 1
		k := s.current[n]
		s.current[n] = nil
		s.current = s.current[:n]
		k.Call(s, struct{}{})
	}
}

// endOfInstantDrain drains the end-of-instant pool, LIFO, once.
func (s *Scheduler) endOfInstantDrain() {
	for len(s.endOfInstant) > 0 {
		n := len(s.endOfInstant) - 1
		k := s.endOfInstant[n]
		s.endOfInstant[n] = nil
		s.endOfInstant = s.endOfInstant[:n]
		k.Call(s, struct{}{})
	}
}

// Instant runs one full logical tick: current-instant and end-of-instant
// continuations are drained to a fixed point (any of either kind scheduled
// as a side effect of draining the other is folded into the same instant),
// then the next-instant pool becomes the new current-instant pool. It
// returns true if there is more work left to do (the new current pool is
// non-empty), false once the program has quiesced.
func (s *Scheduler) Instant() bool {
	s.logger.Debug().
		Int("current", len(s.current)).
		Int("end_of_instant", len(s.endOfInstant)).
		Int("next", len(s.next)).
		Log("instant boundary")

	for len(s.current) > 0 || len(s.endOfInstant) > 0 {
		s.currentInstant()
		s.endOfInstantDrain()
	}

	s.current, s.next = s.next, s.current[:0]
	s.instantCount++

	if budget := s.instantBudget; budget > 0 && s.instantCount > budget {
		s.logger.Warning().
			Int("instant_count", s.instantCount).
			Int("instant_budget", budget).
			Log("scheduler exceeded its configured instant budget")
	}

	return len(s.current) > 0
}

// Execute runs instants until the scheduler has no more scheduled work. It
// panics with a *contract.Violation of kind contract.ReentrantExecute if
// called from within a continuation it is already driving. Execute is not
// reentrant, matching the single-threaded, single-pass design of the
// original's own top-level execute().
func (s *Scheduler) Execute() {
	if s.running {
		panic(contract.New(contract.ReentrantExecute, nil))
	}
	s.running = true
	defer func() { s.running = false }()

	for s.Instant() {
	}
}
