package signal

import (
	"github.com/reactive-go/reactrust/internal/contract"
	"github.com/reactive-go/reactrust/process"
	"github.com/reactive-go/reactrust/runtime"
)

// Emit returns a Process that, when called, emits value on s's runtime and
// immediately hands struct{}{} onward: emission itself happens within the
// instant this process runs in, it does not wait for anything.
func Emit[V, E any](s Signal[V, E], value E) process.Process[struct{}] {
	return process.ProcessFunc[struct{}](func(sched *runtime.Scheduler, next runtime.Continuation[struct{}]) {
		s.Runtime().Emit(sched, value)
		next.Call(sched, struct{}{})
	})
}

// EmitValue is an alias for Emit, named to match call sites that read more
// naturally as "emit this value" than "emit on this signal".
func EmitValue[V, E any](s Signal[V, E], value E) process.Process[struct{}] {
	return Emit(s, value)
}

// AwaitImmediate returns a Process that completes, yielding no value, within
// the first instant in which s is present: this instant if s is or becomes
// present in it, otherwise the later instant in which s is next emitted.
func AwaitImmediate[V, E any](s Signal[V, E]) process.Process[struct{}] {
	return process.ProcessFunc[struct{}](func(sched *runtime.Scheduler, next runtime.Continuation[struct{}]) {
		s.Runtime().OnPresent(sched, next)
	})
}

// Await returns a Process that waits for s to be present, then completes in
// the following instant with the value s carried while present.
func Await[V, E any](s Signal[V, E]) process.Process[V] {
	return process.ProcessFunc[V](func(sched *runtime.Scheduler, next runtime.Continuation[V]) {
		s.Runtime().LaterOnPresent(sched, next)
	})
}

// EmitMut is the re-runnable counterpart of Emit, used when emitting a
// value is one branch of a WhileLoop body.
func EmitMut[V, E any](s Signal[V, E], value E) process.ProcessMut[struct{}] {
	return process.ProcessMutFunc[struct{}](func(sched *runtime.Scheduler, next runtime.Continuation[process.Pair[process.ProcessMut[struct{}], struct{}]]) {
		s.Runtime().Emit(sched, value)
		next.Call(sched, process.Pair[process.ProcessMut[struct{}], struct{}]{
			First:  EmitMut(s, value),
			Second: struct{}{},
		})
	})
}

// AwaitImmediateMut is the re-runnable counterpart of AwaitImmediate.
func AwaitImmediateMut[V, E any](s Signal[V, E]) process.ProcessMut[struct{}] {
	return process.ProcessMutFunc[struct{}](func(sched *runtime.Scheduler, next runtime.Continuation[process.Pair[process.ProcessMut[struct{}], struct{}]]) {
		s.Runtime().OnPresent(sched, runtime.ContinuationFunc[struct{}](func(sched *runtime.Scheduler, _ struct{}) {
			next.Call(sched, process.Pair[process.ProcessMut[struct{}], struct{}]{
				First:  AwaitImmediateMut(s),
				Second: struct{}{},
			})
		}))
	})
}

// AwaitMut is the re-runnable counterpart of Await, used when a loop body
// waits on a signal every iteration.
func AwaitMut[V, E any](s Signal[V, E]) process.ProcessMut[V] {
	return process.ProcessMutFunc[V](func(sched *runtime.Scheduler, next runtime.Continuation[process.Pair[process.ProcessMut[V], V]]) {
		s.Runtime().LaterOnPresent(sched, runtime.ContinuationFunc[V](func(sched *runtime.Scheduler, v V) {
			next.Call(sched, process.Pair[process.ProcessMut[V], V]{
				First:  AwaitMut(s),
				Second: v,
			})
		}))
	})
}

// presentCell is the one-shot cell shared by Present's two branches: the
// first branch to fire consumes it; the reference semantics guarantee the
// emission path evicts the later_on_absent registration so it can never
// try to consume an already-taken continuation (Runtime.Emit purges
// later_on_absent on emission, so the losing branch here is simply never
// invoked, not invoked-and-discarded).
type presentCell[V any] struct {
	taken bool
	next  runtime.Continuation[V]
}

func (c *presentCell[V]) take() runtime.Continuation[V] {
	if c.taken {
		panic(contract.New(contract.JoinCellExhausted, nil))
	}
	c.taken = true
	return c.next
}

// Present returns a Process that registers ifPresent to run this instant if
// s becomes present, or ifAbsent to run next instant if s was absent
// throughout this one. Exactly one of the two ever runs.
func Present[V, E, R any](s Signal[V, E], ifPresent process.Process[R], ifAbsent process.Process[R]) process.Process[R] {
	return process.ProcessFunc[R](func(sched *runtime.Scheduler, next runtime.Continuation[R]) {
		cell := &presentCell[R]{next: next}

		s.Runtime().OnPresent(sched, runtime.ContinuationFunc[struct{}](func(sched *runtime.Scheduler, _ struct{}) {
			ifPresent.Call(sched, cell.take())
		}))
		s.Runtime().LaterOnAbsent(sched, runtime.ContinuationFunc[struct{}](func(sched *runtime.Scheduler, _ struct{}) {
			ifAbsent.Call(sched, cell.take())
		}))
	})
}

// PresentMut is the re-runnable counterpart of Present: each run
// reconstructs Present over fresh re-runnable branches for the next run,
// matching the reconstruction discipline every ProcessMut combinator in
// this module follows.
func PresentMut[V, E, R any](s Signal[V, E], ifPresent process.ProcessMut[R], ifAbsent process.ProcessMut[R]) process.ProcessMut[R] {
	return process.ProcessMutFunc[R](func(sched *runtime.Scheduler, next runtime.Continuation[process.Pair[process.ProcessMut[R], R]]) {
		cell := &struct{ taken bool }{}

		s.Runtime().OnPresent(sched, runtime.ContinuationFunc[struct{}](func(sched *runtime.Scheduler, _ struct{}) {
			ifPresent.CallMut(sched, runtime.ContinuationFunc[process.Pair[process.ProcessMut[R], R]](
				func(sched *runtime.Scheduler, pair process.Pair[process.ProcessMut[R], R]) {
					if cell.taken {
						panic(contract.New(contract.JoinCellExhausted, nil))
					}
					cell.taken = true
					next.Call(sched, process.Pair[process.ProcessMut[R], R]{
						First:  PresentMut(s, pair.First, ifAbsent),
						Second: pair.Second,
					})
				}))
		}))
		s.Runtime().LaterOnAbsent(sched, runtime.ContinuationFunc[struct{}](func(sched *runtime.Scheduler, _ struct{}) {
			ifAbsent.CallMut(sched, runtime.ContinuationFunc[process.Pair[process.ProcessMut[R], R]](
				func(sched *runtime.Scheduler, pair process.Pair[process.ProcessMut[R], R]) {
					if cell.taken {
						panic(contract.New(contract.JoinCellExhausted, nil))
					}
					cell.taken = true
					next.Call(sched, process.Pair[process.ProcessMut[R], R]{
						First:  PresentMut(s, ifPresent, pair.First),
						Second: pair.Second,
					})
				}))
		}))
	})
}
