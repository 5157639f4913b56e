// Package process implements the reactive process algebra: Process and
// ProcessMut, their combinators (Value, Pause, Map, Flatten, AndThen, Join,
// WhileLoop), and the top-level ExecuteProcess driver.
//
// Go generics do not allow a method to introduce type parameters beyond
// those of its receiver, so unlike the original's trait methods (Process::map,
// Process::join, ...) every combinator here is a package-level generic
// function rather than a method on Process.
package process

import (
	"github.com/reactive-go/reactrust/internal/contract"
	"github.com/reactive-go/reactrust/runtime"
)

// Process is a reactive computation that, once Call is invoked, runs to
// completion within zero or more instants and hands its result to next
// exactly once.
type Process[V any] interface {
	Call(s *runtime.Scheduler, next runtime.Continuation[V])
}

// ProcessFunc adapts a plain function to a Process.
type ProcessFunc[V any] func(s *runtime.Scheduler, next runtime.Continuation[V])

// Call invokes the wrapped function.
func (f ProcessFunc[V]) Call(s *runtime.Scheduler, next runtime.Continuation[V]) {
	f(s, next)
}

// ProcessMut is a re-runnable Process: each CallMut hands next both the
// produced value and a fresh ProcessMut of equivalent behavior, ready to be
// called again. This is how looping constructs are expressed without a
// process ever being invoked twice.
type ProcessMut[V any] interface {
	CallMut(s *runtime.Scheduler, next runtime.Continuation[Pair[ProcessMut[V], V]])
}

// ProcessMutFunc adapts a plain function to a ProcessMut.
type ProcessMutFunc[V any] func(s *runtime.Scheduler, next runtime.Continuation[Pair[ProcessMut[V], V]])

// CallMut invokes the wrapped function.
func (f ProcessMutFunc[V]) CallMut(s *runtime.Scheduler, next runtime.Continuation[Pair[ProcessMut[V], V]]) {
	f(s, next)
}

// Pair is a 2-tuple, used to carry a re-runnable process alongside the value
// it just produced (the shape ProcessMut.CallMut resumes with).
type Pair[A, B any] struct {
	First  A
	Second B
}

// Value returns a Process that, in the instant it is called, immediately
// hands v to its continuation without pausing.
func Value[V any](v V) Process[V] {
	return ProcessFunc[V](func(s *runtime.Scheduler, next runtime.Continuation[V]) {
		next.Call(s, v)
	})
}

// Pause returns a Process that runs p immediately, but defers delivery of
// its result to next by exactly one instant: p itself starts this instant,
// only the handoff to next is postponed.
func Pause[V any](p Process[V]) Process[V] {
	return ProcessFunc[V](func(s *runtime.Scheduler, next runtime.Continuation[V]) {
		p.Call(s, runtime.Pause(next))
	})
}

// Map returns a Process that runs p and applies f to its result before
// handing it onward.
func Map[A, B any](p Process[A], f func(A) B) Process[B] {
	return ProcessFunc[B](func(s *runtime.Scheduler, next runtime.Continuation[B]) {
		p.Call(s, runtime.Map(next, f))
	})
}

// Flatten returns a Process that runs p, then runs the Process p produces,
// and hands on that inner process's result.
func Flatten[V any](p Process[Process[V]]) Process[V] {
	return ProcessFunc[V](func(s *runtime.Scheduler, next runtime.Continuation[V]) {
		p.Call(s, runtime.ContinuationFunc[Process[V]](func(s *runtime.Scheduler, inner Process[V]) {
			inner.Call(s, next)
		}))
	})
}

// AndThen composes Map and Flatten: it runs p, applies f to produce a new
// Process, then runs that process.
func AndThen[A, B any](p Process[A], f func(A) Process[B]) Process[B] {
	return Flatten(Map(p, f))
}

// joinCell is the one-shot coordination slot shared by the two branches of
// a Join: whichever branch finishes second observes the other's value
// already stored, and is the one that fires the combined continuation.
type joinCell[A, B any] struct {
	aDone, bDone bool
	aVal         A
	bVal         B
	fired        bool
}

// Join returns a Process that runs pa and pb concurrently (interleaved
// within whatever instants each takes), completing once both have produced
// a value, handing the pair onward exactly once, from whichever branch
// finishes last.
func Join[A, B any](pa Process[A], pb Process[B]) Process[Pair[A, B]] {
	return ProcessFunc[Pair[A, B]](func(s *runtime.Scheduler, next runtime.Continuation[Pair[A, B]]) {
		cell := &joinCell[A, B]{}

		fire := func(s *runtime.Scheduler) {
			if cell.fired {
				panic(contract.New(contract.JoinCellExhausted, nil))
			}
			cell.fired = true
			next.Call(s, Pair[A, B]{First: cell.aVal, Second: cell.bVal})
		}

		pa.Call(s, runtime.ContinuationFunc[A](func(s *runtime.Scheduler, a A) {
			cell.aVal = a
			cell.aDone = true
			if cell.bDone {
				fire(s)
			}
		}))
		pb.Call(s, runtime.ContinuationFunc[B](func(s *runtime.Scheduler, b B) {
			cell.bVal = b
			cell.bDone = true
			if cell.aDone {
				fire(s)
			}
		}))
	})
}

// LoopStatus is the value a WhileLoop body produces each iteration: either
// Continue (carrying a value that WhileLoop does not use) or Exit (with the
// loop's final result).
type LoopStatus[T any] struct {
	exit bool
	t    T
}

// Continue builds a LoopStatus that keeps the loop running. v is stored in
// the status but is not passed to the next iteration: WhileLoop simply
// re-runs the re-runnable body it was handed.
func Continue[T any](v T) LoopStatus[T] {
	return LoopStatus[T]{t: v}
}

// Exit builds a LoopStatus that ends the loop, yielding v as its result.
func Exit[T any](v T) LoopStatus[T] {
	return LoopStatus[T]{exit: true, t: v}
}

// Continuing reports whether the status continues the loop, and if so, the
// value it was built with.
func (s LoopStatus[T]) Continuing() (T, bool) {
	return s.t, !s.exit
}

// Exited reports whether the status ends the loop, and if so, its result.
func (s LoopStatus[T]) Exited() (T, bool) {
	return s.t, s.exit
}

// WhileLoop drives a re-runnable body repeatedly: each CallMut result is a
// LoopStatus[T]. Continue re-invokes the returned ProcessMut; Exit hands the
// loop's final value to next.
func WhileLoop[T any](body ProcessMut[LoopStatus[T]]) Process[T] {
	return ProcessFunc[T](func(s *runtime.Scheduler, next runtime.Continuation[T]) {
		var step func(p ProcessMut[LoopStatus[T]])
		step = func(p ProcessMut[LoopStatus[T]]) {
			p.CallMut(s, runtime.ContinuationFunc[Pair[ProcessMut[LoopStatus[T]], LoopStatus[T]]](
				func(s *runtime.Scheduler, pair Pair[ProcessMut[LoopStatus[T]], LoopStatus[T]]) {
					if v, ok := pair.Second.Exited(); ok {
						next.Call(s, v)
						return
					}
					step(pair.First)
				}))
		}
		step(body)
	})
}

// ExecuteProcess drives p to completion on a fresh Scheduler, running
// instants until it produces a value, and returns that value. Panics with a
// *contract.Violation of kind contract.ProcessStalled if the scheduler
// quiesces (Instant reports no more work) before p has produced a value.
func ExecuteProcess[V any](p Process[V]) V {
	s := runtime.NewScheduler()

	var (
		result V
		done   bool
	)

	p.Call(s, runtime.ContinuationFunc[V](func(_ *runtime.Scheduler, v V) {
		result = v
		done = true
	}))

	for !done && s.Instant() {
	}

	if !done {
		panic(contract.New(contract.ProcessStalled, nil))
	}

	return result
}
