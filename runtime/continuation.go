// Package runtime implements the synchronous scheduler: the three ordered
// instant pools, the Continuation type callbacks are built from, and the
// logging/configuration plumbing every other package is driven through.
package runtime

// Continuation is a one-shot callback: invoking it resumes whatever was
// waiting on the value V, handing it the Scheduler so it can itself
// schedule further work. A Continuation must be called at most once.
//
// Unlike the Rust original's Box<dyn Continuation<V>>, an interface value
// here already carries its own vtable and data pointer, so no separate
// boxing step is needed to store one.
type Continuation[V any] interface {
	Call(s *Scheduler, value V)
}

// ContinuationFunc adapts a plain function to a Continuation.
type ContinuationFunc[V any] func(s *Scheduler, value V)

// Call invokes the wrapped function.
func (f ContinuationFunc[V]) Call(s *Scheduler, value V) {
	f(s, value)
}

// Map composes k with a pure transform f, producing a Continuation[A] that,
// when called with a, calls k with f(a). This is the Go analogue of the
// original's Continuation::map.
func Map[A, B any](k Continuation[B], f func(A) B) Continuation[A] {
	return ContinuationFunc[A](func(s *Scheduler, a A) {
		k.Call(s, f(a))
	})
}

// Pause defers k by exactly one instant: calling the returned Continuation
// re-enqueues k onto the scheduler's next-instant pool instead of invoking
// it immediately, so it runs at the start of the following instant.
func Pause[V any](k Continuation[V]) Continuation[V] {
	return ContinuationFunc[V](func(s *Scheduler, value V) {
		s.OnNextInstant(ContinuationFunc[struct{}](func(s *Scheduler, _ struct{}) {
			k.Call(s, value)
		}))
	})
}
