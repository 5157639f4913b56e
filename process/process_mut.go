package process

import (
	"github.com/reactive-go/reactrust/internal/contract"
	"github.com/reactive-go/reactrust/runtime"
)

// ValueMut returns a ProcessMut that, every time it is called, immediately
// produces v again alongside itself, unchanged.
func ValueMut[V any](v V) ProcessMut[V] {
	return ProcessMutFunc[V](func(s *runtime.Scheduler, next runtime.Continuation[Pair[ProcessMut[V], V]]) {
		next.Call(s, Pair[ProcessMut[V], V]{First: ValueMut(v), Second: v})
	})
}

// PauseMut returns a ProcessMut that runs p immediately each time it is
// called, but defers delivery of its result to next by one instant, and
// rewraps the re-runnable remainder in PauseMut so every subsequent run is
// paused the same way.
func PauseMut[V any](p ProcessMut[V]) ProcessMut[V] {
	return ProcessMutFunc[V](func(s *runtime.Scheduler, next runtime.Continuation[Pair[ProcessMut[V], V]]) {
		p.CallMut(s, runtime.ContinuationFunc[Pair[ProcessMut[V], V]](
			func(s *runtime.Scheduler, pair Pair[ProcessMut[V], V]) {
				reconstructed := Pair[ProcessMut[V], V]{First: PauseMut(pair.First), Second: pair.Second}
				runtime.Pause[Pair[ProcessMut[V], V]](next).Call(s, reconstructed)
			}))
	})
}

// MapMut returns a ProcessMut that runs p and applies f to each value it
// produces, rewrapping the re-runnable remainder in MapMut with the same f.
func MapMut[A, B any](p ProcessMut[A], f func(A) B) ProcessMut[B] {
	return ProcessMutFunc[B](func(s *runtime.Scheduler, next runtime.Continuation[Pair[ProcessMut[B], B]]) {
		p.CallMut(s, runtime.ContinuationFunc[Pair[ProcessMut[A], A]](
			func(s *runtime.Scheduler, pair Pair[ProcessMut[A], A]) {
				value := f(pair.Second)
				next.Call(s, Pair[ProcessMut[B], B]{First: MapMut(pair.First, f), Second: value})
			}))
	})
}

// FlattenMut returns a ProcessMut that, each run, runs p to get an inner
// ProcessMut, runs that, and hands on its value. Only p's re-runnable
// remainder is rewrapped in FlattenMut; the inner process's remainder is
// dropped, since the next run obtains a fresh inner process from p.
func FlattenMut[V any](p ProcessMut[ProcessMut[V]]) ProcessMut[V] {
	return ProcessMutFunc[V](func(s *runtime.Scheduler, next runtime.Continuation[Pair[ProcessMut[V], V]]) {
		p.CallMut(s, runtime.ContinuationFunc[Pair[ProcessMut[ProcessMut[V]], ProcessMut[V]]](
			func(s *runtime.Scheduler, outer Pair[ProcessMut[ProcessMut[V]], ProcessMut[V]]) {
				outer.Second.CallMut(s, runtime.ContinuationFunc[Pair[ProcessMut[V], V]](
					func(s *runtime.Scheduler, inner Pair[ProcessMut[V], V]) {
						next.Call(s, Pair[ProcessMut[V], V]{First: FlattenMut(outer.First), Second: inner.Second})
					}))
			}))
	})
}

// joinMutCell is the re-runnable analogue of joinCell: it coordinates the
// two branches of a JoinMut for exactly one run, then is discarded in favor
// of a fresh cell for the next run (built by the re-wrapped JoinMut calls
// each branch produces).
type joinMutCell[A, B any] struct {
	aDone, bDone bool
	aVal         A
	bVal         B
	aNext        ProcessMut[A]
	bNext        ProcessMut[B]
	fired        bool
}

// JoinMut returns a ProcessMut that runs pa and pb concurrently each run,
// producing the pair of their values once both complete, and rewrapping
// both re-runnable remainders for the following run.
func JoinMut[A, B any](pa ProcessMut[A], pb ProcessMut[B]) ProcessMut[Pair[A, B]] {
	return ProcessMutFunc[Pair[A, B]](func(s *runtime.Scheduler, next runtime.Continuation[Pair[ProcessMut[Pair[A, B]], Pair[A, B]]]) {
		cell := &joinMutCell[A, B]{}

		fire := func(s *runtime.Scheduler) {
			if cell.fired {
				panic(contract.New(contract.JoinCellExhausted, nil))
			}
			cell.fired = true
			next.Call(s, Pair[ProcessMut[Pair[A, B]], Pair[A, B]]{
				First:  JoinMut(cell.aNext, cell.bNext),
				Second: Pair[A, B]{First: cell.aVal, Second: cell.bVal},
			})
		}

		pa.CallMut(s, runtime.ContinuationFunc[Pair[ProcessMut[A], A]](
			func(s *runtime.Scheduler, pair Pair[ProcessMut[A], A]) {
				cell.aVal = pair.Second
				cell.aNext = pair.First
				cell.aDone = true
				if cell.bDone {
					fire(s)
				}
			}))
		pb.CallMut(s, runtime.ContinuationFunc[Pair[ProcessMut[B], B]](
			func(s *runtime.Scheduler, pair Pair[ProcessMut[B], B]) {
				cell.bVal = pair.Second
				cell.bNext = pair.First
				cell.bDone = true
				if cell.aDone {
					fire(s)
				}
			}))
	})
}
