package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reactive-go/reactrust/process"
	"github.com/reactive-go/reactrust/runtime"
	"github.com/reactive-go/reactrust/signal"
)

func TestEmitAndAwaitImmediate(t *testing.T) {
	s := signal.NewPure()

	p := process.Join(
		signal.Emit(s, struct{}{}),
		signal.AwaitImmediate(s),
	)

	assert.Equal(t, process.Pair[struct{}, struct{}]{}, process.ExecuteProcess(p))
}

func TestAwaitImmediateAndEmit(t *testing.T) {
	s := signal.NewPure()

	p := process.Join(
		signal.AwaitImmediate(s),
		signal.Emit(s, struct{}{}),
	)

	assert.Equal(t, process.Pair[struct{}, struct{}]{}, process.ExecuteProcess(p))
}

// TestAbsentExclusion checks that a later_on_absent reaction never fires in
// an instant where the signal was emitted at any point prior to
// end-of-instant, even if the absent registration happened first.
func TestAbsentExclusion(t *testing.T) {
	s := runtime.NewScheduler()
	sig := signal.NewPure()

	var absentFired, presentFired bool

	sig.Runtime().LaterOnAbsent(s, runtime.ContinuationFunc[struct{}](func(_ *runtime.Scheduler, _ struct{}) {
		absentFired = true
	}))
	sig.Runtime().OnPresent(s, runtime.ContinuationFunc[struct{}](func(_ *runtime.Scheduler, _ struct{}) {
		presentFired = true
	}))
	sig.Runtime().Emit(s, struct{}{})

	for s.Instant() {
	}

	assert.True(t, presentFired)
	assert.False(t, absentFired)
}

// TestPresentAbsent is scenario S6: one run of present() joined with an
// emit must take the if-present branch this instant; a second, non-emitting
// run must take the if-absent branch in instant 2.
func TestPresentAbsent(t *testing.T) {
	emitting := signal.NewPure()
	p := process.Join(
		signal.Emit(emitting, struct{}{}),
		signal.Present[struct{}, struct{}, string](emitting, process.Value("present"), process.Value("absent")),
	)
	result := process.ExecuteProcess(p)
	assert.Equal(t, "present", result.Second)

	silent := signal.NewPure()
	absentResult := process.ExecuteProcess(
		signal.Present[struct{}, struct{}, string](silent, process.Value("present"), process.Value("absent")),
	)
	assert.Equal(t, "absent", absentResult)
}

// TestCountUsingSignalValues is scenario S7: a 14-iteration loop that emits
// 3 on a value signal each iteration and accumulates the previous instant's
// gathered value, terminating with a sum of 42.
func TestCountUsingSignalValues(t *testing.T) {
	sig := signal.NewValueSignal[uint32, uint32](0, func(e uint32, v *uint32) { *v = e })

	var sum uint32
	var iteration int

	emitLoop := process.PauseMut(signal.EmitMut[uint32, uint32](sig, 3))
	awaitLoop := process.MapMut(signal.AwaitMut[uint32, uint32](sig), func(v uint32) uint32 {
		sum += v
		return v
	})

	body := process.MapMut(
		process.JoinMut(awaitLoop, emitLoop),
		func(process.Pair[uint32, struct{}]) process.LoopStatus[struct{}] {
			iteration++
			if iteration == 14 {
				return process.Exit(struct{}{})
			}
			return process.Continue(struct{}{})
		},
	)

	process.ExecuteProcess(process.WhileLoop(body))

	assert.Equal(t, uint32(42), sum)
}
