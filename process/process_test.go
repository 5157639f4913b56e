package process_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reactive-go/reactrust/process"
	"github.com/reactive-go/reactrust/runtime"
)

func TestScheduler_PauseIsExactlyOneInstant(t *testing.T) {
	s := runtime.NewScheduler()

	var flag int
	k := runtime.Pause(runtime.Pause(runtime.ContinuationFunc[struct{}](func(_ *runtime.Scheduler, _ struct{}) {
		flag = 42
	})))
	s.OnCurrentInstant(k)

	assert.True(t, s.Instant())
	assert.Zero(t, flag)

	assert.True(t, s.Instant())
	assert.Zero(t, flag)

	assert.False(t, s.Instant())
	assert.Equal(t, 42, flag)

	assert.False(t, s.Instant())
}

func TestMapToMultiply(t *testing.T) {
	p := process.Map(process.Value(21), func(v int) int { return 2 * v })
	assert.Equal(t, 42, process.ExecuteProcess(p))
}

func TestMapAndPauseToMultiply(t *testing.T) {
	p := process.Pause(process.Map(process.Pause(process.Value(21)), func(v int) int { return 2 * v }))
	assert.Equal(t, 42, process.ExecuteProcess(p))
}

func TestJoinSumWithDelay(t *testing.T) {
	immediate := process.Value(10)
	paused := process.Pause(process.Pause(process.Pause(process.Value(32))))

	joined := process.Map(process.Join(immediate, paused), func(p process.Pair[int, int]) int {
		return p.First + p.Second
	})

	assert.Equal(t, 42, process.ExecuteProcess(joined))
}

func TestJoinCommutativity(t *testing.T) {
	a := process.Pause(process.Value(1))
	b := process.Value(2)

	sum := func(p process.Pair[int, int]) int { return p.First + p.Second }

	assert.Equal(t, 3, process.ExecuteProcess(process.Map(process.Join(a, b), sum)))
	assert.Equal(t, 3, process.ExecuteProcess(process.Map(process.Join(b, a), func(p process.Pair[int, int]) int {
		return p.First + p.Second
	})))
}

func TestCountUsingWhile(t *testing.T) {
	var count int

	var makeBody func() process.ProcessMut[process.LoopStatus[struct{}]]
	makeBody = func() process.ProcessMut[process.LoopStatus[struct{}]] {
		return process.ProcessMutFunc[process.LoopStatus[struct{}]](
			func(s *runtime.Scheduler, next runtime.Continuation[process.Pair[process.ProcessMut[process.LoopStatus[struct{}]], process.LoopStatus[struct{}]]]) {
				count++
				status := process.Continue(struct{}{})
				if count == 42 {
					status = process.Exit(struct{}{})
				}
				next.Call(s, process.Pair[process.ProcessMut[process.LoopStatus[struct{}]], process.LoopStatus[struct{}]]{
					First:  makeBody(),
					Second: status,
				})
			})
	}

	process.ExecuteProcess(process.WhileLoop(makeBody()))
	assert.Equal(t, 42, count)
}

func TestValueIsImmediate(t *testing.T) {
	s := runtime.NewScheduler()
	var got int
	process.Value(7).Call(s, runtime.ContinuationFunc[int](func(_ *runtime.Scheduler, v int) {
		got = v
	}))
	assert.Equal(t, 7, got)
}

func TestAndThen(t *testing.T) {
	p := process.AndThen(process.Value(20), func(v int) process.Process[int] {
		return process.Value(v + 22)
	})
	assert.Equal(t, 42, process.ExecuteProcess(p))
}
