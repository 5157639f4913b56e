package runtime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactive-go/reactrust/internal/contract"
	"github.com/reactive-go/reactrust/runtime"
)

func TestWaitTwoInstants(t *testing.T) {
	s := runtime.NewScheduler()

	var flag int
	s.OnCurrentInstant(runtime.ContinuationFunc[struct{}](func(s *runtime.Scheduler, _ struct{}) {
		s.OnNextInstant(runtime.ContinuationFunc[struct{}](func(s *runtime.Scheduler, _ struct{}) {
			s.OnNextInstant(runtime.ContinuationFunc[struct{}](func(_ *runtime.Scheduler, _ struct{}) {
				flag = 42
			}))
		}))
	}))

	assert.True(t, s.Instant())
	assert.Zero(t, flag)

	assert.True(t, s.Instant())
	assert.Zero(t, flag)

	assert.False(t, s.Instant())
	assert.Equal(t, 42, flag)

	assert.False(t, s.Instant())
}

func TestEndOfInstantFoldsIntoSameInstant(t *testing.T) {
	s := runtime.NewScheduler()

	var order []string
	s.OnEndOfInstant(runtime.ContinuationFunc[struct{}](func(s *runtime.Scheduler, _ struct{}) {
		order = append(order, "end-of-instant-1")
		s.OnCurrentInstant(runtime.ContinuationFunc[struct{}](func(s *runtime.Scheduler, _ struct{}) {
			order = append(order, "current-from-end")
			s.OnEndOfInstant(runtime.ContinuationFunc[struct{}](func(_ *runtime.Scheduler, _ struct{}) {
				order = append(order, "end-of-instant-2")
			}))
		}))
	}))
	s.OnCurrentInstant(runtime.ContinuationFunc[struct{}](func(_ *runtime.Scheduler, _ struct{}) {
		order = append(order, "current-1")
	}))

	assert.False(t, s.Instant())
	assert.Equal(t, []string{"current-1", "end-of-instant-1", "current-from-end", "end-of-instant-2"}, order)
}

func TestExecuteIsNotReentrant(t *testing.T) {
	s := runtime.NewScheduler()

	s.OnCurrentInstant(runtime.ContinuationFunc[struct{}](func(s *runtime.Scheduler, _ struct{}) {
		assert.PanicsWithValue(t, contract.New(contract.ReentrantExecute, nil), func() {
			s.Execute()
		})
	}))

	s.Execute()
}

func TestReentrantExecuteIsAContractViolation(t *testing.T) {
	s := runtime.NewScheduler()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, contract.ErrReentrantExecute))
	}()

	s.OnCurrentInstant(runtime.ContinuationFunc[struct{}](func(s *runtime.Scheduler, _ struct{}) {
		s.Execute()
	}))
	s.Execute()
}
