package jobs

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobSystemValidates(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)
	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}

func TestSubmitRunsCallbacks(t *testing.T) {
	js, err := NewJobSystem(2, 4)
	require.NoError(t, err)

	var completed, failed atomic.Int32
	for i := 0; i < 10; i++ {
		fail := i%2 == 0
		js.Submit(Job{
			Run: func() error {
				if fail {
					return errors.New("boom")
				}
				return nil
			},
			OnComplete: func() { completed.Add(1) },
			OnFailure:  func(error) { failed.Add(1) },
		})
	}
	require.NoError(t, js.Shutdown())
	require.NoError(t, js.Shutdown())

	assert.Equal(t, int32(5), completed.Load())
	assert.Equal(t, int32(5), failed.Load())
}

func TestRunAllWaitsAndKeepsPositions(t *testing.T) {
	js, err := NewJobSystem(3, 0)
	require.NoError(t, err)
	defer js.Shutdown()

	boom := errors.New("boom")
	var ran atomic.Int32
	tasks := []func() error{
		func() error { ran.Add(1); return nil },
		func() error { ran.Add(1); return boom },
		func() error { ran.Add(1); return nil },
	}

	errs := js.RunAll(tasks)
	assert.Equal(t, int32(3), ran.Load())
	assert.Equal(t, []error{nil, boom, nil}, errs)
	assert.Empty(t, js.RunAll(nil))
}
