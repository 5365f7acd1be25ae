package core

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	t float64
}

func (f *fakeTime) now() float64 { return f.t }

func TestClockFirstTickIsZero(t *testing.T) {
	ft := &fakeTime{t: 12.5}
	c := NewClock(ft.now)
	assert.Equal(t, 0.0, c.Tick())
}

func TestClockReturnsElapsed(t *testing.T) {
	ft := &fakeTime{t: 1.0}
	c := NewClock(ft.now)
	c.Tick()

	ft.t = 1.016
	assert.InDelta(t, 0.016, c.Tick(), 1e-9)

	ft.t = 1.116
	assert.InDelta(t, 0.1, c.Tick(), 1e-9)
}

func TestClockClampsSpikes(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stderr)

	ft := &fakeTime{t: 2.0}
	c := NewClock(ft.now)
	c.Tick()

	ft.t = 7.0
	assert.Equal(t, MaxDeltaTime, c.Tick())
	assert.Contains(t, buf.String(), "deltaTime clamped")

	// the clamp does not carry over into the next sample
	ft.t = 7.05
	assert.InDelta(t, 0.05, c.Tick(), 1e-9)
}
