package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameMetrics(t *testing.T) {
	m := NewFrameMetrics()

	refreshed := false
	for i := 0; i < 59; i++ {
		refreshed = m.Update(1.0 / 60.0)
	}
	assert.False(t, refreshed)
	assert.Equal(t, 0.0, m.FPS())
	assert.InDelta(t, 1000.0/60.0, m.FrameTime(), 1e-6)

	// 60 frames of 1/60s add up to a second; tolerate float drift on the boundary
	refreshed = m.Update(1.0/60.0 + 1e-9)
	assert.True(t, refreshed)
	assert.Equal(t, 60.0, m.FPS())
}
