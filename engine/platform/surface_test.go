package platform

import (
	"testing"

	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceWithoutHandle(t *testing.T) {
	s := NewSurface(&fakeBackend{})

	assert.True(t, s.ShouldClose())
	s.PollEvents()
	s.SwapBuffers()
	s.RequestClose()
	s.UpdateViewport(10, 10)
	assert.Zero(t, s.Width())

	_, err := s.ToggleVisibility()
	assert.ErrorIs(t, err, core.ErrNoSurface)
	assert.True(t, core.IsKind(err, core.KindPrecondition))

	_, err = s.ToggleCursorLock()
	assert.ErrorIs(t, err, core.ErrNoSurface)

	s.Destroy()
}

func TestSurfaceCreateFailureKeepsNoHandle(t *testing.T) {
	s := NewSurface(&fakeBackend{createErr: errFake})
	err := s.Create(800, 600, "x")
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindResource))
	assert.Nil(t, s.Native())
	assert.True(t, s.ShouldClose())
}

func TestSurfaceLifecycle(t *testing.T) {
	b := &fakeBackend{}
	s := NewSurface(b)
	require.NoError(t, s.Create(800, 600, "Starlet"))
	w := b.created[0]

	assert.Equal(t, uint32(800), s.Width())
	assert.Equal(t, uint32(600), s.Height())
	assert.InDelta(t, 800.0/600.0, s.Aspect(), 1e-6)
	assert.False(t, s.ShouldClose())

	s.PollEvents()
	s.SwapBuffers()
	assert.Equal(t, 1, b.polls)
	assert.Equal(t, 1, w.swaps)

	s.UpdateViewport(1024, 512)
	assert.Equal(t, [4]int{0, 0, 1024, 512}, w.viewport)
	assert.Equal(t, float32(2), s.Aspect())

	s.RequestClose()
	assert.True(t, s.ShouldClose())

	s.Destroy()
	s.Destroy()
	assert.Equal(t, 1, w.destroyed)
	assert.Nil(t, s.Native())
}

func TestSurfaceToggles(t *testing.T) {
	b := &fakeBackend{}
	s := NewSurface(b)
	require.NoError(t, s.Create(640, 480, "t"))

	visible, err := s.ToggleVisibility()
	require.NoError(t, err)
	assert.True(t, visible)
	visible, err = s.ToggleVisibility()
	require.NoError(t, err)
	assert.False(t, visible)

	locked, err := s.ToggleCursorLock()
	require.NoError(t, err)
	assert.True(t, locked)
	assert.Equal(t, CursorDisabled, b.created[0].cursor)
	locked, err = s.ToggleCursorLock()
	require.NoError(t, err)
	assert.False(t, locked)
	assert.Equal(t, CursorNormal, b.created[0].cursor)
}

func TestSurfaceContextPointer(t *testing.T) {
	b := &fakeBackend{}
	s := NewSurface(b)
	require.NoError(t, s.Create(640, 480, "t"))

	err := s.SetContextPointer(nil)
	assert.ErrorIs(t, err, core.ErrNilContextPointer)
	assert.Nil(t, s.contextPointer())

	target := &recordingTarget{}
	require.NoError(t, s.SetContextPointer(target))
	assert.Equal(t, target, s.contextPointer())

	// the routing token does not outlive the window
	s.Destroy()
	assert.Nil(t, s.contextPointer())
}
