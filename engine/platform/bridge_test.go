package platform

import (
	"bytes"
	"os"
	"testing"

	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbacksBeforeContextPointerAreDropped(t *testing.T) {
	b := &fakeBackend{}
	sm, err := NewSurfaceManager(b)
	require.NoError(t, err)
	require.NoError(t, sm.CreateWindow(100, 100, "a"))
	cb := b.created[0].callbacks

	// must not panic with no target installed
	cb.Key(core.KeyEscape, 9, core.ActionPress, 0)
	cb.FramebufferSize(10, 10)
	cb.Scroll(0, 1)
	cb.MouseButton(core.MouseButtonLeft, core.ActionPress, 0)
}

func TestCallbacksRouteToTarget(t *testing.T) {
	b := &fakeBackend{}
	sm, err := NewSurfaceManager(b)
	require.NoError(t, err)
	require.NoError(t, sm.CreateWindow(100, 100, "a"))

	target := &recordingTarget{}
	require.NoError(t, sm.SetContextPointer(target))
	cb := b.created[0].callbacks

	cb.Key(core.KeyW, 17, core.ActionPress, core.ModShift)
	cb.Key(core.KeyW, 17, core.ActionRelease, 0)
	cb.Scroll(0.5, -1)
	cb.MouseButton(core.MouseButtonRight, core.ActionRelease, core.ModControl)
	cb.FramebufferSize(640, 360)

	assert.Equal(t, []core.KeyEvent{
		{Key: core.KeyW, Action: core.ActionPress, Mods: core.ModShift},
		{Key: core.KeyW, Action: core.ActionRelease},
	}, target.keys)
	assert.Equal(t, []core.ScrollEvent{{DX: 0.5, DY: -1}}, target.scrolls)
	assert.Equal(t, []core.MouseButtonEvent{{Button: core.MouseButtonRight, Action: core.ActionRelease, Mods: core.ModControl}}, target.buttons)
	assert.Equal(t, [][2]int{{640, 360}}, target.viewports)
}

func TestCallbacksAfterDestroyAreDropped(t *testing.T) {
	b := &fakeBackend{}
	sm, err := NewSurfaceManager(b)
	require.NoError(t, err)
	require.NoError(t, sm.CreateWindow(100, 100, "a"))
	target := &recordingTarget{}
	require.NoError(t, sm.SetContextPointer(target))
	cb := b.created[0].callbacks

	sm.Close()
	cb.Key(core.KeyEscape, 9, core.ActionPress, 0)
	assert.Empty(t, target.keys)
}

func TestErrorCallbackLogsOnly(t *testing.T) {
	var buf bytes.Buffer
	core.SetLogOutput(&buf)
	defer core.SetLogOutput(os.Stderr)

	b := &fakeBackend{}
	sm, err := NewSurfaceManager(b)
	require.NoError(t, err)
	require.NotNil(t, b.errCallback)
	b.errCallback(65544, "X11: display unavailable")

	assert.Contains(t, buf.String(), "X11: display unavailable")
	assert.Contains(t, buf.String(), "65544")
	assert.Nil(t, sm.Native(), "no surface created by an error report")
}
