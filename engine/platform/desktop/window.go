package desktop

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/spaghettifunk/starlet/engine/platform"
)

// Window wraps a GLFW window and its OpenGL context.
type Window struct {
	w *glfw.Window
}

func (w *Window) Destroy() {
	w.w.SetKeyCallback(nil)
	w.w.SetFramebufferSizeCallback(nil)
	w.w.SetScrollCallback(nil)
	w.w.SetMouseButtonCallback(nil)
	w.w.Destroy()
}

func (w *Window) ShouldClose() bool         { return w.w.ShouldClose() }
func (w *Window) SetShouldClose(value bool) { w.w.SetShouldClose(value) }
func (w *Window) SwapBuffers()              { w.w.SwapBuffers() }
func (w *Window) MakeContextCurrent()       { w.w.MakeContextCurrent() }
func (w *Window) Visible() bool             { return w.w.GetAttrib(glfw.Visible) == glfw.True }
func (w *Window) Show()                     { w.w.Show() }
func (w *Window) Hide()                     { w.w.Hide() }
func (w *Window) CursorPos() (float64, float64) {
	return w.w.GetCursorPos()
}

func (w *Window) CursorMode() platform.CursorMode {
	switch w.w.GetInputMode(glfw.CursorMode) {
	case glfw.CursorDisabled:
		return platform.CursorDisabled
	case glfw.CursorHidden:
		return platform.CursorHidden
	default:
		return platform.CursorNormal
	}
}

func (w *Window) SetCursorMode(mode platform.CursorMode) {
	switch mode {
	case platform.CursorDisabled:
		w.w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	case platform.CursorHidden:
		w.w.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	default:
		w.w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (w *Window) SetViewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// SetCallbacks translates GLFW callback signatures into the platform ones.
// Key, action, modifier and button codes share numbering with core.
func (w *Window) SetCallbacks(c platform.Callbacks) {
	if c.Key != nil {
		w.w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
			c.Key(core.Key(key), scancode, core.Action(action), core.ModifierKey(mods))
		})
	}
	if c.FramebufferSize != nil {
		w.w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
			c.FramebufferSize(width, height)
		})
	}
	if c.Scroll != nil {
		w.w.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
			c.Scroll(xoff, yoff)
		})
	}
	if c.MouseButton != nil {
		w.w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
			c.MouseButton(core.MouseButton(button), core.Action(action), core.ModifierKey(mods))
		})
	}
}
