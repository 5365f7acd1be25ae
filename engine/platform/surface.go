package platform

import (
	"fmt"

	"github.com/spaghettifunk/starlet/engine/core"
)

// Surface owns exactly one native window and its context. Every operation
// other than Create is a no-op, or reports ErrNoSurface, while the handle is nil.
type Surface struct {
	backend Backend
	window  NativeWindow
	width   uint32
	height  uint32

	// target routes native callbacks back to the engine. It is a lookup
	// token only and is cleared before the window is destroyed.
	target EventTarget
}

func NewSurface(backend Backend) *Surface {
	return &Surface{backend: backend}
}

// Create asks the backend for a window. On failure no handle is kept.
func (s *Surface) Create(width, height uint32, title string) error {
	window, err := s.backend.CreateWindow(int(width), int(height), title)
	if err != nil || window == nil {
		if err == nil {
			err = fmt.Errorf("backend returned no window")
		}
		return core.NewError(core.KindResource, "Window", "createWindow", fmt.Errorf("failed to create window: %w", err))
	}
	s.window = window
	s.width = width
	s.height = height
	core.LogDebugOp("Window", "createWindow", "Created window: %s - %d x %d", title, width, height)
	return nil
}

// Native exposes the handle; nil until Create succeeds.
func (s *Surface) Native() NativeWindow {
	return s.window
}

func (s *Surface) Width() uint32  { return s.width }
func (s *Surface) Height() uint32 { return s.height }

func (s *Surface) Aspect() float32 {
	if s.height == 0 {
		return 0
	}
	return float32(s.width) / float32(s.height)
}

// ShouldClose treats a surface that was never created as closed.
func (s *Surface) ShouldClose() bool {
	if s.window == nil {
		return true
	}
	return s.window.ShouldClose()
}

func (s *Surface) PollEvents() {
	if s.window != nil {
		s.backend.PollEvents()
	}
}

func (s *Surface) SwapBuffers() {
	if s.window != nil {
		s.window.SwapBuffers()
	}
}

// RequestClose raises the close flag; the run loop observes it on its next iteration.
func (s *Surface) RequestClose() {
	if s.window != nil {
		s.window.SetShouldClose(true)
	}
}

func (s *Surface) MakeCurrent() {
	if s.window != nil {
		s.window.MakeContextCurrent()
	}
}

// SetContextPointer installs the callback routing target.
func (s *Surface) SetContextPointer(target EventTarget) error {
	if target == nil {
		return core.NewError(core.KindPrecondition, "Window", "setWindowPointer", core.ErrNilContextPointer)
	}
	if s.window != nil {
		s.target = target
	}
	return nil
}

// contextPointer is what the native callbacks resolve before forwarding.
func (s *Surface) contextPointer() EventTarget {
	if s.window == nil {
		return nil
	}
	return s.target
}

// installCallbacks registers the input trampolines on the native window.
func (s *Surface) installCallbacks() {
	if s.window == nil {
		return
	}
	s.window.SetCallbacks(Callbacks{
		Key: func(key core.Key, scancode int, action core.Action, mods core.ModifierKey) {
			keyCallback(s.contextPointer(), key, scancode, action, mods)
		},
		FramebufferSize: func(width, height int) {
			framebufferSizeCallback(s.contextPointer(), width, height)
		},
		Scroll: func(xOffset, yOffset float64) {
			scrollCallback(s.contextPointer(), xOffset, yOffset)
		},
		MouseButton: func(button core.MouseButton, action core.Action, mods core.ModifierKey) {
			mouseButtonCallback(s.contextPointer(), button, action, mods)
		},
	})
}

func (s *Surface) UpdateViewport(width, height uint32) {
	if s.window == nil {
		return
	}
	s.width = width
	s.height = height
	s.window.SetViewport(0, 0, int(width), int(height))
}

// ToggleVisibility flips between shown and hidden and returns true when the
// window is now visible.
func (s *Surface) ToggleVisibility() (bool, error) {
	if s.window == nil {
		return false, core.NewError(core.KindPrecondition, "Window", "switchActiveWindowVisibility", core.ErrNoSurface)
	}
	visible := !s.window.Visible()
	if visible {
		s.window.Show()
		core.LogDebugOp("Window", "switchWindowVisibility", "Window shown")
	} else {
		s.window.Hide()
		core.LogDebugOp("Window", "switchWindowVisibility", "Window hidden")
	}
	return visible, nil
}

// ToggleCursorLock flips between a captured and a free cursor and returns
// true when the cursor is now locked.
func (s *Surface) ToggleCursorLock() (bool, error) {
	if s.window == nil {
		return false, core.NewError(core.KindPrecondition, "Window", "switchCursorLock", core.ErrNoSurface)
	}
	locked := s.window.CursorMode() != CursorDisabled
	if locked {
		s.window.SetCursorMode(CursorDisabled)
		core.LogDebugOp("Window", "switchCursorLock", "Cursor locked")
	} else {
		s.window.SetCursorMode(CursorNormal)
		core.LogDebugOp("Window", "switchCursorLock", "Cursor unlocked")
	}
	return locked, nil
}

// Destroy releases the native window. Calling it again is a no-op.
func (s *Surface) Destroy() {
	if s.window == nil {
		return
	}
	s.target = nil
	s.window.Destroy()
	s.window = nil
}
