package platform

import (
	"fmt"

	"github.com/spaghettifunk/starlet/engine/core"
)

const (
	GL_MAJOR = 3
	GL_MINOR = 3
)

// SurfaceManager owns at most one Surface. Creating a window while another
// is active destroys the previous one first.
type SurfaceManager struct {
	backend Backend
	active  *Surface
	vsync   bool
}

func NewSurfaceManager(backend Backend) (*SurfaceManager, error) {
	if err := backend.Init(); err != nil {
		return nil, core.NewError(core.KindResource, "WindowManager", "Constructor", fmt.Errorf("%w: %v", core.ErrBackendInit, err))
	}
	backend.SetErrorCallback(errorCallback)
	return &SurfaceManager{backend: backend, vsync: true}, nil
}

// SetVSync selects the swap interval used by the next CreateWindow.
func (sm *SurfaceManager) SetVSync(enabled bool) {
	sm.vsync = enabled
}

// Time is the backend clock in seconds.
func (sm *SurfaceManager) Time() float64 {
	return sm.backend.Time()
}

// CreateWindow builds the active surface and prepares its context for rendering.
func (sm *SurfaceManager) CreateWindow(width, height uint32, title string) error {
	core.LogDebugOp("WindowManager", "createWindow", "Start time : %f", sm.backend.Time())

	sm.backend.SetHints(Hints{
		ContextVersionMajor: GL_MAJOR,
		ContextVersionMinor: GL_MINOR,
		CoreProfile:         true,
		Visible:             false,
		Resizable:           true,
	})

	if sm.active != nil {
		sm.active.Destroy()
		sm.active = nil
	}

	surface := NewSurface(sm.backend)
	if err := surface.Create(width, height, title); err != nil {
		return core.NewError(core.KindResource, "WindowManager", "createWindow", fmt.Errorf("window creation failed: %w", err))
	}
	sm.active = surface

	surface.MakeCurrent()

	if err := sm.backend.LoadGraphics(); err != nil {
		return core.NewError(core.KindResource, "WindowManager", "createWindow", fmt.Errorf("failed to load graphics functions: %w", err))
	}

	surface.installCallbacks()
	surface.Native().SetCursorMode(CursorDisabled)
	if sm.vsync {
		sm.backend.SwapInterval(1)
	} else {
		sm.backend.SwapInterval(0)
	}

	info := sm.backend.GraphicsInfo()
	core.LogDebugOp("Window", "OpenGL", "Version: %s", info.Version)
	core.LogDebugOp("Window", "OpenGL", "Vendor: %s", info.Vendor)
	core.LogDebugOp("Window", "OpenGL", "Renderer: %s", info.Renderer)
	core.LogDebugOp("WindowManager", "createWindow", "Finish time: %f", sm.backend.Time())
	return nil
}

// Native is the active window handle, or nil.
func (sm *SurfaceManager) Native() NativeWindow {
	if sm.active == nil {
		return nil
	}
	return sm.active.Native()
}

func (sm *SurfaceManager) Width() uint32 {
	if sm.active == nil {
		return 0
	}
	return sm.active.Width()
}

func (sm *SurfaceManager) Height() uint32 {
	if sm.active == nil {
		return 0
	}
	return sm.active.Height()
}

// Aspect returns width/height of the active surface, or -1 when there is none.
// -1 is a sentinel for "no valid surface", never a usable ratio.
func (sm *SurfaceManager) Aspect() float32 {
	if sm.active == nil {
		return -1
	}
	return sm.active.Aspect()
}

func (sm *SurfaceManager) ShouldClose() bool {
	if sm.active == nil {
		return true
	}
	return sm.active.ShouldClose()
}

func (sm *SurfaceManager) PollEvents() {
	if sm.active != nil {
		sm.active.PollEvents()
	}
}

func (sm *SurfaceManager) SwapBuffers() {
	if sm.active != nil {
		sm.active.SwapBuffers()
	}
}

func (sm *SurfaceManager) RequestClose() {
	if sm.active != nil {
		sm.active.RequestClose()
	}
}

func (sm *SurfaceManager) SetContextPointer(target EventTarget) error {
	if sm.active == nil {
		return nil
	}
	return sm.active.SetContextPointer(target)
}

func (sm *SurfaceManager) UpdateViewport(width, height uint32) {
	if sm.active != nil {
		sm.active.UpdateViewport(width, height)
	}
}

func (sm *SurfaceManager) ToggleVisibility() bool {
	if sm.active == nil {
		return false
	}
	visible, err := sm.active.ToggleVisibility()
	return err == nil && visible
}

func (sm *SurfaceManager) ToggleCursorLock() bool {
	if sm.active == nil {
		return false
	}
	locked, err := sm.active.ToggleCursorLock()
	return err == nil && locked
}

// Close destroys the active surface and shuts the backend down.
func (sm *SurfaceManager) Close() {
	if sm.active != nil {
		sm.active.Destroy()
		sm.active = nil
	}
	sm.backend.Terminate()
}
