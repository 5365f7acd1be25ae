package platform

import "github.com/spaghettifunk/starlet/engine/core"

type CursorMode int

const (
	CursorNormal CursorMode = iota
	CursorHidden
	CursorDisabled
)

// Hints are applied to the backend before a window is created.
type Hints struct {
	ContextVersionMajor int
	ContextVersionMinor int
	CoreProfile         bool
	Visible             bool
	Resizable           bool
}

// GraphicsInfo identifies the graphics driver behind a context.
type GraphicsInfo struct {
	Version  string
	Vendor   string
	Renderer string
}

// Callbacks are the native entry points installed on a window. The backend
// invokes them synchronously from inside PollEvents.
type Callbacks struct {
	Key             func(key core.Key, scancode int, action core.Action, mods core.ModifierKey)
	FramebufferSize func(width, height int)
	Scroll          func(xOffset, yOffset float64)
	MouseButton     func(button core.MouseButton, action core.Action, mods core.ModifierKey)
}

// Backend is the process-wide windowing library.
type Backend interface {
	Init() error
	Terminate()
	Time() float64
	SetErrorCallback(fn func(code int, description string))
	SetHints(hints Hints)
	CreateWindow(width, height int, title string) (NativeWindow, error)
	PollEvents()
	SwapInterval(interval int)
	// LoadGraphics resolves the graphics entry points for the current context.
	LoadGraphics() error
	GraphicsInfo() GraphicsInfo
}

// NativeWindow is one display plus its rendering context.
type NativeWindow interface {
	Destroy()
	ShouldClose() bool
	SetShouldClose(value bool)
	SwapBuffers()
	MakeContextCurrent()
	Visible() bool
	Show()
	Hide()
	CursorMode() CursorMode
	SetCursorMode(mode CursorMode)
	CursorPos() (float64, float64)
	SetViewport(x, y, width, height int)
	SetCallbacks(callbacks Callbacks)
}
