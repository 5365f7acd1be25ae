// Package desktop implements the platform backend on top of GLFW with an
// OpenGL 3.3 core context.
package desktop

import (
	"errors"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/starlet/engine/platform"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type Backend struct {
	onError func(code int, description string)
}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Init() error {
	return b.report(glfw.Init())
}

func (b *Backend) Terminate() {
	glfw.Terminate()
}

func (b *Backend) Time() float64 {
	return glfw.GetTime()
}

// SetErrorCallback receives every error reported by GLFW calls made through
// this backend.
func (b *Backend) SetErrorCallback(fn func(code int, description string)) {
	b.onError = fn
}

func (b *Backend) SetHints(hints platform.Hints) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, hints.ContextVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, hints.ContextVersionMinor)
	if hints.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		// macOS refuses a core context without it
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	glfw.WindowHint(glfw.Visible, glfwBool(hints.Visible))
	glfw.WindowHint(glfw.Resizable, glfwBool(hints.Resizable))
}

func (b *Backend) CreateWindow(width, height int, title string) (platform.NativeWindow, error) {
	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, b.report(err)
	}
	return &Window{w: w}, nil
}

func (b *Backend) PollEvents() {
	glfw.PollEvents()
}

func (b *Backend) SwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

// LoadGraphics resolves the OpenGL entry points for the current context.
func (b *Backend) LoadGraphics() error {
	return gl.Init()
}

func (b *Backend) GraphicsInfo() platform.GraphicsInfo {
	return platform.GraphicsInfo{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
}

func (b *Backend) report(err error) error {
	if err == nil || b.onError == nil {
		return err
	}
	var gerr *glfw.Error
	if errors.As(err, &gerr) {
		b.onError(int(gerr.Code), gerr.Desc)
	} else {
		b.onError(0, err.Error())
	}
	return err
}

func glfwBool(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}
