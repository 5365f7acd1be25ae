package platform

import (
	"errors"

	"github.com/spaghettifunk/starlet/engine/core"
)

type fakeBackend struct {
	initErr     error
	createErr   error
	loadErr     error
	hints       []Hints
	created     []*fakeWindow
	polls       int
	interval    int
	terminated  bool
	errCallback func(int, string)
	now         float64
	onPoll      func()
}

func (b *fakeBackend) Init() error { return b.initErr }
func (b *fakeBackend) Terminate()  { b.terminated = true }
func (b *fakeBackend) Time() float64 {
	return b.now
}
func (b *fakeBackend) SetErrorCallback(fn func(int, string)) { b.errCallback = fn }
func (b *fakeBackend) SetHints(h Hints)                      { b.hints = append(b.hints, h) }
func (b *fakeBackend) CreateWindow(width, height int, title string) (NativeWindow, error) {
	if b.createErr != nil {
		return nil, b.createErr
	}
	w := &fakeWindow{width: width, height: height, title: title, cursor: CursorNormal}
	b.created = append(b.created, w)
	return w, nil
}
func (b *fakeBackend) PollEvents() {
	b.polls++
	if b.onPoll != nil {
		b.onPoll()
	}
}
func (b *fakeBackend) SwapInterval(n int) { b.interval = n }
func (b *fakeBackend) LoadGraphics() error {
	return b.loadErr
}
func (b *fakeBackend) GraphicsInfo() GraphicsInfo {
	return GraphicsInfo{Version: "3.3 fake", Vendor: "test", Renderer: "fake"}
}

type fakeWindow struct {
	width, height int
	title         string
	destroyed     int
	shouldClose   bool
	swaps         int
	current       bool
	visible       bool
	cursor        CursorMode
	cursorX       float64
	cursorY       float64
	viewport      [4]int
	callbacks     Callbacks
}

func (w *fakeWindow) Destroy()                  { w.destroyed++ }
func (w *fakeWindow) ShouldClose() bool         { return w.shouldClose }
func (w *fakeWindow) SetShouldClose(value bool) { w.shouldClose = value }
func (w *fakeWindow) SwapBuffers()              { w.swaps++ }
func (w *fakeWindow) MakeContextCurrent()       { w.current = true }
func (w *fakeWindow) Visible() bool             { return w.visible }
func (w *fakeWindow) Show()                     { w.visible = true }
func (w *fakeWindow) Hide()                     { w.visible = false }
func (w *fakeWindow) CursorMode() CursorMode    { return w.cursor }
func (w *fakeWindow) SetCursorMode(m CursorMode) {
	w.cursor = m
}
func (w *fakeWindow) CursorPos() (float64, float64) { return w.cursorX, w.cursorY }
func (w *fakeWindow) SetViewport(x, y, width, height int) {
	w.viewport = [4]int{x, y, width, height}
}
func (w *fakeWindow) SetCallbacks(c Callbacks) { w.callbacks = c }

type recordingTarget struct {
	keys      []core.KeyEvent
	scrolls   []core.ScrollEvent
	buttons   []core.MouseButtonEvent
	viewports [][2]int
}

func (r *recordingTarget) OnKey(e core.KeyEvent)            { r.keys = append(r.keys, e) }
func (r *recordingTarget) OnScroll(e core.ScrollEvent)      { r.scrolls = append(r.scrolls, e) }
func (r *recordingTarget) OnButton(e core.MouseButtonEvent) { r.buttons = append(r.buttons, e) }
func (r *recordingTarget) UpdateViewport(w, h int) {
	r.viewports = append(r.viewports, [2]int{w, h})
}

var errFake = errors.New("fake failure")
