package engine

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/spaghettifunk/starlet/engine/math"
	"github.com/spaghettifunk/starlet/engine/platform"
	"github.com/spaghettifunk/starlet/engine/scene"
)

var errFake = errors.New("fake failure")

type fakeBackend struct {
	createErr  error
	created    []*fakeWindow
	terminated bool
	now        float64
	onPoll     func()
}

func (b *fakeBackend) Init() error                        { return nil }
func (b *fakeBackend) Terminate()                         { b.terminated = true }
func (b *fakeBackend) Time() float64                      { return b.now }
func (b *fakeBackend) SetErrorCallback(func(int, string)) {}
func (b *fakeBackend) SetHints(platform.Hints)            {}
func (b *fakeBackend) CreateWindow(width, height int, title string) (platform.NativeWindow, error) {
	if b.createErr != nil {
		return nil, b.createErr
	}
	w := &fakeWindow{}
	b.created = append(b.created, w)
	return w, nil
}
func (b *fakeBackend) PollEvents() {
	b.now += 0.016
	if b.onPoll != nil {
		b.onPoll()
	}
}
func (b *fakeBackend) SwapInterval(int)    {}
func (b *fakeBackend) LoadGraphics() error { return nil }
func (b *fakeBackend) GraphicsInfo() platform.GraphicsInfo {
	return platform.GraphicsInfo{Version: "3.3 fake"}
}

func (b *fakeBackend) window() *fakeWindow {
	return b.created[len(b.created)-1]
}

type fakeWindow struct {
	destroyed   int
	shouldClose bool
	swaps       int
	visible     bool
	cursor      platform.CursorMode
	cursorX     float64
	cursorY     float64
	viewport    [4]int
	callbacks   platform.Callbacks
}

func (w *fakeWindow) Destroy()                            { w.destroyed++ }
func (w *fakeWindow) ShouldClose() bool                   { return w.shouldClose }
func (w *fakeWindow) SetShouldClose(v bool)               { w.shouldClose = v }
func (w *fakeWindow) SwapBuffers()                        { w.swaps++ }
func (w *fakeWindow) MakeContextCurrent()                 {}
func (w *fakeWindow) Visible() bool                       { return w.visible }
func (w *fakeWindow) Show()                               { w.visible = true }
func (w *fakeWindow) Hide()                               { w.visible = false }
func (w *fakeWindow) CursorMode() platform.CursorMode     { return w.cursor }
func (w *fakeWindow) SetCursorMode(m platform.CursorMode) { w.cursor = m }
func (w *fakeWindow) CursorPos() (float64, float64)       { return w.cursorX, w.cursorY }
func (w *fakeWindow) SetViewport(x, y, width, height int) { w.viewport = [4]int{x, y, width, height} }
func (w *fakeWindow) SetCallbacks(c platform.Callbacks)   { w.callbacks = c }

func (w *fakeWindow) press(key core.Key) {
	w.callbacks.Key(key, 0, core.ActionPress, 0)
}

// fakeDevice is a gpu.Device that hands out ids and records state changes.
type fakeDevice struct {
	nextID       uint32
	wireframe    bool
	clears       int
	depthTests   []bool
	clearColours []math.Vec4
	deletedProgs []uint32
	missing      map[string]bool
}

func (d *fakeDevice) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *fakeDevice) CompileProgram(string, string) (uint32, error) { return d.id(), nil }
func (d *fakeDevice) DeleteProgram(p uint32)                        { d.deletedProgs = append(d.deletedProgs, p) }
func (d *fakeDevice) UseProgram(uint32)                             {}
func (d *fakeDevice) UniformLocation(_ uint32, name string) int32 {
	if d.missing[name] {
		return -1
	}
	return 0
}
func (d *fakeDevice) SetUniformMat4(int32, math.Mat4) {}
func (d *fakeDevice) SetUniformVec4(int32, math.Vec4) {}
func (d *fakeDevice) SetUniformInt(int32, int32)      {}
func (d *fakeDevice) UploadMesh([]math.Vertex3D, []uint32) (uint32, error) {
	return d.id(), nil
}
func (d *fakeDevice) DrawMesh(uint32)                           {}
func (d *fakeDevice) DeleteMesh(uint32)                         {}
func (d *fakeDevice) UploadTexture(*image.RGBA) (uint32, error) { return d.id(), nil }
func (d *fakeDevice) BindTexture(uint32, uint32)                {}
func (d *fakeDevice) DeleteTexture(uint32)                      {}
func (d *fakeDevice) SetDepthTest(enabled bool)                 { d.depthTests = append(d.depthTests, enabled) }
func (d *fakeDevice) SetFaceCulling(bool)                       {}
func (d *fakeDevice) SetWireframe(enabled bool)                 { d.wireframe = enabled }
func (d *fakeDevice) SetClearColour(c math.Vec4)                { d.clearColours = append(d.clearColours, c) }
func (d *fakeDevice) Clear()                                    { d.clears++ }

// recordingLoader records the pipeline steps and fails at failAt.
type recordingLoader struct {
	failAt string
	steps  []string
}

func (l *recordingLoader) step(name string) error {
	l.steps = append(l.steps, name)
	if name == l.failAt {
		return errFake
	}
	return nil
}

func (l *recordingLoader) SetBasePath(string)              {}
func (l *recordingLoader) LoadMeshes([]*scene.Model) error { return l.step("loadMeshes") }
func (l *recordingLoader) LoadTextures([]*scene.TextureData) error {
	return l.step("loadTextures")
}
func (l *recordingLoader) ProcessPrimitives(*scene.Manager) error { return l.step("processPrimitives") }
func (l *recordingLoader) ProcessGrids(*scene.Manager) error      { return l.step("processGrids") }
func (l *recordingLoader) ProcessTextureConnections(*scene.Scene) error {
	return l.step("processTextureConnections")
}
func (l *recordingLoader) Release() {}

// recordingRenderer records Init calls and refuses the programs in reject.
type recordingRenderer struct {
	inits   []uint32
	program uint32
	reject  map[uint32]bool
	frames  int
	aspects []float32
}

func (r *recordingRenderer) Init(program uint32) error {
	r.inits = append(r.inits, program)
	if r.reject[program] {
		return errFake
	}
	r.program = program
	return nil
}

func (r *recordingRenderer) RenderFrame(_ uint32, _ *scene.Scene, aspect float32) {
	r.frames++
	r.aspects = append(r.aspects, aspect)
}

const testVertexShader = "#version 330 core\nvoid main() {}\n"

// assetTree writes a minimal asset directory and returns its root.
func assetTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"shaders/vertex_shader.glsl":   testVertexShader,
		"shaders/fragment_shader.glsl": "#version 330 core\nout vec4 c;\nvoid main() { c = vec4(1.0); }\n",
		"scenes/EmptyScene.toml":       "name = \"Empty\"\n",
		"scenes/Default.toml":          "name = \"Default\"\n\n[[camera]]\nname = \"main\"\n\n[[primitive]]\nname = \"floor\"\ntype = \"plane\"\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func testConfig(assets string) *Config {
	cfg := DefaultConfig()
	cfg.Assets = assets
	cfg.HotReload = false
	cfg.LogLevel = "debug"
	return cfg
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeBackend, *fakeDevice) {
	t.Helper()
	backend := &fakeBackend{}
	device := &fakeDevice{}
	e, err := New(testConfig(assetTree(t)), backend, device, opts...)
	require.NoError(t, err)
	return e, backend, device
}
