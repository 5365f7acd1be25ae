package engine

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/starlet/engine/assets"
	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/spaghettifunk/starlet/engine/gpu"
	"github.com/spaghettifunk/starlet/engine/graphics"
	"github.com/spaghettifunk/starlet/engine/jobs"
	"github.com/spaghettifunk/starlet/engine/platform"
	"github.com/spaghettifunk/starlet/engine/scene"
)

type Stage uint8

const (
	// Engine is constructed but has no window yet
	StageConstructed Stage = iota
	// Window, program and renderer are ready
	StageInitialized
	// A scene and its resources are loaded
	StageSceneLoaded
	// The frame loop is running
	StageRunning
	// The frame loop exited or the engine was shut down
	StageClosed
)

func (s Stage) String() string {
	switch s {
	case StageConstructed:
		return "constructed"
	case StageInitialized:
		return "initialized"
	case StageSceneLoaded:
		return "scene loaded"
	case StageRunning:
		return "running"
	case StageClosed:
		return "closed"
	default:
		return "unknown"
	}
}

const (
	DefaultSceneName   = "Default"
	EmptySceneName     = "EmptyScene"
	DefaultProgramName = "shader1"
	VertexShaderFile   = "vertex_shader.glsl"
	FragmentShaderFile = "fragment_shader.glsl"

	jobQueueSize = 64
)

type Engine struct {
	config       *Config
	currentStage Stage

	surfaces *platform.SurfaceManager
	clock    *core.Clock
	metrics  *core.FrameMetrics
	input    *core.InputManager
	assets   *assets.Manager
	jobs     *jobs.JobSystem

	state     GraphicsState
	shaders   ShaderCompiler
	resources ResourceLoader
	scenes    *scene.Manager
	renderer  FrameRenderer

	quit     atomic.Bool
	shutdown bool
}

// New builds an engine on the given windowing backend and graphics device.
// Nothing is created on screen until Initialize.
func New(config *Config, backend platform.Backend, device gpu.Device, opts ...Option) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := core.SetLogLevel(config.LogLevel); err != nil {
		core.LogWarn("invalid log level '%s': %s", config.LogLevel, err)
	}

	sm, err := platform.NewSurfaceManager(backend)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	sm.SetVSync(config.Window.VSync)

	js, err := jobs.NewJobSystem(runtime.NumCPU(), jobQueueSize)
	if err != nil {
		return nil, err
	}
	am := assets.NewManager()
	scenes := scene.NewManager()
	scenes.SetReader(am)
	resources := graphics.NewResourceManager(device, am)
	resources.SetJobSystem(js)

	e := &Engine{
		config:       config,
		currentStage: StageConstructed,
		surfaces:     sm,
		clock:        core.NewClock(backend.Time),
		metrics:      core.NewFrameMetrics(),
		input:        core.NewInputManager(),
		assets:       am,
		jobs:         js,
		state:        graphics.NewStateManager(device),
		shaders:      graphics.NewShaderManager(device, am),
		resources:    resources,
		scenes:       scenes,
		renderer:     graphics.NewRenderer(device),
	}
	for _, opt := range opts {
		opt(e)
	}

	if config.Assets != "" {
		e.SetAssetPaths(config.Assets)
	}
	return e, nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// SetAssetPaths points the shader, resource and scene loaders at the asset
// tree rooted at path.
func (e *Engine) SetAssetPaths(path string) {
	e.shaders.SetBasePath(path + "/shaders/")
	e.resources.SetBasePath(path)
	e.scenes.SetBasePath(path + "/scenes/")

	if e.config.HotReload {
		if err := e.assets.Watch(path); err != nil {
			core.LogWarn("asset hot reload disabled: %s", err)
		}
	}
}

// Initialize creates the window, builds the scene program and prepares the
// renderer. It stops at the first failing step; earlier steps are not undone.
func (e *Engine) Initialize(width, height uint32, title string) error {
	core.LogDebugOp("Engine", "initialize", "Start time: %f", e.surfaces.Time())

	if err := e.surfaces.CreateWindow(width, height, title); err != nil {
		return core.NewError(core.KindResource, "Engine", "initialize", fmt.Errorf("failed to initialize window: %w", err))
	}
	// new windows start with the cursor captured
	e.input.SetCursorLocked(true)
	if err := e.shaders.CreateProgramFromPaths(DefaultProgramName, VertexShaderFile, FragmentShaderFile); err != nil {
		return core.NewError(core.KindResource, "Engine", "initialize", fmt.Errorf("failed to create shader program from file: %w", err))
	}
	if err := e.state.SetProgram(e.shaders.ProgramID(DefaultProgramName)); err != nil {
		return core.NewError(core.KindResource, "GLStateManager", "init", fmt.Errorf("failed to set initial program: %w", err))
	}
	if err := e.renderer.Init(e.state.Program()); err != nil {
		return core.NewError(core.KindResource, "Engine", "initialize", fmt.Errorf("failed to setup shaders for renderer: %w", err))
	}
	e.state.ApplyDefaults()
	if err := e.surfaces.SetContextPointer(e); err != nil {
		return err
	}

	e.currentStage = StageInitialized
	core.LogDebugOp("Engine", "initialize", "Finish time: %f", e.surfaces.Time())
	return nil
}

// LoadScene loads a scene description, then its meshes, textures,
// primitives, grids and texture connections in that order, and finally
// registers the default systems. A blank name loads the empty scene.
func (e *Engine) LoadScene(name string) error {
	core.LogDebugOp("Engine", "loadScene", "Start time: %f", e.surfaces.Time())

	if strings.TrimSpace(name) == "" {
		if err := e.scenes.LoadSceneDescription(scene.FileName(EmptySceneName)); err != nil {
			return core.NewError(core.KindLoad, "Engine", "loadScene", fmt.Errorf("no scene loaded and failed to load default %q: %w", EmptySceneName, err))
		}
	} else if err := e.scenes.LoadSceneDescription(scene.FileName(name)); err != nil {
		return core.NewError(core.KindLoad, "Engine", "loadScene", fmt.Errorf("failed to load scene %s: %w", name, err))
	}

	s := e.scenes.Scene()
	steps := []struct {
		op   string
		what string
		run  func() error
	}{
		{"loadMeshes", "load meshes", func() error {
			return e.resources.LoadMeshes(scene.ComponentsOfType[scene.Model](s))
		}},
		{"loadTextures", "load textures", func() error {
			return e.resources.LoadTextures(scene.ComponentsOfType[scene.TextureData](s))
		}},
		{"processPrimitives", "process primitives", func() error {
			return e.resources.ProcessPrimitives(e.scenes)
		}},
		{"processGrids", "process grids", func() error {
			return e.resources.ProcessGrids(e.scenes)
		}},
		{"processTextureConnection", "connect texture handles", func() error {
			return e.resources.ProcessTextureConnections(s)
		}},
	}
	for _, step := range steps {
		core.LogDebugOp("ResourceLoader", step.op, "Start time: %f", e.surfaces.Time())
		if err := step.run(); err != nil {
			return core.NewError(core.KindLoad, "Engine", step.op, fmt.Errorf("failed to %s for scene %s: %w", step.what, name, err))
		}
		core.LogDebugOp("ResourceLoader", step.op, "Finish time: %f", e.surfaces.Time())
	}

	for _, system := range scene.DefaultSystems() {
		s.RegisterSystem(system)
	}

	e.currentStage = StageSceneLoaded
	core.LogDebugOp("Engine", "loadScene", "Finish time: %f", e.surfaces.Time())
	return nil
}

// Run shows the window and drives frames until the window is asked to close.
func (e *Engine) Run() error {
	e.currentStage = StageRunning
	e.surfaces.ToggleVisibility()

	for !e.surfaces.ShouldClose() {
		if e.quit.Load() {
			e.surfaces.RequestClose()
			continue
		}
		deltaTime := e.clock.Tick()

		e.input.Reset()
		e.surfaces.PollEvents()
		e.input.UpdateMousePosition(e.cursor())

		e.handleKeyEvents(e.input.ConsumeKeyEvents())
		e.handleButtonEvents(e.input.ConsumeButtonEvents())

		s := e.scenes.Scene()
		s.UpdateSystems(e.input, deltaTime)
		e.renderer.RenderFrame(e.state.Program(), s, e.surfaces.Aspect())

		e.surfaces.SwapBuffers()

		e.pollAssetChanges()
		if e.metrics.Update(deltaTime) {
			core.LogDebug("FPS: %.0f (%.2f ms/frame)", e.metrics.FPS(), e.metrics.FrameTime())
		}
	}

	e.currentStage = StageClosed
	return nil
}

// cursor returns the window as a cursor source; nil when there is no window.
func (e *Engine) cursor() core.CursorSource {
	if w := e.surfaces.Native(); w != nil {
		return w
	}
	return nil
}

// RequestClose asks the frame loop to stop at the start of the next frame.
// Safe to call from any goroutine.
func (e *Engine) RequestClose() {
	e.quit.Store(true)
}

// RunUntilSignal is Run with a close request on the first value received
// from signals. The watcher goroutine has exited by the time it returns.
func (e *Engine) RunUntilSignal(signals <-chan os.Signal) error {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case sig := <-signals:
			core.LogInfo("Received %s, closing", sig)
			e.RequestClose()
		case <-done:
		}
	}()

	err := e.Run()
	close(done)
	wg.Wait()
	return err
}

func (e *Engine) handleKeyEvents(events []core.KeyEvent) {
	for _, event := range events {
		if event.Action != core.ActionPress {
			continue
		}
		switch event.Key {
		case core.KeyEscape:
			e.surfaces.RequestClose()
		case core.KeyP:
			if debugBuild {
				e.ToggleWireframe()
			}
		case core.KeyC:
			if debugBuild {
				e.ToggleCursorLock()
			}
		}
	}
}

func (e *Engine) handleButtonEvents(events []core.MouseButtonEvent) {
	for _, event := range events {
		action, ok := event.Action.Label()
		if !ok {
			continue
		}
		core.LogDebugOp("Input", "Mouse", "Button %s %s", event.Button, action)
	}
}

func (e *Engine) pollAssetChanges() {
	for {
		select {
		case change := <-e.assets.Changes():
			e.onAssetChanged(change)
		default:
			return
		}
	}
}

func (e *Engine) onAssetChanged(change assets.Change) {
	if change.Type != assets.AssetTypeShader {
		core.LogInfo("%s %s changed, reload the scene to apply it", change.Type, change.Path)
		return
	}
	for _, name := range e.shaders.ProgramsUsing(change.Path) {
		var apply func(uint32) error
		if name == DefaultProgramName {
			apply = e.switchProgram
		}
		if _, err := e.shaders.Reload(name, apply); err != nil {
			continue
		}
		core.LogInfo("Program %s reloaded from %s", name, change.Path)
	}
}

// switchProgram points the renderer and then the state manager at program.
// If either refuses, the renderer is pointed back at the current program so
// both keep agreeing on it.
func (e *Engine) switchProgram(program uint32) error {
	current := e.state.Program()
	err := e.renderer.Init(program)
	if err == nil {
		err = e.state.SetProgram(program)
	}
	if err != nil && current != 0 {
		if restoreErr := e.renderer.Init(current); restoreErr != nil {
			core.LogErrorOp("Engine", "switchProgram", "failed to restore program %d: %s", current, restoreErr)
		}
	}
	return err
}

func (e *Engine) UpdateViewport(width, height int) {
	e.surfaces.UpdateViewport(uint32(max(width, 0)), uint32(max(height, 0)))
}

func (e *Engine) OnKey(event core.KeyEvent) {
	e.input.OnKey(event)
}

func (e *Engine) OnScroll(event core.ScrollEvent) {
	e.input.OnScroll(event)
}

func (e *Engine) OnButton(event core.MouseButtonEvent) {
	e.input.OnButton(event)
}

func (e *Engine) ToggleCursorLock() {
	e.input.SetCursorLocked(e.surfaces.ToggleCursorLock())
}

func (e *Engine) ToggleWireframe() {
	e.state.ToggleWireframe()
}

// Shutdown releases GPU resources, closes the window, stops the asset
// watcher and terminates the backend. Calling it again does nothing.
func (e *Engine) Shutdown() error {
	if e.shutdown {
		return nil
	}
	e.shutdown = true

	if e.currentStage != StageConstructed {
		e.resources.Release()
		e.shaders.Release()
	}
	e.surfaces.Close()
	_ = e.jobs.Shutdown()
	err := e.assets.Shutdown()
	e.currentStage = StageClosed
	return err
}
