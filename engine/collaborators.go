package engine

import (
	"github.com/spaghettifunk/starlet/engine/scene"
)

// GraphicsState owns the active program and fixed-function state.
type GraphicsState interface {
	SetProgram(program uint32) error
	Program() uint32
	ApplyDefaults()
	ToggleWireframe() bool
}

type ShaderCompiler interface {
	SetBasePath(path string)
	CreateProgramFromPaths(name, vertexFile, fragmentFile string) error
	ProgramID(name string) uint32
	ProgramsUsing(path string) []string
	Reload(name string, apply func(id uint32) error) (uint32, error)
	Release()
}

// ResourceLoader turns the components of a freshly loaded scene into GPU
// resources.
type ResourceLoader interface {
	SetBasePath(path string)
	LoadMeshes(models []*scene.Model) error
	LoadTextures(textures []*scene.TextureData) error
	ProcessPrimitives(sm *scene.Manager) error
	ProcessGrids(sm *scene.Manager) error
	ProcessTextureConnections(s *scene.Scene) error
	Release()
}

type FrameRenderer interface {
	Init(program uint32) error
	RenderFrame(program uint32, s *scene.Scene, aspect float32)
}

type Option func(*Engine)

func WithGraphicsState(state GraphicsState) Option {
	return func(e *Engine) { e.state = state }
}

func WithShaderCompiler(shaders ShaderCompiler) Option {
	return func(e *Engine) { e.shaders = shaders }
}

func WithResourceLoader(resources ResourceLoader) Option {
	return func(e *Engine) { e.resources = resources }
}

func WithRenderer(renderer FrameRenderer) Option {
	return func(e *Engine) { e.renderer = renderer }
}
