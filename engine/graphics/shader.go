package graphics

import (
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/spaghettifunk/starlet/engine/gpu"
)

type program struct {
	id           uint32
	vertexPath   string
	fragmentPath string
}

// ShaderManager compiles named programs from shader files under a base path.
type ShaderManager struct {
	device   gpu.Device
	reader   Reader
	basePath string
	programs map[string]program
}

func NewShaderManager(device gpu.Device, reader Reader) *ShaderManager {
	return &ShaderManager{
		device:   device,
		reader:   readerOrDisk(reader),
		programs: make(map[string]program),
	}
}

func (sm *ShaderManager) SetBasePath(path string) {
	sm.basePath = path
}

// CreateProgramFromPaths compiles and links a program from two files
// relative to the base path. An existing program with the same name is
// replaced only when the new one links.
func (sm *ShaderManager) CreateProgramFromPaths(name, vertexFile, fragmentFile string) error {
	p := program{
		vertexPath:   filepath.Join(sm.basePath, vertexFile),
		fragmentPath: filepath.Join(sm.basePath, fragmentFile),
	}
	id, err := sm.compile(p)
	if err != nil {
		return core.NewError(core.KindResource, "ShaderManager", "createProgramFromPaths", fmt.Errorf("program %s: %w", name, err))
	}
	if old, ok := sm.programs[name]; ok {
		sm.device.DeleteProgram(old.id)
	}
	p.id = id
	sm.programs[name] = p
	core.LogDebugOp("ShaderManager", "createProgramFromPaths", "Program %s linked with id %d", name, id)
	return nil
}

func (sm *ShaderManager) compile(p program) (uint32, error) {
	vs, err := sm.reader.Read(p.vertexPath)
	if err != nil {
		return 0, err
	}
	fs, err := sm.reader.Read(p.fragmentPath)
	if err != nil {
		return 0, err
	}
	return sm.device.CompileProgram(string(vs), string(fs))
}

// ProgramID returns the id of a named program, zero if there is none.
func (sm *ShaderManager) ProgramID(name string) uint32 {
	return sm.programs[name].id
}

// ProgramsUsing lists the programs built from the given shader file.
func (sm *ShaderManager) ProgramsUsing(path string) []string {
	path = filepath.Clean(path)
	var names []string
	for name, p := range sm.programs {
		if filepath.Clean(p.vertexPath) == path || filepath.Clean(p.fragmentPath) == path {
			names = append(names, name)
		}
	}
	return names
}

// Reload recompiles a program from its files. When apply is set it is handed
// the new id before anything else sees it; the old program is deleted only
// once apply accepts the new one. On any failure the old program stays
// registered and the new one is released.
func (sm *ShaderManager) Reload(name string, apply func(id uint32) error) (uint32, error) {
	p, ok := sm.programs[name]
	if !ok {
		return 0, core.NewError(core.KindPrecondition, "ShaderManager", "reload", fmt.Errorf("unknown program %s", name))
	}
	id, err := sm.compile(p)
	if err != nil {
		return 0, core.NewError(core.KindResource, "ShaderManager", "reload", fmt.Errorf("program %s: %w", name, err))
	}
	if apply != nil {
		if err := apply(id); err != nil {
			sm.device.DeleteProgram(id)
			return 0, core.NewError(core.KindResource, "ShaderManager", "reload", fmt.Errorf("program %s rejected: %w", name, err))
		}
	}
	sm.device.DeleteProgram(p.id)
	p.id = id
	sm.programs[name] = p
	return id, nil
}

func (sm *ShaderManager) Release() {
	for _, p := range sm.programs {
		sm.device.DeleteProgram(p.id)
	}
	clear(sm.programs)
}
