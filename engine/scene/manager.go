package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/starlet/engine/core"
)

// SceneFileExtension is appended to scene names to find their description.
const SceneFileExtension = ".toml"

// Reader loads the bytes of a file.
type Reader interface {
	Read(path string) ([]byte, error)
}

type diskReader struct{}

func (diskReader) Read(path string) ([]byte, error) { return os.ReadFile(path) }

// Manager owns the current scene and loads scene descriptions from disk.
type Manager struct {
	basePath string
	reader   Reader
	scene    *Scene
}

func NewManager() *Manager {
	return &Manager{scene: NewScene(""), reader: diskReader{}}
}

// SetReader routes scene file reads through r, e.g. an asset manager that
// watches for changes.
func (m *Manager) SetReader(r Reader) {
	if r == nil {
		r = diskReader{}
	}
	m.reader = r
}

func (m *Manager) SetBasePath(path string) {
	m.basePath = path
}

func (m *Manager) BasePath() string {
	return m.basePath
}

// FileName maps a scene name to the file that describes it.
func FileName(name string) string {
	if strings.HasSuffix(name, SceneFileExtension) {
		return name
	}
	return name + SceneFileExtension
}

// LoadSceneDescription replaces the current scene with the one described in
// file, relative to the base path. The current scene is kept on failure.
func (m *Manager) LoadSceneDescription(file string) error {
	path := filepath.Join(m.basePath, file)
	data, err := m.reader.Read(path)
	if err != nil {
		return core.NewError(core.KindLoad, "SceneManager", "loadScene", fmt.Errorf("failed to open scene file %s: %w", path, err))
	}
	s, err := parseScene(strings.TrimSuffix(filepath.Base(file), SceneFileExtension), data)
	if err != nil {
		return core.NewError(core.KindLoad, "SceneManager", "loadScene", err)
	}
	m.scene = s
	core.LogDebugOp("SceneManager", "loadScene", "Loaded scene %s with %d entities", s.Name, len(s.Entities()))
	return nil
}

// Scene returns the current scene; never nil.
func (m *Manager) Scene() *Scene {
	return m.scene
}
