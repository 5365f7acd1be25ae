package graphics

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/spaghettifunk/starlet/engine/gpu"
	"github.com/spaghettifunk/starlet/engine/jobs"
	"github.com/spaghettifunk/starlet/engine/resources"
	"github.com/spaghettifunk/starlet/engine/scene"
)

// ResourceManager uploads scene geometry and textures to the device and
// hands the resulting handles back to the scene components.
type ResourceManager struct {
	device   gpu.Device
	reader   Reader
	jobs     *jobs.JobSystem
	basePath string

	meshes   map[string]scene.MeshHandle
	textures map[string]scene.TextureHandle
	uploaded []scene.MeshHandle
}

func NewResourceManager(device gpu.Device, reader Reader) *ResourceManager {
	return &ResourceManager{
		device:   device,
		reader:   readerOrDisk(reader),
		meshes:   make(map[string]scene.MeshHandle),
		textures: make(map[string]scene.TextureHandle),
	}
}

func (rm *ResourceManager) SetBasePath(path string) {
	rm.basePath = path
}

// SetJobSystem lets texture decoding run on the job workers. Uploads always
// happen on the calling thread.
func (rm *ResourceManager) SetJobSystem(js *jobs.JobSystem) {
	rm.jobs = js
}

// LoadMeshes parses and uploads the model file of every model that has one.
// Models sharing a file share the uploaded mesh.
func (rm *ResourceManager) LoadMeshes(models []*scene.Model) error {
	for _, m := range models {
		if m.Path == "" {
			continue
		}
		path := filepath.Join(rm.basePath, m.Path)
		if h, ok := rm.meshes[path]; ok {
			m.Mesh = h
			continue
		}
		if ext := strings.ToLower(filepath.Ext(path)); ext != ".obj" {
			return core.NewError(core.KindLoad, "ResourceManager", "loadMeshes", fmt.Errorf("unsupported model format '%s' for %s", ext, m.Name))
		}
		data, err := rm.reader.Read(path)
		if err != nil {
			return core.NewError(core.KindLoad, "ResourceManager", "loadMeshes", err)
		}
		mesh, err := resources.ParseOBJ(m.Name, bytes.NewReader(data))
		if err != nil {
			return core.NewError(core.KindLoad, "ResourceManager", "loadMeshes", err)
		}
		h, err := rm.upload(mesh)
		if err != nil {
			return core.NewError(core.KindLoad, "ResourceManager", "loadMeshes", err)
		}
		rm.meshes[path] = h
		m.Mesh = h
	}
	return nil
}

// LoadTextures decodes and uploads every texture, keyed by its name.
func (rm *ResourceManager) LoadTextures(textures []*scene.TextureData) error {
	var pending []*scene.TextureData
	for _, t := range textures {
		if h, ok := rm.textures[t.Name]; ok {
			t.Handle = h
			continue
		}
		pending = append(pending, t)
	}

	decoded := make([]*image.RGBA, len(pending))
	tasks := make([]func() error, len(pending))
	for i, t := range pending {
		i, t := i, t
		tasks[i] = func() error {
			data, err := rm.reader.Read(filepath.Join(rm.basePath, t.Path))
			if err != nil {
				return err
			}
			img, err := resources.DecodeImage(bytes.NewReader(data), t.FlipY)
			if err != nil {
				return fmt.Errorf("texture %s: %w", t.Name, err)
			}
			decoded[i] = img
			return nil
		}
	}
	for _, err := range rm.runAll(tasks) {
		if err != nil {
			return core.NewError(core.KindLoad, "ResourceManager", "loadTextures", err)
		}
	}

	for i, t := range pending {
		if h, ok := rm.textures[t.Name]; ok {
			t.Handle = h
			continue
		}
		id, err := rm.device.UploadTexture(decoded[i])
		if err != nil {
			return core.NewError(core.KindLoad, "ResourceManager", "loadTextures", fmt.Errorf("texture %s: %w", t.Name, err))
		}
		t.Handle = scene.TextureHandle(id)
		rm.textures[t.Name] = t.Handle
	}
	return nil
}

func (rm *ResourceManager) runAll(tasks []func() error) []error {
	if rm.jobs != nil {
		return rm.jobs.RunAll(tasks)
	}
	errs := make([]error, len(tasks))
	for i, task := range tasks {
		errs[i] = task()
	}
	return errs
}

// ProcessPrimitives generates and uploads a mesh for every primitive entity.
func (rm *ResourceManager) ProcessPrimitives(sm *scene.Manager) error {
	s := sm.Scene()
	for _, id := range scene.EntitiesWith[scene.Primitive](s) {
		p, _ := scene.GetComponent[scene.Primitive](s, id)
		model, ok := scene.GetComponent[scene.Model](s, id)
		if !ok {
			continue
		}
		mesh, err := resources.GeneratePrimitive(string(p.Type), p.Size)
		if err != nil {
			return core.NewError(core.KindLoad, "ResourceManager", "processPrimitives", err)
		}
		if model.Mesh, err = rm.upload(mesh); err != nil {
			return core.NewError(core.KindLoad, "ResourceManager", "processPrimitives", err)
		}
	}
	return nil
}

// ProcessGrids generates and uploads one combined mesh per grid entity.
func (rm *ResourceManager) ProcessGrids(sm *scene.Manager) error {
	s := sm.Scene()
	for _, id := range scene.EntitiesWith[scene.Grid](s) {
		g, _ := scene.GetComponent[scene.Grid](s, id)
		model, ok := scene.GetComponent[scene.Model](s, id)
		if !ok {
			continue
		}
		mesh, err := resources.GenerateGrid(string(g.Primitive), g.Size, g.Columns, g.Rows, g.Spacing)
		if err != nil {
			return core.NewError(core.KindLoad, "ResourceManager", "processGrids", err)
		}
		if model.Mesh, err = rm.upload(mesh); err != nil {
			return core.NewError(core.KindLoad, "ResourceManager", "processGrids", err)
		}
	}
	return nil
}

// ProcessTextureConnections resolves the texture names of every model to
// loaded texture handles.
func (rm *ResourceManager) ProcessTextureConnections(s *scene.Scene) error {
	for _, m := range scene.ComponentsOfType[scene.Model](s) {
		m.TextureHandles = m.TextureHandles[:0]
		for _, name := range m.TextureNames {
			h, ok := rm.textures[name]
			if !ok {
				return core.NewError(core.KindLoad, "ResourceManager", "processTextureConnections", fmt.Errorf("model %s references unknown texture %s", m.Name, name))
			}
			m.TextureHandles = append(m.TextureHandles, h)
		}
	}
	return nil
}

func (rm *ResourceManager) upload(mesh *resources.MeshData) (scene.MeshHandle, error) {
	id, err := rm.device.UploadMesh(mesh.Vertices, mesh.Indices)
	if err != nil {
		return 0, fmt.Errorf("mesh %s: %w", mesh.Name, err)
	}
	h := scene.MeshHandle(id)
	rm.uploaded = append(rm.uploaded, h)
	return h, nil
}

// Release deletes every uploaded mesh and texture.
func (rm *ResourceManager) Release() {
	for _, h := range rm.uploaded {
		rm.device.DeleteMesh(uint32(h))
	}
	rm.uploaded = nil
	clear(rm.meshes)
	for _, h := range rm.textures {
		rm.device.DeleteTexture(uint32(h))
	}
	clear(rm.textures)
}
