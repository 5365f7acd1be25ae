package graphics

import (
	"errors"
	"image"
	"os"

	"github.com/spaghettifunk/starlet/engine/math"
)

// fakeDevice hands out increasing ids and records what it was asked to do.
type fakeDevice struct {
	nextID     uint32
	compileErr error
	uploadErr  error
	uniforms   map[string]int32

	compiled      [][2]string
	deletedProgs  []uint32
	used          []uint32
	meshes        map[uint32]int
	textures      map[uint32]image.Rectangle
	drawn         []uint32
	bound         []uint32
	mat4s         map[int32]math.Mat4
	ints          map[int32]int32
	vec4s         map[int32]math.Vec4
	depthTest     bool
	culling       bool
	wireframe     bool
	clearColour   math.Vec4
	clears        int
	deletedMeshes []uint32
	deletedTex    []uint32
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		uniforms: map[string]int32{"model": 0, "view": 1, "projection": 2, "colour": 3, "useTexture": 4, "texture0": 5},
		meshes:   make(map[uint32]int),
		textures: make(map[uint32]image.Rectangle),
		mat4s:    make(map[int32]math.Mat4),
		ints:     make(map[int32]int32),
		vec4s:    make(map[int32]math.Vec4),
	}
}

func (d *fakeDevice) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *fakeDevice) CompileProgram(vs, fs string) (uint32, error) {
	if d.compileErr != nil {
		return 0, d.compileErr
	}
	d.compiled = append(d.compiled, [2]string{vs, fs})
	return d.id(), nil
}
func (d *fakeDevice) DeleteProgram(p uint32) { d.deletedProgs = append(d.deletedProgs, p) }
func (d *fakeDevice) UseProgram(p uint32)    { d.used = append(d.used, p) }
func (d *fakeDevice) UniformLocation(_ uint32, name string) int32 {
	if loc, ok := d.uniforms[name]; ok {
		return loc
	}
	return -1
}
func (d *fakeDevice) SetUniformMat4(loc int32, m math.Mat4) { d.mat4s[loc] = m }
func (d *fakeDevice) SetUniformVec4(loc int32, v math.Vec4) { d.vec4s[loc] = v }
func (d *fakeDevice) SetUniformInt(loc int32, v int32)      { d.ints[loc] = v }
func (d *fakeDevice) UploadMesh(v []math.Vertex3D, i []uint32) (uint32, error) {
	if d.uploadErr != nil {
		return 0, d.uploadErr
	}
	id := d.id()
	d.meshes[id] = len(i)
	return id, nil
}
func (d *fakeDevice) DrawMesh(m uint32)   { d.drawn = append(d.drawn, m) }
func (d *fakeDevice) DeleteMesh(m uint32) { d.deletedMeshes = append(d.deletedMeshes, m) }
func (d *fakeDevice) UploadTexture(img *image.RGBA) (uint32, error) {
	id := d.id()
	d.textures[id] = img.Bounds()
	return id, nil
}
func (d *fakeDevice) BindTexture(_ uint32, t uint32) { d.bound = append(d.bound, t) }
func (d *fakeDevice) DeleteTexture(t uint32)         { d.deletedTex = append(d.deletedTex, t) }
func (d *fakeDevice) SetDepthTest(enabled bool)      { d.depthTest = enabled }
func (d *fakeDevice) SetFaceCulling(enabled bool)    { d.culling = enabled }
func (d *fakeDevice) SetWireframe(enabled bool)      { d.wireframe = enabled }
func (d *fakeDevice) SetClearColour(c math.Vec4)     { d.clearColour = c }
func (d *fakeDevice) Clear()                         { d.clears++ }

// mapReader serves files from memory.
type mapReader map[string]string

func (r mapReader) Read(path string) ([]byte, error) {
	data, ok := r[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(data), nil
}

var errFake = errors.New("fake failure")

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
