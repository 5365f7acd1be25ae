package gpu

import (
	"image"

	"github.com/spaghettifunk/starlet/engine/math"
)

// Device is the set of graphics operations the graphics package relies on.
// Identifiers are backend handles; zero is never a valid handle.
type Device interface {
	CompileProgram(vertexSrc, fragmentSrc string) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	UniformLocation(program uint32, name string) int32

	SetUniformMat4(location int32, m math.Mat4)
	SetUniformVec4(location int32, v math.Vec4)
	SetUniformInt(location int32, v int32)

	UploadMesh(vertices []math.Vertex3D, indices []uint32) (uint32, error)
	DrawMesh(mesh uint32)
	DeleteMesh(mesh uint32)

	UploadTexture(img *image.RGBA) (uint32, error)
	BindTexture(unit uint32, texture uint32)
	DeleteTexture(texture uint32)

	SetDepthTest(enabled bool)
	SetFaceCulling(enabled bool)
	SetWireframe(enabled bool)
	SetClearColour(c math.Vec4)
	Clear()
}
