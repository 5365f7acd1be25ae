package scene

import (
	"github.com/spaghettifunk/starlet/engine/math"
)

// Transform places an entity in the world. Rotation holds Euler angles in degrees.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// Matrix returns the model matrix: scale, then rotate, then translate.
func (t *Transform) Matrix() math.Mat4 {
	rotation := math.NewMat4EulerXYZ(
		math.DegToRad(t.Rotation.X),
		math.DegToRad(t.Rotation.Y),
		math.DegToRad(t.Rotation.Z),
	)
	return math.NewMat4Scale(t.Scale).Mul(rotation).Mul(math.NewMat4Translation(t.Position))
}

const (
	DefaultCameraFov         float32 = 60
	DefaultCameraNear        float32 = 0.1
	DefaultCameraFar         float32 = 1000
	DefaultCameraSpeed       float32 = 5
	DefaultCameraSensitivity float32 = 0.1
)

// Camera is a free-fly perspective camera. Yaw and Pitch are in degrees;
// a yaw of -90 looks down -Z.
type Camera struct {
	Name        string
	Position    math.Vec3
	Yaw         float32
	Pitch       float32
	Fov         float32
	Near        float32
	Far         float32
	Speed       float32
	Sensitivity float32
	Active      bool
}

func (c *Camera) Front() math.Vec3 {
	return math.NewVec3FromYawPitch(c.Yaw, c.Pitch)
}

func (c *Camera) View() math.Mat4 {
	return math.NewMat4LookAt(c.Position, c.Position.Add(c.Front()), math.NewVec3Up())
}

func (c *Camera) Projection(aspect float32) math.Mat4 {
	return math.NewMat4Perspective(math.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

// Model is a renderable mesh. Mesh and TextureHandles are filled in by the
// resource manager while the scene is loaded.
type Model struct {
	Name           string
	Path           string
	Colour         math.Vec4
	TextureNames   []string
	Mesh           MeshHandle
	TextureHandles []TextureHandle
}

// MeshHandle identifies an uploaded mesh; zero means none.
type MeshHandle uint32

// TextureHandle identifies an uploaded texture; zero means none.
type TextureHandle uint32

// TextureData names an image file to load as a texture.
type TextureData struct {
	Name   string
	Path   string
	FlipY  bool
	Handle TextureHandle
}

// Velocity moves and spins its entity every frame.
type Velocity struct {
	Linear  math.Vec3
	Angular math.Vec3
}

type PrimitiveType string

const (
	PrimitiveCube     PrimitiveType = "cube"
	PrimitivePlane    PrimitiveType = "plane"
	PrimitiveTriangle PrimitiveType = "triangle"
)

// Primitive asks for a generated mesh instead of a model file.
type Primitive struct {
	Type PrimitiveType
	Size math.Vec3
}

// Grid lays out Columns x Rows copies of a primitive on the XZ plane,
// Spacing units apart, starting at the entity's position.
type Grid struct {
	Primitive PrimitiveType
	Size      math.Vec3
	Columns   int
	Rows      int
	Spacing   float32
}
