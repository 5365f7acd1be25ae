package scene

import (
	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/spaghettifunk/starlet/engine/math"
)

const (
	maxPitch float32 = 89
	minFov   float32 = 1
	maxFov   float32 = 90
	// Holding shift multiplies camera speed.
	sprintMultiplier float32 = 2
)

// InputState is the per-frame input view handed to systems.
type InputState interface {
	IsKeyDown(key core.Key) bool
	MouseDelta() (float64, float64)
	ScrollDelta() (float64, float64)
	CursorLocked() bool
}

// System is a per-frame update routine over scene components.
type System interface {
	Name() string
	Update(scene *Scene, input InputState, deltaTime float64)
}

// DefaultSystems returns the simulation systems in the order they must run:
// camera movement, camera look, camera field of view, velocity integration.
func DefaultSystems() []System {
	return []System{
		&CameraMoveSystem{},
		&CameraLookSystem{},
		&CameraFovSystem{},
		&VelocitySystem{},
	}
}

// CameraMoveSystem flies the active camera with WASD, E/Q for up and down.
type CameraMoveSystem struct{}

func (CameraMoveSystem) Name() string { return "CameraMoveSystem" }

func (CameraMoveSystem) Update(s *Scene, input InputState, deltaTime float64) {
	cam := s.ActiveCamera()
	if cam == nil {
		return
	}
	front := cam.Front()
	right := front.Cross(math.NewVec3Up()).Normalized()
	up := math.NewVec3Up()

	var dir math.Vec3
	if input.IsKeyDown(core.KeyW) {
		dir = dir.Add(front)
	}
	if input.IsKeyDown(core.KeyS) {
		dir = dir.Sub(front)
	}
	if input.IsKeyDown(core.KeyD) {
		dir = dir.Add(right)
	}
	if input.IsKeyDown(core.KeyA) {
		dir = dir.Sub(right)
	}
	if input.IsKeyDown(core.KeyE) {
		dir = dir.Add(up)
	}
	if input.IsKeyDown(core.KeyQ) {
		dir = dir.Sub(up)
	}
	if dir.LengthSquared() == 0 {
		return
	}

	speed := cam.Speed
	if input.IsKeyDown(core.KeyLeftShift) || input.IsKeyDown(core.KeyRightShift) {
		speed *= sprintMultiplier
	}
	cam.Position = cam.Position.Add(dir.Normalized().MulScalar(speed * float32(deltaTime)))
}

// CameraLookSystem turns the active camera with the mouse while the cursor is locked.
type CameraLookSystem struct{}

func (CameraLookSystem) Name() string { return "CameraLookSystem" }

func (CameraLookSystem) Update(s *Scene, input InputState, _ float64) {
	cam := s.ActiveCamera()
	if cam == nil || !input.CursorLocked() {
		return
	}
	dx, dy := input.MouseDelta()
	cam.Yaw += float32(dx) * cam.Sensitivity
	// window y grows downwards
	cam.Pitch = math.Clamp(cam.Pitch-float32(dy)*cam.Sensitivity, -maxPitch, maxPitch)
}

// CameraFovSystem zooms the active camera with the scroll wheel.
type CameraFovSystem struct{}

func (CameraFovSystem) Name() string { return "CameraFovSystem" }

func (CameraFovSystem) Update(s *Scene, input InputState, _ float64) {
	cam := s.ActiveCamera()
	if cam == nil {
		return
	}
	_, dy := input.ScrollDelta()
	if dy == 0 {
		return
	}
	cam.Fov = math.Clamp(cam.Fov-float32(dy), minFov, maxFov)
}

// VelocitySystem integrates Velocity into the entity Transform.
type VelocitySystem struct{}

func (VelocitySystem) Name() string { return "VelocitySystem" }

func (VelocitySystem) Update(s *Scene, _ InputState, deltaTime float64) {
	dt := float32(deltaTime)
	for _, id := range EntitiesWith[Velocity](s) {
		v, _ := GetComponent[Velocity](s, id)
		t, ok := GetComponent[Transform](s, id)
		if !ok {
			continue
		}
		t.Position = t.Position.Add(v.Linear.MulScalar(dt))
		t.Rotation = t.Rotation.Add(v.Angular.MulScalar(dt))
	}
}
