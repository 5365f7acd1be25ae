package scene

import (
	"testing"

	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/spaghettifunk/starlet/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInput struct {
	keys    map[core.Key]bool
	mouseDX float64
	mouseDY float64
	scroll  float64
	locked  bool
}

func (f *fakeInput) IsKeyDown(k core.Key) bool       { return f.keys[k] }
func (f *fakeInput) MouseDelta() (float64, float64)  { return f.mouseDX, f.mouseDY }
func (f *fakeInput) ScrollDelta() (float64, float64) { return 0, f.scroll }
func (f *fakeInput) CursorLocked() bool              { return f.locked }

func cameraScene() (*Scene, *Camera) {
	s := NewScene("cam")
	e := s.CreateEntity("cam")
	cam := AddComponent(s, e.ID, &Camera{Yaw: -90, Fov: 60, Speed: 2, Sensitivity: 0.5})
	return s, cam
}

func TestDefaultSystemsOrder(t *testing.T) {
	var names []string
	for _, sys := range DefaultSystems() {
		names = append(names, sys.Name())
	}
	assert.Equal(t, []string{"CameraMoveSystem", "CameraLookSystem", "CameraFovSystem", "VelocitySystem"}, names)
}

type recorder struct {
	name string
	log  *[]string
}

func (r recorder) Name() string { return r.name }
func (r recorder) Update(*Scene, InputState, float64) {
	*r.log = append(*r.log, r.name)
}

func TestUpdateSystemsRunsInRegistrationOrder(t *testing.T) {
	var log []string
	s := NewScene("s")
	s.RegisterSystem(recorder{"b", &log})
	s.RegisterSystem(recorder{"a", &log})
	s.UpdateSystems(&fakeInput{}, 0.016)
	assert.Equal(t, []string{"b", "a"}, log)
}

func TestCameraMoveSystem(t *testing.T) {
	s, cam := cameraScene()
	in := &fakeInput{keys: map[core.Key]bool{core.KeyW: true}}

	CameraMoveSystem{}.Update(s, in, 0.5)
	assert.True(t, cam.Position.Compare(math.NewVec3(0, 0, -1), 1e-5), "got %v", cam.Position)

	in.keys = map[core.Key]bool{core.KeyD: true, core.KeyLeftShift: true}
	CameraMoveSystem{}.Update(s, in, 0.5)
	assert.True(t, cam.Position.Compare(math.NewVec3(2, 0, -1), 1e-5), "got %v", cam.Position)
}

func TestCameraLookSystem(t *testing.T) {
	s, cam := cameraScene()
	in := &fakeInput{mouseDX: 10, mouseDY: 1000}

	CameraLookSystem{}.Update(s, in, 0.016)
	assert.Equal(t, float32(-90), cam.Yaw, "unlocked cursor must not turn the camera")

	in.locked = true
	CameraLookSystem{}.Update(s, in, 0.016)
	assert.Equal(t, float32(-85), cam.Yaw)
	assert.Equal(t, -maxPitch, cam.Pitch)
}

func TestCameraFovSystem(t *testing.T) {
	s, cam := cameraScene()
	CameraFovSystem{}.Update(s, &fakeInput{scroll: 5}, 0.016)
	assert.Equal(t, float32(55), cam.Fov)
	CameraFovSystem{}.Update(s, &fakeInput{scroll: -100}, 0.016)
	assert.Equal(t, maxFov, cam.Fov)
}

func TestVelocitySystem(t *testing.T) {
	s := NewScene("v")
	e := s.CreateEntity("mover")
	tr := AddComponent(s, e.ID, &Transform{Scale: math.NewVec3One()})
	AddComponent(s, e.ID, &Velocity{Linear: math.NewVec3(2, 0, 0), Angular: math.NewVec3(0, 90, 0)})
	orphan := s.CreateEntity("orphan")
	AddComponent(s, orphan.ID, &Velocity{Linear: math.NewVec3(1, 1, 1)})

	VelocitySystem{}.Update(s, &fakeInput{}, 0.5)
	assert.Equal(t, math.NewVec3(1, 0, 0), tr.Position)
	assert.Equal(t, math.NewVec3(0, 45, 0), tr.Rotation)
}

func TestSystemsWithoutCamera(t *testing.T) {
	s := NewScene("empty")
	for _, sys := range DefaultSystems() {
		require.NotPanics(t, func() {
			sys.Update(s, &fakeInput{locked: true, scroll: 1}, 0.1)
		})
	}
}
