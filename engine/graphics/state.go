package graphics

import (
	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/spaghettifunk/starlet/engine/gpu"
	"github.com/spaghettifunk/starlet/engine/math"
)

var DefaultClearColour = math.NewVec4(0.1, 0.1, 0.12, 1.0)

// StateManager tracks the active program and the fixed-function state.
type StateManager struct {
	device    gpu.Device
	program   uint32
	wireframe bool
}

func NewStateManager(device gpu.Device) *StateManager {
	return &StateManager{device: device}
}

func (sm *StateManager) SetProgram(program uint32) error {
	if program == 0 {
		return core.NewError(core.KindPrecondition, "GLStateManager", "setProgram", core.ErrInvalidProgram)
	}
	sm.program = program
	sm.device.UseProgram(program)
	return nil
}

func (sm *StateManager) Program() uint32 {
	return sm.program
}

// ApplyDefaults enables depth testing, fills polygons and sets the clear colour.
func (sm *StateManager) ApplyDefaults() {
	sm.device.SetDepthTest(true)
	sm.device.SetFaceCulling(false)
	sm.device.SetWireframe(false)
	sm.device.SetClearColour(DefaultClearColour)
	sm.wireframe = false
}

func (sm *StateManager) ToggleWireframe() bool {
	sm.wireframe = !sm.wireframe
	sm.device.SetWireframe(sm.wireframe)
	core.LogDebugOp("GLStateManager", "toggleWireframe", "wireframe: %t", sm.wireframe)
	return sm.wireframe
}

func (sm *StateManager) Wireframe() bool {
	return sm.wireframe
}
