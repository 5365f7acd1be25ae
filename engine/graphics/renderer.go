package graphics

import (
	"fmt"

	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/spaghettifunk/starlet/engine/gpu"
	"github.com/spaghettifunk/starlet/engine/math"
	"github.com/spaghettifunk/starlet/engine/scene"
)

var identity = math.NewMat4Identity()

// uniform names expected in the scene program
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
	UniformColour     = "colour"
	UniformUseTexture = "useTexture"
	UniformTexture0   = "texture0"
)

type uniforms struct {
	model, view, projection int32
	colour                  int32
	useTexture, texture0    int32
}

// Renderer draws every model of a scene from its active camera.
type Renderer struct {
	device   gpu.Device
	program  uint32
	uniforms uniforms
}

func NewRenderer(device gpu.Device) *Renderer {
	return &Renderer{device: device}
}

// Init resolves the uniforms of program. The transform uniforms are
// required; colour and texture uniforms are optional.
func (r *Renderer) Init(program uint32) error {
	if program == 0 {
		return core.NewError(core.KindPrecondition, "Renderer", "init", core.ErrInvalidProgram)
	}
	u := uniforms{
		model:      r.device.UniformLocation(program, UniformModel),
		view:       r.device.UniformLocation(program, UniformView),
		projection: r.device.UniformLocation(program, UniformProjection),
		colour:     r.device.UniformLocation(program, UniformColour),
		useTexture: r.device.UniformLocation(program, UniformUseTexture),
		texture0:   r.device.UniformLocation(program, UniformTexture0),
	}
	for name, loc := range map[string]int32{UniformModel: u.model, UniformView: u.view, UniformProjection: u.projection} {
		if loc < 0 {
			return core.NewError(core.KindResource, "Renderer", "init", fmt.Errorf("program %d has no uniform '%s'", program, name))
		}
	}
	r.program = program
	r.uniforms = u

	r.device.UseProgram(program)
	if u.texture0 >= 0 {
		r.device.SetUniformInt(u.texture0, 0)
	}
	return nil
}

// RenderFrame clears the target and draws s. Nothing but the clear happens
// without an active camera or a usable aspect ratio.
func (r *Renderer) RenderFrame(program uint32, s *scene.Scene, aspect float32) {
	r.device.Clear()

	if program == 0 || s == nil || aspect <= 0 {
		return
	}
	cam := s.ActiveCamera()
	if cam == nil {
		return
	}

	r.device.UseProgram(program)
	r.device.SetUniformMat4(r.uniforms.view, cam.View())
	r.device.SetUniformMat4(r.uniforms.projection, cam.Projection(aspect))

	for _, id := range scene.EntitiesWith[scene.Model](s) {
		m, _ := scene.GetComponent[scene.Model](s, id)
		if m.Mesh == 0 {
			continue
		}
		if t, ok := scene.GetComponent[scene.Transform](s, id); ok {
			r.device.SetUniformMat4(r.uniforms.model, t.Matrix())
		} else {
			r.device.SetUniformMat4(r.uniforms.model, identity)
		}
		if r.uniforms.colour >= 0 {
			r.device.SetUniformVec4(r.uniforms.colour, m.Colour)
		}
		textured := len(m.TextureHandles) > 0 && m.TextureHandles[0] != 0
		if textured {
			r.device.BindTexture(0, uint32(m.TextureHandles[0]))
		}
		if r.uniforms.useTexture >= 0 {
			r.device.SetUniformInt(r.uniforms.useTexture, boolToInt(textured))
		}
		r.device.DrawMesh(uint32(m.Mesh))
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
