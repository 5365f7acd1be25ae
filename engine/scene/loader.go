package scene

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/starlet/engine/math"
)

// sceneDescription is the on-disk layout of a scene file.
type sceneDescription struct {
	Name       string                 `toml:"name"`
	Cameras    []cameraDescription    `toml:"camera"`
	Models     []modelDescription     `toml:"model"`
	Textures   []textureDescription   `toml:"texture"`
	Primitives []primitiveDescription `toml:"primitive"`
	Grids      []gridDescription      `toml:"grid"`
}

type transformDescription struct {
	Position *[3]float32 `toml:"position"`
	Rotation *[3]float32 `toml:"rotation"`
	Scale    *[3]float32 `toml:"scale"`
}

type cameraDescription struct {
	Name        string      `toml:"name"`
	Position    *[3]float32 `toml:"position"`
	Yaw         *float32    `toml:"yaw"`
	Pitch       float32     `toml:"pitch"`
	Fov         float32     `toml:"fov"`
	Near        float32     `toml:"near"`
	Far         float32     `toml:"far"`
	Speed       float32     `toml:"speed"`
	Sensitivity float32     `toml:"sensitivity"`
	Active      bool        `toml:"active"`
}

type modelDescription struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
	transformDescription
	Colour   *[4]float32 `toml:"colour"`
	Textures []string    `toml:"textures"`
	Velocity *[3]float32 `toml:"velocity"`
	Spin     *[3]float32 `toml:"spin"`
}

type textureDescription struct {
	Name  string `toml:"name"`
	Path  string `toml:"path"`
	FlipY bool   `toml:"flip_y"`
}

type primitiveDescription struct {
	Name string      `toml:"name"`
	Type string      `toml:"type"`
	Size *[3]float32 `toml:"size"`
	transformDescription
	Colour   *[4]float32 `toml:"colour"`
	Textures []string    `toml:"textures"`
	Velocity *[3]float32 `toml:"velocity"`
	Spin     *[3]float32 `toml:"spin"`
}

type gridDescription struct {
	Name      string      `toml:"name"`
	Primitive string      `toml:"primitive"`
	Size      *[3]float32 `toml:"size"`
	Columns   int         `toml:"columns"`
	Rows      int         `toml:"rows"`
	Spacing   float32     `toml:"spacing"`
	transformDescription
	Colour   *[4]float32 `toml:"colour"`
	Textures []string    `toml:"textures"`
}

// parseScene decodes a TOML scene description into a new Scene.
func parseScene(name string, data []byte) (*Scene, error) {
	var desc sceneDescription
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&desc); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("unknown fields in scene %q:\n%s", name, serr.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("scene %q line %d column %d: %w", name, row, col, err)
		}
		return nil, err
	}

	if desc.Name != "" {
		name = desc.Name
	}
	s := NewScene(name)

	for _, c := range desc.Cameras {
		e := s.CreateEntity(c.Name)
		AddComponent(s, e.ID, &Camera{
			Name:        c.Name,
			Position:    vec3Or(c.Position, math.NewVec3(0, 0, 3)),
			Yaw:         floatOr(c.Yaw, -90),
			Pitch:       c.Pitch,
			Fov:         nonZero(c.Fov, DefaultCameraFov),
			Near:        nonZero(c.Near, DefaultCameraNear),
			Far:         nonZero(c.Far, DefaultCameraFar),
			Speed:       nonZero(c.Speed, DefaultCameraSpeed),
			Sensitivity: nonZero(c.Sensitivity, DefaultCameraSensitivity),
			Active:      c.Active,
		})
	}

	for _, t := range desc.Textures {
		if t.Path == "" {
			return nil, fmt.Errorf("texture %q in scene %q has no path", t.Name, name)
		}
		e := s.CreateEntity(t.Name)
		AddComponent(s, e.ID, &TextureData{Name: t.Name, Path: t.Path, FlipY: t.FlipY})
	}

	for _, m := range desc.Models {
		if m.Path == "" {
			return nil, fmt.Errorf("model %q in scene %q has no path", m.Name, name)
		}
		e := s.CreateEntity(m.Name)
		AddComponent(s, e.ID, m.transformDescription.toTransform())
		AddComponent(s, e.ID, &Model{
			Name:         m.Name,
			Path:         m.Path,
			Colour:       vec4Or(m.Colour, math.NewVec4One()),
			TextureNames: m.Textures,
		})
		addVelocity(s, e, m.Velocity, m.Spin)
	}

	for _, p := range desc.Primitives {
		kind, err := primitiveType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("primitive %q in scene %q: %w", p.Name, name, err)
		}
		e := s.CreateEntity(p.Name)
		AddComponent(s, e.ID, p.transformDescription.toTransform())
		AddComponent(s, e.ID, &Primitive{Type: kind, Size: vec3Or(p.Size, math.NewVec3One())})
		AddComponent(s, e.ID, &Model{
			Name:         p.Name,
			Colour:       vec4Or(p.Colour, math.NewVec4One()),
			TextureNames: p.Textures,
		})
		addVelocity(s, e, p.Velocity, p.Spin)
	}

	for _, g := range desc.Grids {
		kind, err := primitiveType(g.Primitive)
		if err != nil {
			return nil, fmt.Errorf("grid %q in scene %q: %w", g.Name, name, err)
		}
		if g.Columns < 1 || g.Rows < 1 {
			return nil, fmt.Errorf("grid %q in scene %q needs at least one row and column", g.Name, name)
		}
		e := s.CreateEntity(g.Name)
		AddComponent(s, e.ID, g.transformDescription.toTransform())
		AddComponent(s, e.ID, &Grid{
			Primitive: kind,
			Size:      vec3Or(g.Size, math.NewVec3One()),
			Columns:   g.Columns,
			Rows:      g.Rows,
			Spacing:   nonZero(g.Spacing, 1),
		})
		AddComponent(s, e.ID, &Model{
			Name:         g.Name,
			Colour:       vec4Or(g.Colour, math.NewVec4One()),
			TextureNames: g.Textures,
		})
	}

	return s, nil
}

func addVelocity(s *Scene, e Entity, linear, angular *[3]float32) {
	if linear == nil && angular == nil {
		return
	}
	AddComponent(s, e.ID, &Velocity{
		Linear:  vec3Or(linear, math.NewVec3Zero()),
		Angular: vec3Or(angular, math.NewVec3Zero()),
	})
}

func (t transformDescription) toTransform() *Transform {
	return &Transform{
		Position: vec3Or(t.Position, math.NewVec3Zero()),
		Rotation: vec3Or(t.Rotation, math.NewVec3Zero()),
		Scale:    vec3Or(t.Scale, math.NewVec3One()),
	}
}

func primitiveType(s string) (PrimitiveType, error) {
	switch PrimitiveType(s) {
	case PrimitiveCube, PrimitivePlane, PrimitiveTriangle:
		return PrimitiveType(s), nil
	default:
		return "", fmt.Errorf("unknown primitive type %q", s)
	}
}

func vec3Or(v *[3]float32, def math.Vec3) math.Vec3 {
	if v == nil {
		return def
	}
	return math.NewVec3(v[0], v[1], v[2])
}

func vec4Or(v *[4]float32, def math.Vec4) math.Vec4 {
	if v == nil {
		return def
	}
	return math.NewVec4(v[0], v[1], v[2], v[3])
}

func floatOr(v *float32, def float32) float32 {
	if v == nil {
		return def
	}
	return *v
}

func nonZero(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}
