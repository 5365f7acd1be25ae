package resources

import (
	"fmt"

	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/spaghettifunk/starlet/engine/math"
)

// MeshData is CPU side geometry ready to be uploaded.
type MeshData struct {
	Name     string
	Vertices []math.Vertex3D
	Indices  []uint32
}

// Append copies other into m, offsetting its indices and moving its
// vertices by offset.
func (m *MeshData) Append(other *MeshData, offset math.Vec3) {
	base := uint32(len(m.Vertices))
	for _, v := range other.Vertices {
		v.Position = v.Position.Add(offset)
		m.Vertices = append(m.Vertices, v)
	}
	for _, i := range other.Indices {
		m.Indices = append(m.Indices, base+i)
	}
}

// GeneratePrimitive builds a unit primitive scaled by size. Zero size
// components default to one.
func GeneratePrimitive(kind string, size math.Vec3) (*MeshData, error) {
	size = nonZero(size)
	switch kind {
	case "cube":
		return generateCube(size.X, size.Y, size.Z), nil
	case "plane":
		return generatePlane(size.X, size.Z), nil
	case "triangle":
		return generateTriangle(size.X, size.Y), nil
	default:
		return nil, fmt.Errorf("unknown primitive type '%s'", kind)
	}
}

// GenerateGrid lays out columns x rows copies of a primitive on the XZ
// plane, spacing units apart, as a single mesh.
func GenerateGrid(kind string, size math.Vec3, columns, rows int, spacing float32) (*MeshData, error) {
	if columns < 1 || rows < 1 {
		return nil, fmt.Errorf("grid must have at least one column and one row (got %dx%d)", columns, rows)
	}
	cell, err := GeneratePrimitive(kind, size)
	if err != nil {
		return nil, err
	}
	grid := &MeshData{
		Name:     fmt.Sprintf("%s_grid_%dx%d", kind, columns, rows),
		Vertices: make([]math.Vertex3D, 0, len(cell.Vertices)*columns*rows),
		Indices:  make([]uint32, 0, len(cell.Indices)*columns*rows),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			grid.Append(cell, math.NewVec3(float32(c)*spacing, 0, float32(r)*spacing))
		}
	}
	return grid, nil
}

func nonZero(size math.Vec3) math.Vec3 {
	if size.X == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		size.X = 1
	}
	if size.Y == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		size.Y = 1
	}
	if size.Z == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		size.Z = 1
	}
	return size
}

type face struct {
	normal  math.Vec3
	corners [4]math.Vec3
}

func generateCube(width, height, depth float32) *MeshData {
	minX, maxX := -width*0.5, width*0.5
	minY, maxY := -height*0.5, height*0.5
	minZ, maxZ := -depth*0.5, depth*0.5

	// corners: bottom-left, top-right, top-left, bottom-right
	faces := [6]face{
		{math.NewVec3(0, 0, 1), [4]math.Vec3{{X: minX, Y: minY, Z: maxZ}, {X: maxX, Y: maxY, Z: maxZ}, {X: minX, Y: maxY, Z: maxZ}, {X: maxX, Y: minY, Z: maxZ}}},
		{math.NewVec3(0, 0, -1), [4]math.Vec3{{X: maxX, Y: minY, Z: minZ}, {X: minX, Y: maxY, Z: minZ}, {X: maxX, Y: maxY, Z: minZ}, {X: minX, Y: minY, Z: minZ}}},
		{math.NewVec3(-1, 0, 0), [4]math.Vec3{{X: minX, Y: minY, Z: minZ}, {X: minX, Y: maxY, Z: maxZ}, {X: minX, Y: maxY, Z: minZ}, {X: minX, Y: minY, Z: maxZ}}},
		{math.NewVec3(1, 0, 0), [4]math.Vec3{{X: maxX, Y: minY, Z: maxZ}, {X: maxX, Y: maxY, Z: minZ}, {X: maxX, Y: maxY, Z: maxZ}, {X: maxX, Y: minY, Z: minZ}}},
		{math.NewVec3(0, -1, 0), [4]math.Vec3{{X: maxX, Y: minY, Z: maxZ}, {X: minX, Y: minY, Z: minZ}, {X: maxX, Y: minY, Z: minZ}, {X: minX, Y: minY, Z: maxZ}}},
		{math.NewVec3(0, 1, 0), [4]math.Vec3{{X: minX, Y: maxY, Z: maxZ}, {X: maxX, Y: maxY, Z: minZ}, {X: minX, Y: maxY, Z: minZ}, {X: maxX, Y: maxY, Z: maxZ}}},
	}
	uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 0}}

	mesh := &MeshData{
		Name:     "cube",
		Vertices: make([]math.Vertex3D, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for i, f := range faces {
		for c := 0; c < 4; c++ {
			mesh.Vertices = append(mesh.Vertices, math.Vertex3D{
				Position: f.corners[c],
				Normal:   f.normal,
				Texcoord: uvs[c],
				Colour:   math.NewVec4One(),
			})
		}
		offset := uint32(i * 4)
		mesh.Indices = append(mesh.Indices, offset+0, offset+1, offset+2, offset+0, offset+3, offset+1)
	}
	return mesh
}

// generatePlane builds a plane facing +Y.
func generatePlane(width, depth float32) *MeshData {
	hw, hd := width*0.5, depth*0.5
	up := math.NewVec3Up()
	return &MeshData{
		Name: "plane",
		Vertices: []math.Vertex3D{
			{Position: math.NewVec3(-hw, 0, hd), Normal: up, Texcoord: math.NewVec2(0, 0), Colour: math.NewVec4One()},
			{Position: math.NewVec3(hw, 0, -hd), Normal: up, Texcoord: math.NewVec2(1, 1), Colour: math.NewVec4One()},
			{Position: math.NewVec3(-hw, 0, -hd), Normal: up, Texcoord: math.NewVec2(0, 1), Colour: math.NewVec4One()},
			{Position: math.NewVec3(hw, 0, hd), Normal: up, Texcoord: math.NewVec2(1, 0), Colour: math.NewVec4One()},
		},
		Indices: []uint32{0, 3, 1, 0, 1, 2},
	}
}

// generateTriangle builds a triangle in the XY plane facing +Z.
func generateTriangle(width, height float32) *MeshData {
	hw, hh := width*0.5, height*0.5
	mesh := &MeshData{
		Name: "triangle",
		Vertices: []math.Vertex3D{
			{Position: math.NewVec3(-hw, -hh, 0), Texcoord: math.NewVec2(0, 0), Colour: math.NewVec4One()},
			{Position: math.NewVec3(hw, -hh, 0), Texcoord: math.NewVec2(1, 0), Colour: math.NewVec4One()},
			{Position: math.NewVec3(0, hh, 0), Texcoord: math.NewVec2(0.5, 1), Colour: math.NewVec4One()},
		},
		Indices: []uint32{0, 1, 2},
	}
	math.GenerateNormals(mesh.Vertices, mesh.Indices)
	return mesh
}
