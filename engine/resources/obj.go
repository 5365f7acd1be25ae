package resources

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spaghettifunk/starlet/engine/math"
)

type objIndex struct {
	position, texcoord, normal int
}

// ParseOBJ reads Wavefront OBJ geometry. Polygons are triangulated as fans
// and normals are generated when the file has none.
func ParseOBJ(name string, r io.Reader) (*MeshData, error) {
	var (
		positions []math.Vec3
		texcoords []math.Vec2
		normals   []math.Vec3
	)
	mesh := &MeshData{Name: name}
	seen := make(map[objIndex]uint32)
	hasNormals := true

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			positions = append(positions, math.NewVec3(v[0], v[1], v[2]))
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			texcoords = append(texcoords, math.NewVec2(v[0], v[1]))
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			normals = append(normals, math.NewVec3(v[0], v[1], v[2]))
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: face needs at least 3 vertices", name, lineNo)
			}
			corners := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := parseFaceRef(ref, len(positions), len(texcoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
				}
				if idx.normal < 0 {
					hasNormals = false
				}
				vi, ok := seen[idx]
				if !ok {
					v := math.Vertex3D{Position: positions[idx.position], Colour: math.NewVec4One()}
					if idx.texcoord >= 0 {
						v.Texcoord = texcoords[idx.texcoord]
					}
					if idx.normal >= 0 {
						v.Normal = normals[idx.normal]
					}
					vi = uint32(len(mesh.Vertices))
					mesh.Vertices = append(mesh.Vertices, v)
					seen[idx] = vi
				}
				corners = append(corners, vi)
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.Indices = append(mesh.Indices, corners[0], corners[i], corners[i+1])
			}
		default:
			// o, g, s, usemtl, mtllib: not needed for geometry
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("%s: no faces", name)
	}
	if !hasNormals {
		math.GenerateNormals(mesh.Vertices, mesh.Indices)
	}
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFaceRef turns "v", "v/vt", "v//vn" or "v/vt/vn" into zero based
// indices; -1 marks a missing component.
func parseFaceRef(ref string, nv, nt, nn int) (objIndex, error) {
	parts := strings.Split(ref, "/")
	idx := objIndex{position: -1, texcoord: -1, normal: -1}

	var err error
	if idx.position, err = resolveIndex(parts[0], nv); err != nil {
		return idx, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if idx.texcoord, err = resolveIndex(parts[1], nt); err != nil {
			return idx, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if idx.normal, err = resolveIndex(parts[2], nn); err != nil {
			return idx, err
		}
	}
	return idx, nil
}

func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("bad index '%s'", s)
	}
	if i < 0 {
		i = count + i
	} else {
		i--
	}
	if i < 0 || i >= count {
		return -1, fmt.Errorf("index '%s' out of range", s)
	}
	return i, nil
}
