package primitive

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mkessy/whittle/pkg/mesh"
)

// defaultMeshCells controls marching cubes tessellation resolution
// when the caller passes cells <= 0.
const defaultMeshCells = 200

// Sphere tessellates an SDF sphere centered at the origin into a
// triangle-soup mesh via marching cubes.
func Sphere(radius float64, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("primitive: sphere: %w", err)
	}
	m := toMesh(s, cells)
	m.Name = "sphere"
	return m, nil
}

// RoundedBox tessellates an SDF box with rounded edges, centered at
// the origin, into a triangle-soup mesh via marching cubes.
func RoundedBox(x, y, z, round float64, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, round)
	if err != nil {
		return nil, fmt.Errorf("primitive: rounded box: %w", err)
	}
	m := toMesh(s, cells)
	m.Name = "rounded-box"
	return m, nil
}

// toMesh runs marching cubes over an SDF and collects the triangles
// into the soup mesh layout (no index buffer; normals recomputed from
// the vertex data rather than trusted from the renderer).
func toMesh(s sdf.SDF3, cells int) *mesh.Mesh {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	verts := make([]vec3.T, 0, len(triangles)*3)
	for _, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			verts = append(verts, vec3.T{v.X, v.Y, v.Z})
		}
	}
	return mesh.NewSoup("", verts)
}
