// Package primitive generates meshes and 2D profiles for the kernel
// to operate on. It is a collaborator of the kernel, not part of it:
// shape-specific construction (a rectangle as a four-point loop, a
// circle as a polygon approximation) lives here so the kernel only
// ever sees meshes and profiles.
package primitive

import (
	"math"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mkessy/whittle/pkg/kernel"
	"github.com/mkessy/whittle/pkg/mesh"
)

// Box builds an axis-aligned box centered at the origin as an indexed
// mesh: 8 shared vertices, 12 triangles, 2 per quad face.
func Box(x, y, z float64) *mesh.Mesh {
	hx, hy, hz := x/2, y/2, z/2
	verts := []vec3.T{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
	}
	indices := []uint32{
		0, 3, 2, 0, 2, 1, // -Z
		4, 5, 6, 4, 6, 7, // +Z
		0, 1, 5, 0, 5, 4, // -Y
		3, 7, 6, 3, 6, 2, // +Y
		0, 4, 7, 0, 7, 3, // -X
		1, 2, 6, 1, 6, 5, // +X
	}
	return mesh.NewIndexed("box", verts, indices)
}

// Cylinder builds a cylinder along +Z with its base on the XY plane by
// extruding a circle profile through the kernel.
func Cylinder(radius, height float64, segments int) (*mesh.Mesh, error) {
	m, err := kernel.ExtrudeProfile(CircleProfile(radius, segments), kernel.WorldFrame(), height, nil)
	if err != nil {
		return nil, err
	}
	m.Name = "cylinder"
	return m, nil
}

// RectProfile builds a counter-clockwise four-point rectangle loop
// centered on the profile origin.
func RectProfile(w, h float64) kernel.Profile2D {
	hw, hh := w/2, h/2
	return kernel.Profile2D{
		{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh},
	}
}

// PolygonProfile builds a profile from an ordered point loop,
// normalizing the winding to counter-clockwise. The points are copied;
// the caller's slice is not retained.
func PolygonProfile(points []vec2.T) kernel.Profile2D {
	profile := make(kernel.Profile2D, len(points))
	copy(profile, points)
	if profile.SignedArea() < 0 {
		for i, j := 0, len(profile)-1; i < j; i, j = i+1, j-1 {
			profile[i], profile[j] = profile[j], profile[i]
		}
	}
	return profile
}

// CircleProfile approximates a circle as a counter-clockwise regular
// polygon with the given number of segments (minimum 3).
func CircleProfile(radius float64, segments int) kernel.Profile2D {
	if segments < 3 {
		segments = 3
	}
	profile := make(kernel.Profile2D, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		profile[i] = vec2.T{radius * math.Cos(a), radius * math.Sin(a)}
	}
	return profile
}
