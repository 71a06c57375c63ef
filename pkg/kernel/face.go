package kernel

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mkessy/whittle/pkg/mesh"
)

// Face is a maximal set of coplanar triangles treated as one logical
// flat surface. It is derived, ephemeral data: never persisted
// independently of the mesh it was aggregated from.
type Face struct {
	Triangles     []int    // triangle indices, ascending
	VertexIndices []int    // mesh vertex indices of the unique boundary points
	Vertices      []vec3.T // unique boundary points, insertion order
	Normal        vec3.T   // the seed triangle's normal
	Centroid      vec3.T   // mean of the unique boundary points
	Area          float64  // sum of constituent triangle areas
}

// weldKey identifies a vertex position quantized to the WeldEps grid.
// Two truly distinct but extremely close vertices can land on the same
// key and be merged; that is a documented approximation, not a
// correctness guarantee.
type weldKey [3]int64

func quantize(p vec3.T) weldKey {
	return weldKey{
		int64(math.Round(p[0] / WeldEps)),
		int64(math.Round(p[1] / WeldEps)),
		int64(math.Round(p[2] / WeldEps)),
	}
}

// AggregateFace finds the maximal set of triangles lying on the seed
// triangle's plane. Every triangle in the mesh is tested against the
// seed plane, O(n) per call, which is fine for interactive selection
// where one face is aggregated at a time.
//
// A candidate joins the face iff its normal is near-parallel to the
// seed normal (either winding) and all three of its vertices sit
// within EpsPlane of the seed plane. A single triangle always forms a
// valid minimal face; the only failure is an out-of-range seed.
func AggregateFace(m *mesh.Mesh, seed int) (*Face, error) {
	if seed < 0 || seed >= m.TriangleCount() {
		return nil, fmt.Errorf("aggregate: seed triangle %d: %w", seed, mesh.ErrInvalidIndex)
	}

	seedNormal, _ := m.TriangleNormal(seed)
	s0, _, _, _ := m.TriangleVertices(seed)

	face := &Face{Normal: seedNormal}
	welded := make(map[weldKey]bool)

	admit := func(ti int) {
		face.Triangles = append(face.Triangles, ti)
		a, b, c, _ := m.TriangleIndices(ti)
		for _, vi := range [3]int{a, b, c} {
			p := m.Vertices[vi]
			key := quantize(p)
			if welded[key] {
				continue
			}
			welded[key] = true
			face.VertexIndices = append(face.VertexIndices, vi)
			face.Vertices = append(face.Vertices, p)
		}
		p0, p1, p2, _ := m.TriangleVertices(ti)
		face.Area += mesh.AreaOf(p0, p1, p2)
	}

	for i := 0; i < m.TriangleCount(); i++ {
		if i == seed {
			admit(i)
			continue
		}
		n, _ := m.TriangleNormal(i)
		d := vec3.Dot(&seedNormal, &n)
		if d < 0 {
			d = -d
		}
		if d <= 1-EpsNormal {
			continue
		}
		p0, p1, p2, _ := m.TriangleVertices(i)
		if planeDistance(seedNormal, s0, p0) >= EpsPlane ||
			planeDistance(seedNormal, s0, p1) >= EpsPlane ||
			planeDistance(seedNormal, s0, p2) >= EpsPlane {
			continue
		}
		admit(i)
	}

	for _, p := range face.Vertices {
		face.Centroid.Add(&p)
	}
	face.Centroid.Scale(1 / float64(len(face.Vertices)))

	return face, nil
}

// planeDistance is the perpendicular distance from p to the plane
// through origin with unit normal n.
func planeDistance(n, origin, p vec3.T) float64 {
	d := vec3.Sub(&p, &origin)
	return math.Abs(vec3.Dot(&n, &d))
}
