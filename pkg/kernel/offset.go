package kernel

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mkessy/whittle/pkg/mesh"
)

// vertexNormals computes a normal for every vertex as the normalized
// average of its adjacent triangles' normals. Triangle normals are
// always current on a mesh, so the average is always correct.
// Vertices with no non-degenerate adjacent triangle get a zero normal
// and are left in place by the offset operations.
func vertexNormals(m *mesh.Mesh) []vec3.T {
	acc := make([]vec3.T, m.VertexCount())
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c, _ := m.TriangleIndices(t)
		n, _ := m.TriangleNormal(t)
		acc[a].Add(&n)
		acc[b].Add(&n)
		acc[c].Add(&n)
	}
	for i := range acc {
		if l := acc[i].Length(); l > 1e-12 {
			acc[i].Scale(1 / l)
		}
	}
	return acc
}

// OffsetVertices displaces the given vertices along their vertex
// normals by distance and returns a new mesh with all triangle
// normals recomputed. The input mesh is untouched.
func OffsetVertices(m *mesh.Mesh, indices []int, distance float64) (*mesh.Mesh, error) {
	for _, i := range indices {
		if i < 0 || i >= m.VertexCount() {
			return nil, fmt.Errorf("offset: vertex %d: %w", i, mesh.ErrInvalidIndex)
		}
	}

	out := m.Clone()
	if distance == 0 {
		return out, nil
	}

	normals := vertexNormals(m)
	for _, i := range indices {
		d := normals[i].Scaled(distance)
		out.Vertices[i].Add(&d)
	}
	out.RecomputeNormals()
	return out, nil
}

// OffsetWhole displaces every vertex along its vertex normal by
// distance. A zero distance is the identity transform. Used for both
// whole-body inflation/deflation and as the building block of Shell.
func OffsetWhole(m *mesh.Mesh, distance float64) *mesh.Mesh {
	out := m.Clone()
	if distance == 0 {
		return out
	}

	normals := vertexNormals(m)
	for i := range out.Vertices {
		d := normals[i].Scaled(distance)
		out.Vertices[i].Add(&d)
	}
	out.RecomputeNormals()
	return out
}

// Shell builds a two-surface shell of the mesh: an outer copy offset
// by +thickness/2, an inner copy offset by -thickness/2 with inverted
// orientation, concatenated into one mesh. No watertight rim is
// stitched between the two surfaces; this is an acknowledged
// simplification, not a full solid-shell operation.
func Shell(m *mesh.Mesh, thickness float64) *mesh.Mesh {
	outer := OffsetWhole(m, thickness/2)
	inner := OffsetWhole(m, -thickness/2)
	invertOrientation(inner)

	verts := make([]vec3.T, 0, len(outer.Vertices)+len(inner.Vertices))
	verts = append(verts, outer.Vertices...)
	verts = append(verts, inner.Vertices...)

	shift := uint32(len(outer.Vertices))
	indices := make([]uint32, 0, 3*(outer.TriangleCount()+inner.TriangleCount()))
	indices = append(indices, materialIndices(outer)...)
	for _, ix := range materialIndices(inner) {
		indices = append(indices, ix+shift)
	}

	out := mesh.NewIndexed(m.Name, verts, indices)
	return out
}

// invertOrientation reverses every triangle's winding in place and
// refreshes the normal cache, flipping the surface inside out.
func invertOrientation(m *mesh.Mesh) {
	if m.Indices != nil {
		for t := 0; t < m.TriangleCount(); t++ {
			m.Indices[t*3+1], m.Indices[t*3+2] = m.Indices[t*3+2], m.Indices[t*3+1]
		}
	} else {
		for t := 0; t < m.TriangleCount(); t++ {
			m.Vertices[t*3+1], m.Vertices[t*3+2] = m.Vertices[t*3+2], m.Vertices[t*3+1]
		}
	}
	m.RecomputeNormals()
}

// materialIndices returns the mesh's index buffer, materializing the
// implicit one for soup meshes.
func materialIndices(m *mesh.Mesh) []uint32 {
	if m.Indices != nil {
		return m.Indices
	}
	out := make([]uint32, len(m.Vertices))
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}
