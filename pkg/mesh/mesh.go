// Package mesh defines the triangulated-surface model that the face
// kernel and its collaborators (primitive generators, STL import,
// the scripting engine) operate on.
//
// A Mesh is either explicitly indexed, or an implicit "triangle soup"
// when Indices is nil: triangle i then reads vertices 3i, 3i+1, 3i+2.
// Per-triangle normals are derived data, always recomputed from vertex
// positions with the right-hand rule and never trusted from input.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// ErrInvalidIndex reports an out-of-range triangle or vertex reference.
// It is a programmer error and always fatal to the call that raised it.
var ErrInvalidIndex = errors.New("index out of range")

// Mesh is an ordered sequence of vertices and triangles.
type Mesh struct {
	Name     string
	Vertices []vec3.T
	Indices  []uint32 // nil means soup layout: triangle i = vertices 3i..3i+2
	Normals  []vec3.T // one unit normal per triangle
}

// NewIndexed builds a mesh from shared vertices and an index buffer,
// computing all triangle normals. len(indices) must be a multiple of 3.
func NewIndexed(name string, vertices []vec3.T, indices []uint32) *Mesh {
	m := &Mesh{Name: name, Vertices: vertices, Indices: indices}
	m.RecomputeNormals()
	return m
}

// NewSoup builds an unindexed mesh where every three consecutive
// vertices form a triangle, computing all triangle normals.
func NewSoup(name string, vertices []vec3.T) *Mesh {
	m := &Mesh{Name: name, Vertices: vertices}
	m.RecomputeNormals()
	return m
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m.Indices != nil {
		return len(m.Indices) / 3
	}
	return len(m.Vertices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// triangle resolves triangle i to its three vertex indices without
// bounds checking. Callers must validate i first.
func (m *Mesh) triangle(i int) (a, b, c int) {
	if m.Indices != nil {
		return int(m.Indices[i*3]), int(m.Indices[i*3+1]), int(m.Indices[i*3+2])
	}
	return i * 3, i*3 + 1, i*3 + 2
}

// TriangleIndices returns the vertex indices of triangle i.
func (m *Mesh) TriangleIndices(i int) (a, b, c int, err error) {
	if i < 0 || i >= m.TriangleCount() {
		return 0, 0, 0, fmt.Errorf("triangle %d: %w", i, ErrInvalidIndex)
	}
	a, b, c = m.triangle(i)
	return a, b, c, nil
}

// TriangleVertices returns the three corner positions of triangle i.
func (m *Mesh) TriangleVertices(i int) (p0, p1, p2 vec3.T, err error) {
	if i < 0 || i >= m.TriangleCount() {
		return p0, p1, p2, fmt.Errorf("triangle %d: %w", i, ErrInvalidIndex)
	}
	a, b, c := m.triangle(i)
	return m.Vertices[a], m.Vertices[b], m.Vertices[c], nil
}

// TriangleNormal returns the cached unit normal of triangle i.
func (m *Mesh) TriangleNormal(i int) (vec3.T, error) {
	if i < 0 || i >= m.TriangleCount() {
		return vec3.T{}, fmt.Errorf("triangle %d: %w", i, ErrInvalidIndex)
	}
	return m.Normals[i], nil
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) (vec3.T, error) {
	if i < 0 || i >= len(m.Vertices) {
		return vec3.T{}, fmt.Errorf("vertex %d: %w", i, ErrInvalidIndex)
	}
	return m.Vertices[i], nil
}

// Clone returns a deep copy. The kernel uses this whenever it must
// return a new mesh rather than mutate one in place.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{Name: m.Name}
	if m.Vertices != nil {
		out.Vertices = make([]vec3.T, len(m.Vertices))
		copy(out.Vertices, m.Vertices)
	}
	if m.Indices != nil {
		out.Indices = make([]uint32, len(m.Indices))
		copy(out.Indices, m.Indices)
	}
	if m.Normals != nil {
		out.Normals = make([]vec3.T, len(m.Normals))
		copy(out.Normals, m.Normals)
	}
	return out
}

// Translate moves every vertex by v. Triangle normals are invariant
// under translation, so they are left untouched.
func (m *Mesh) Translate(v vec3.T) {
	for i := range m.Vertices {
		m.Vertices[i].Add(&v)
	}
}

// RecomputeNormals rebuilds the per-triangle normal cache from the
// current vertex positions. Must be called after any vertex change
// other than a rigid translation.
func (m *Mesh) RecomputeNormals() {
	n := m.TriangleCount()
	m.Normals = make([]vec3.T, n)
	for i := 0; i < n; i++ {
		a, b, c := m.triangle(i)
		m.Normals[i] = NormalOf(m.Vertices[a], m.Vertices[b], m.Vertices[c])
	}
}

// Bounds returns the axis-aligned bounding box of the mesh. An empty
// mesh returns two zero vectors.
func (m *Mesh) Bounds() (min, max vec3.T) {
	if len(m.Vertices) == 0 {
		return min, max
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			min[k] = math.Min(min[k], v[k])
			max[k] = math.Max(max[k], v[k])
		}
	}
	return min, max
}

// NormalOf computes the unit normal of a triangle from its corners
// using the right-hand rule: normalize((p1-p0) x (p2-p0)). Degenerate
// triangles yield the zero vector.
func NormalOf(p0, p1, p2 vec3.T) vec3.T {
	e1 := vec3.Sub(&p1, &p0)
	e2 := vec3.Sub(&p2, &p0)
	n := vec3.Cross(&e1, &e2)
	l := n.Length()
	if l < 1e-12 {
		return vec3.T{}
	}
	n.Scale(1 / l)
	return n
}

// AreaOf computes the area of a triangle from its corners
// (half the cross-product magnitude).
func AreaOf(p0, p1, p2 vec3.T) float64 {
	e1 := vec3.Sub(&p1, &p0)
	e2 := vec3.Sub(&p2, &p0)
	n := vec3.Cross(&e1, &e2)
	return n.Length() / 2
}
