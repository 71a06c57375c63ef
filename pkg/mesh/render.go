package mesh

// RenderMesh is the flat-array, JSON-serializable layout the frontend
// renderer consumes: 3 float32s per vertex position and normal, 3
// uint32s per triangle.
type RenderMesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which scene part this came from
}

// Flatten expands the mesh into RenderMesh form. Vertices are
// duplicated per triangle corner and carry their triangle's normal,
// which gives flat shading and sidesteps shared-vertex normal
// averaging in the renderer.
func (m *Mesh) Flatten() *RenderMesh {
	numTri := m.TriangleCount()
	out := &RenderMesh{
		Vertices: make([]float32, 0, numTri*9),
		Normals:  make([]float32, 0, numTri*9),
		Indices:  make([]uint32, 0, numTri*3),
		PartName: m.Name,
	}
	for i := 0; i < numTri; i++ {
		a, b, c := m.triangle(i)
		n := m.Normals[i]
		for j, vi := range [3]int{a, b, c} {
			v := m.Vertices[vi]
			out.Vertices = append(out.Vertices, float32(v[0]), float32(v[1]), float32(v[2]))
			out.Normals = append(out.Normals, float32(n[0]), float32(n[1]), float32(n[2]))
			out.Indices = append(out.Indices, uint32(i*3+j))
		}
	}
	return out
}

// VertexCount returns the number of vertices.
func (r *RenderMesh) VertexCount() int {
	return len(r.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (r *RenderMesh) TriangleCount() int {
	return len(r.Indices) / 3
}
