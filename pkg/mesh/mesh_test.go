package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/ungerik/go3d/float64/vec3"
)

// --- Counting and layout tests ---

func TestVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []vec3.T
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []vec3.T{{1, 2, 3}}, 1},
		{"four vertices", []vec3.T{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTriangleCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []vec3.T
		indices  []uint32
		want     int
	}{
		{"empty", nil, nil, 0},
		{"indexed one triangle", []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint32{0, 1, 2}, 1},
		{"indexed two triangles", []vec3.T{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, []uint32{0, 1, 2, 0, 2, 3}, 2},
		{"soup one triangle", []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, nil, 1},
		{"soup two triangles", make([]vec3.T, 6), nil, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices, Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		if !(&Mesh{}).IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []vec3.T{{1, 2, 3}}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

// --- Triangle accessor tests ---

func TestTriangleAccessors(t *testing.T) {
	m := NewIndexed("quad",
		[]vec3.T{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		[]uint32{0, 1, 2, 0, 2, 3})

	a, b, c, err := m.TriangleIndices(1)
	if err != nil {
		t.Fatalf("TriangleIndices(1) error: %v", err)
	}
	if a != 0 || b != 2 || c != 3 {
		t.Errorf("TriangleIndices(1) = (%d, %d, %d), want (0, 2, 3)", a, b, c)
	}

	p0, p1, p2, err := m.TriangleVertices(0)
	if err != nil {
		t.Fatalf("TriangleVertices(0) error: %v", err)
	}
	if p0 != (vec3.T{0, 0, 0}) || p1 != (vec3.T{1, 0, 0}) || p2 != (vec3.T{1, 1, 0}) {
		t.Errorf("TriangleVertices(0) = %v, %v, %v", p0, p1, p2)
	}

	if _, _, _, err := m.TriangleIndices(2); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("TriangleIndices(2) error = %v, want ErrInvalidIndex", err)
	}
	if _, _, _, err := m.TriangleVertices(-1); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("TriangleVertices(-1) error = %v, want ErrInvalidIndex", err)
	}
	if _, err := m.TriangleNormal(99); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("TriangleNormal(99) error = %v, want ErrInvalidIndex", err)
	}
	if _, err := m.Vertex(4); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("Vertex(4) error = %v, want ErrInvalidIndex", err)
	}
}

func TestSoupTriangleResolution(t *testing.T) {
	m := NewSoup("soup", []vec3.T{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{5, 5, 5}, {6, 5, 5}, {5, 6, 5},
	})
	a, b, c, err := m.TriangleIndices(1)
	if err != nil {
		t.Fatalf("TriangleIndices(1) error: %v", err)
	}
	if a != 3 || b != 4 || c != 5 {
		t.Errorf("TriangleIndices(1) = (%d, %d, %d), want (3, 4, 5)", a, b, c)
	}
}

// --- Normal tests ---

func TestNormalOf(t *testing.T) {
	tests := []struct {
		name       string
		p0, p1, p2 vec3.T
		want       vec3.T
	}{
		{"ccw in xy plane", vec3.T{0, 0, 0}, vec3.T{1, 0, 0}, vec3.T{0, 1, 0}, vec3.T{0, 0, 1}},
		{"cw in xy plane", vec3.T{0, 0, 0}, vec3.T{0, 1, 0}, vec3.T{1, 0, 0}, vec3.T{0, 0, -1}},
		{"yz plane", vec3.T{0, 0, 0}, vec3.T{0, 1, 0}, vec3.T{0, 0, 1}, vec3.T{1, 0, 0}},
		{"degenerate collinear", vec3.T{0, 0, 0}, vec3.T{1, 1, 1}, vec3.T{2, 2, 2}, vec3.T{}},
		{"degenerate repeated", vec3.T{1, 2, 3}, vec3.T{1, 2, 3}, vec3.T{4, 5, 6}, vec3.T{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalOf(tt.p0, tt.p1, tt.p2)
			for k := 0; k < 3; k++ {
				if math.Abs(got[k]-tt.want[k]) > 1e-12 {
					t.Errorf("NormalOf() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestRecomputeNormals(t *testing.T) {
	m := NewIndexed("quad",
		[]vec3.T{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		[]uint32{0, 1, 2, 0, 2, 3})
	if len(m.Normals) != 2 {
		t.Fatalf("got %d normals, want 2", len(m.Normals))
	}
	for i, n := range m.Normals {
		if n != (vec3.T{0, 0, 1}) {
			t.Errorf("normal %d = %v, want (0, 0, 1)", i, n)
		}
	}

	// Move one vertex out of plane and recompute.
	m.Vertices[2][2] = 1
	m.RecomputeNormals()
	if m.Normals[0] == (vec3.T{0, 0, 1}) {
		t.Error("normal unchanged after vertex moved out of plane")
	}
}

func TestAreaOf(t *testing.T) {
	got := AreaOf(vec3.T{0, 0, 0}, vec3.T{2, 0, 0}, vec3.T{0, 2, 0})
	if math.Abs(got-2) > 1e-12 {
		t.Errorf("AreaOf() = %g, want 2", got)
	}
}

// --- Mutation tests ---

func TestCloneIndependence(t *testing.T) {
	m := NewIndexed("orig",
		[]vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]uint32{0, 1, 2})
	c := m.Clone()
	c.Vertices[0] = vec3.T{9, 9, 9}
	c.Indices[0] = 2

	if m.Vertices[0] != (vec3.T{0, 0, 0}) {
		t.Error("mutating clone vertices affected original")
	}
	if m.Indices[0] != 0 {
		t.Error("mutating clone indices affected original")
	}
}

func TestTranslate(t *testing.T) {
	m := NewIndexed("tri",
		[]vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]uint32{0, 1, 2})
	before := m.Normals[0]

	m.Translate(vec3.T{10, -5, 2})

	if m.Vertices[0] != (vec3.T{10, -5, 2}) {
		t.Errorf("vertex 0 = %v, want (10, -5, 2)", m.Vertices[0])
	}
	if m.Normals[0] != before {
		t.Error("translation changed a triangle normal")
	}
}

func TestBounds(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		min, max := (&Mesh{}).Bounds()
		if min != (vec3.T{}) || max != (vec3.T{}) {
			t.Errorf("Bounds() = %v, %v, want zero vectors", min, max)
		}
	})
	t.Run("points", func(t *testing.T) {
		m := &Mesh{Vertices: []vec3.T{{-1, 5, 0}, {3, -2, 7}, {0, 0, -4}}}
		min, max := m.Bounds()
		if min != (vec3.T{-1, -2, -4}) {
			t.Errorf("min = %v, want (-1, -2, -4)", min)
		}
		if max != (vec3.T{3, 5, 7}) {
			t.Errorf("max = %v, want (3, 5, 7)", max)
		}
	})
}

// --- Flatten tests ---

func TestFlatten(t *testing.T) {
	m := NewIndexed("quad",
		[]vec3.T{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		[]uint32{0, 1, 2, 0, 2, 3})

	rm := m.Flatten()
	if rm.TriangleCount() != 2 {
		t.Fatalf("flattened TriangleCount() = %d, want 2", rm.TriangleCount())
	}
	// Flat shading expands to one vertex per corner.
	if rm.VertexCount() != 6 {
		t.Errorf("flattened VertexCount() = %d, want 6", rm.VertexCount())
	}
	if len(rm.Normals) != len(rm.Vertices) {
		t.Errorf("normals length %d != vertices length %d", len(rm.Normals), len(rm.Vertices))
	}
	// All corners of the quad share the +Z normal.
	for i := 0; i < len(rm.Normals); i += 3 {
		if rm.Normals[i] != 0 || rm.Normals[i+1] != 0 || rm.Normals[i+2] != 1 {
			t.Errorf("normal at %d = (%g, %g, %g), want (0, 0, 1)",
				i, rm.Normals[i], rm.Normals[i+1], rm.Normals[i+2])
			break
		}
	}
}
