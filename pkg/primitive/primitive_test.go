package primitive

import (
	"math"
	"testing"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mkessy/whittle/pkg/mesh"
)

// enclosedVolume computes the signed volume of a closed mesh.
func enclosedVolume(m *mesh.Mesh) float64 {
	var sum float64
	for i := 0; i < m.TriangleCount(); i++ {
		p0, p1, p2, _ := m.TriangleVertices(i)
		c := vec3.Cross(&p1, &p2)
		sum += vec3.Dot(&p0, &c)
	}
	return sum / 6
}

func TestBox(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float64
	}{
		{"unit cube", 1, 1, 1},
		{"flat slab", 100, 60, 2},
		{"tall post", 5, 5, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Box(tt.x, tt.y, tt.z)

			if m.VertexCount() != 8 || m.TriangleCount() != 12 {
				t.Errorf("got %d vertices / %d triangles, want 8 / 12",
					m.VertexCount(), m.TriangleCount())
			}

			min, max := m.Bounds()
			want := vec3.T{tt.x / 2, tt.y / 2, tt.z / 2}
			for k := 0; k < 3; k++ {
				if math.Abs(max[k]-want[k]) > 1e-12 || math.Abs(min[k]+want[k]) > 1e-12 {
					t.Errorf("bounds %v..%v not centered with size (%g, %g, %g)",
						min, max, tt.x, tt.y, tt.z)
					break
				}
			}

			if v := enclosedVolume(m); math.Abs(v-tt.x*tt.y*tt.z) > 1e-9 {
				t.Errorf("enclosedVolume() = %g, want %g", v, tt.x*tt.y*tt.z)
			}
		})
	}
}

func TestCylinder(t *testing.T) {
	m, err := Cylinder(2, 10, 32)
	if err != nil {
		t.Fatalf("Cylinder error: %v", err)
	}

	// 32 side quads + 2 fan caps of 30 triangles each.
	if got, want := m.TriangleCount(), 32*2+2*30; got != want {
		t.Errorf("TriangleCount() = %d, want %d", got, want)
	}

	min, max := m.Bounds()
	if math.Abs(min[2]-0) > 1e-9 || math.Abs(max[2]-10) > 1e-9 {
		t.Errorf("z extent [%g, %g], want [0, 10]", min[2], max[2])
	}
	if math.Abs(max[0]-2) > 1e-9 || math.Abs(min[0]+2) > 1e-9 {
		t.Errorf("x extent [%g, %g], want [-2, 2]", min[0], max[0])
	}

	// Volume approaches pi r^2 h from below as segments increase.
	v := enclosedVolume(m)
	exact := math.Pi * 4 * 10
	if v <= 0 || v >= exact || v < exact*0.95 {
		t.Errorf("enclosedVolume() = %g, want just under %g", v, exact)
	}
}

func TestCylinderZeroHeight(t *testing.T) {
	if _, err := Cylinder(2, 0, 16); err == nil {
		t.Error("Cylinder with zero height did not fail")
	}
}

func TestRectProfile(t *testing.T) {
	p := RectProfile(4, 2)
	if len(p) != 4 {
		t.Fatalf("got %d points, want 4", len(p))
	}
	if area := p.SignedArea(); math.Abs(area-8) > 1e-12 {
		t.Errorf("SignedArea() = %g, want 8 (counter-clockwise)", area)
	}
}

func TestPolygonProfile(t *testing.T) {
	cw := []vec2.T{{0, 0}, {0, 2}, {2, 2}, {2, 0}}
	p := PolygonProfile(cw)
	if area := p.SignedArea(); math.Abs(area-4) > 1e-12 {
		t.Errorf("SignedArea() = %g, want 4 after winding normalization", area)
	}
	// Input slice untouched.
	if cw[0] != (vec2.T{0, 0}) || cw[1] != (vec2.T{0, 2}) {
		t.Error("PolygonProfile mutated its input")
	}
}

func TestCircleProfile(t *testing.T) {
	t.Run("area converges", func(t *testing.T) {
		p := CircleProfile(3, 64)
		if len(p) != 64 {
			t.Fatalf("got %d points, want 64", len(p))
		}
		area := p.SignedArea()
		exact := math.Pi * 9
		if area <= 0 || area >= exact || area < exact*0.99 {
			t.Errorf("SignedArea() = %g, want just under %g", area, exact)
		}
	})
	t.Run("segment clamp", func(t *testing.T) {
		p := CircleProfile(1, 0)
		if len(p) != 3 {
			t.Errorf("got %d points, want clamp to 3", len(p))
		}
	})
}
