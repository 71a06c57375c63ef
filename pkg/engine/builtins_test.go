package engine

import (
	"math"
	"strings"
	"testing"
)

func TestBoxBuiltin(t *testing.T) {
	eng := NewEngine()
	sc, evalErrs, err := eng.Evaluate(`(emit (box :x 10 :y 6 :z 2) "slab")`)
	if err != nil || len(evalErrs) != 0 {
		t.Fatalf("evaluation failed: %v %v", evalErrs, err)
	}

	part := sc.Lookup("slab")
	if part == nil {
		t.Fatal("part slab not emitted")
	}
	if part.Mesh.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", part.Mesh.TriangleCount())
	}
	min, max := part.Mesh.Bounds()
	if math.Abs(max[0]-5) > 1e-9 || math.Abs(min[2]+1) > 1e-9 {
		t.Errorf("bounds %v..%v, want a centered 10x6x2 box", min, max)
	}
}

func TestCylinderBuiltin(t *testing.T) {
	eng := NewEngine()
	sc, evalErrs, err := eng.Evaluate(`(emit (cylinder :radius 2 :height 8 :segments 16) "post")`)
	if err != nil || len(evalErrs) != 0 {
		t.Fatalf("evaluation failed: %v %v", evalErrs, err)
	}
	part := sc.Lookup("post")
	if part == nil {
		t.Fatal("part post not emitted")
	}
	_, max := part.Mesh.Bounds()
	if math.Abs(max[2]-8) > 1e-9 {
		t.Errorf("height = %g, want 8", max[2])
	}
}

func TestTranslateBuiltin(t *testing.T) {
	eng := NewEngine()
	sc, evalErrs, err := eng.Evaluate(`(emit (translate (box :x 2 :y 2 :z 2) (vec3 10 0 0)) "moved")`)
	if err != nil || len(evalErrs) != 0 {
		t.Fatalf("evaluation failed: %v %v", evalErrs, err)
	}
	part := sc.Lookup("moved")
	if part == nil {
		t.Fatal("part moved not emitted")
	}
	min, max := part.Mesh.Bounds()
	if math.Abs(min[0]-9) > 1e-9 || math.Abs(max[0]-11) > 1e-9 {
		t.Errorf("x bounds [%g, %g], want [9, 11]", min[0], max[0])
	}
}

func TestFaceExtrudeBuiltins(t *testing.T) {
	src := `
(def body (box :x 2 :y 2 :z 2))
(def top (face body 2))
(emit (extrude top :depth 5) "bump")
`
	eng := NewEngine()
	sc, evalErrs, err := eng.Evaluate(src)
	if err != nil || len(evalErrs) != 0 {
		t.Fatalf("evaluation failed: %v %v", evalErrs, err)
	}
	part := sc.Lookup("bump")
	if part == nil {
		t.Fatal("part bump not emitted")
	}
	min, max := part.Mesh.Bounds()
	// Triangle 2 is on the +Z face at z=1; the solid sweeps to z=6.
	if math.Abs(min[2]-1) > 1e-9 || math.Abs(max[2]-6) > 1e-9 {
		t.Errorf("z extent [%g, %g], want [1, 6]", min[2], max[2])
	}
}

func TestExtrudeBevelKeywords(t *testing.T) {
	src := `
(def body (box :x 4 :y 4 :z 2))
(emit (extrude (face body 2)
               :depth 10
               :bevel-thickness 2
               :bevel-size 1
               :bevel-segments 2) "rim")
`
	eng := NewEngine()
	sc, evalErrs, err := eng.Evaluate(src)
	if err != nil || len(evalErrs) != 0 {
		t.Fatalf("evaluation failed: %v %v", evalErrs, err)
	}
	part := sc.Lookup("rim")
	if part == nil {
		t.Fatal("part rim not emitted")
	}
	// 6 rings of 4 profile points.
	if part.Mesh.VertexCount() != 24 {
		t.Errorf("VertexCount() = %d, want 24", part.Mesh.VertexCount())
	}
	min, max := part.Mesh.Bounds()
	if math.Abs(max[2]-min[2]-10) > 1e-9 {
		t.Errorf("sweep extent = %g, want exactly 10", max[2]-min[2])
	}
}

func TestOffsetBuiltin(t *testing.T) {
	t.Run("whole mesh", func(t *testing.T) {
		eng := NewEngine()
		sc, evalErrs, err := eng.Evaluate(`(emit (offset (box :x 2 :y 2 :z 2) :distance 0.5) "grown")`)
		if err != nil || len(evalErrs) != 0 {
			t.Fatalf("evaluation failed: %v %v", evalErrs, err)
		}
		part := sc.Lookup("grown")
		if part == nil {
			t.Fatal("part grown not emitted")
		}
		_, max := part.Mesh.Bounds()
		if max[0] <= 1 {
			t.Errorf("max x = %g, want inflated past 1", max[0])
		}
	})

	t.Run("vertex subset", func(t *testing.T) {
		eng := NewEngine()
		sc, evalErrs, err := eng.Evaluate(`(emit (offset (box :x 2 :y 2 :z 2) :distance 0.5 :vertices (list 0 1)) "poked")`)
		if err != nil || len(evalErrs) != 0 {
			t.Fatalf("evaluation failed: %v %v", evalErrs, err)
		}
		if sc.Lookup("poked") == nil {
			t.Fatal("part poked not emitted")
		}
	})
}

func TestShellBuiltin(t *testing.T) {
	eng := NewEngine()
	sc, evalErrs, err := eng.Evaluate(`(emit (shell (box :x 2 :y 2 :z 2) :thickness 0.5) "hollow")`)
	if err != nil || len(evalErrs) != 0 {
		t.Fatalf("evaluation failed: %v %v", evalErrs, err)
	}
	part := sc.Lookup("hollow")
	if part == nil {
		t.Fatal("part hollow not emitted")
	}
	if part.Mesh.TriangleCount() != 24 {
		t.Errorf("TriangleCount() = %d, want 24 (two surfaces)", part.Mesh.TriangleCount())
	}
}

func TestEmitReplacesSameName(t *testing.T) {
	src := `
(emit (box :x 1 :y 1 :z 1) "part")
(emit (box :x 3 :y 3 :z 3) "part")
`
	eng := NewEngine()
	sc, evalErrs, err := eng.Evaluate(src)
	if err != nil || len(evalErrs) != 0 {
		t.Fatalf("evaluation failed: %v %v", evalErrs, err)
	}
	if sc.PartCount() != 1 {
		t.Fatalf("PartCount() = %d, want 1", sc.PartCount())
	}
	_, max := sc.Lookup("part").Mesh.Bounds()
	if math.Abs(max[0]-1.5) > 1e-9 {
		t.Errorf("max x = %g, want the replacement box", max[0])
	}
}

func TestBuiltinErrorsSurfaceAsEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		frag string
	}{
		{"face out of range", `(face (box :x 1 :y 1 :z 1) 99)`, "face"},
		{"zero depth extrude", `(extrude (face (box :x 1 :y 1 :z 1) 0) :depth 0)`, "extrude"},
		{"emit non-mesh", `(emit 5 "x")`, "emit"},
		{"translate without vec3", `(translate (box :x 1 :y 1 :z 1) 7)`, "translate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := NewEngine()
			sc, evalErrs, err := eng.Evaluate(tt.src)
			if err != nil {
				t.Fatalf("builtin failure escalated to fatal error: %v", err)
			}
			if sc != nil {
				t.Error("got a scene despite builtin failure")
			}
			if len(evalErrs) == 0 {
				t.Fatal("no eval errors")
			}
			joined := ""
			for _, e := range evalErrs {
				joined += e.Message + "\n"
			}
			if !strings.Contains(joined, tt.frag) {
				t.Errorf("errors %q do not mention %q", joined, tt.frag)
			}
		})
	}
}
