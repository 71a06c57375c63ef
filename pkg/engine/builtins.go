package engine

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mkessy/whittle/pkg/kernel"
	"github.com/mkessy/whittle/pkg/mesh"
	"github.com/mkessy/whittle/pkg/primitive"
	"github.com/mkessy/whittle/pkg/scene"
)

// scriptMeshCells is the marching cubes resolution for SDF-backed
// primitives created from scripts. Coarser than the export-quality
// default so re-evaluation stays interactive.
const scriptMeshCells = 64

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMesh wraps a mesh so it can flow between builtins.
type sexpMesh struct {
	m *mesh.Mesh
}

func (s *sexpMesh) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(mesh %q :triangles %d)", s.m.Name, s.m.TriangleCount())
}
func (s *sexpMesh) Type() *zygo.RegisteredType { return nil }

// sexpFace wraps an aggregated, projected face selection together
// with the mesh it came from.
type sexpFace struct {
	source  *mesh.Mesh
	face    *kernel.Face
	profile kernel.Profile2D
	frame   kernel.Frame
}

func (s *sexpFace) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(face :triangles %d :area %.3f)", len(s.face.Triangles), s.face.Area)
}
func (s *sexpFace) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a 3D vector.
type sexpVec3 struct {
	vec vec3.T
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec[0], v.vec[1], v.vec[2])
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

func toMesh(s zygo.Sexp) (*mesh.Mesh, error) {
	if m, ok := s.(*sexpMesh); ok {
		return m.m, nil
	}
	return nil, fmt.Errorf("expected mesh, got %T (%s)", s, s.SexpString(nil))
}

func toFace(s zygo.Sexp) (*sexpFace, error) {
	if f, ok := s.(*sexpFace); ok {
		return f, nil
	}
	return nil, fmt.Errorf("expected face, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (vec3.T, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return vec3.T{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// kwFloat reads an optional keyword number argument, keeping def when
// absent.
func kwFloat(pa kwArgs, name string, def float64) (float64, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// kwInt reads an optional keyword integer argument.
func kwInt(pa kwArgs, name string, def int) (int, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the Whittle modeling builtins into a
// zygomys environment. The builtins drive the geometry kernel and
// populate the provided scene during evaluation.
//
// Source must be preprocessed with preprocessSource() first so that
// :keyword tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, sc *scene.Scene) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v vec3.T
		for i := 0; i < 3; i++ {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: component %d: %w", i, err)
			}
			v[i] = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (box :x 100 :y 60 :z 20)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		x, err := kwFloat(pa, "x", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		y, err := kwFloat(pa, "y", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		z, err := kwFloat(pa, "z", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		return &sexpMesh{m: primitive.Box(x, y, z)}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :radius 10 :height 40 :segments 32)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		radius, err := kwFloat(pa, "radius", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		height, err := kwFloat(pa, "height", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		segments, err := kwInt(pa, "segments", 32)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		m, err := primitive.Cylinder(radius, height, segments)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		return &sexpMesh{m: m}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 10)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		radius, err := kwFloat(pa, "radius", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		m, err := primitive.Sphere(radius, scriptMeshCells)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return &sexpMesh{m: m}, nil
	})

	// -----------------------------------------------------------------------
	// (rounded-box :x 40 :y 30 :z 20 :radius 3)
	//
	// Registered as "rounded_box"; the preprocessor converts the
	// kebab-case form in source.
	// -----------------------------------------------------------------------
	env.AddFunction("rounded_box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		x, err := kwFloat(pa, "x", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rounded-box: %w", err)
		}
		y, err := kwFloat(pa, "y", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rounded-box: %w", err)
		}
		z, err := kwFloat(pa, "z", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rounded-box: %w", err)
		}
		radius, err := kwFloat(pa, "radius", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rounded-box: %w", err)
		}
		m, err := primitive.RoundedBox(x, y, z, radius, scriptMeshCells)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rounded-box: %w", err)
		}
		return &sexpMesh{m: m}, nil
	})

	// -----------------------------------------------------------------------
	// (translate m (vec3 10 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("translate requires a mesh and a vec3")
		}
		m, err := toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		v, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		out := m.Clone()
		out.Translate(v)
		return &sexpMesh{m: out}, nil
	})

	// -----------------------------------------------------------------------
	// (face m 4) selects the logical planar face containing triangle 4
	// -----------------------------------------------------------------------
	env.AddFunction("face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("face requires a mesh and a triangle index")
		}
		m, err := toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: %w", err)
		}
		tri, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: %w", err)
		}
		f, err := kernel.AggregateFace(m, tri)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: %w", err)
		}
		profile, frame, err := kernel.ProjectFace(f)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: %w", err)
		}
		return &sexpFace{source: m, face: f, profile: profile, frame: frame}, nil
	})

	// -----------------------------------------------------------------------
	// (extrude f :depth 10 :bevel-thickness 1 :bevel-size 1 :bevel-segments 2)
	// -----------------------------------------------------------------------
	env.AddFunction("extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("extrude requires a face as first argument")
		}
		f, err := toFace(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
		}
		depth, err := kwFloat(pa, "depth", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
		}

		var bevel *kernel.Bevel
		if _, ok := pa.kw["bevel-thickness"]; ok {
			thickness, err := kwFloat(pa, "bevel-thickness", 0)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
			}
			size, err := kwFloat(pa, "bevel-size", thickness)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
			}
			segments, err := kwInt(pa, "bevel-segments", 1)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
			}
			bevel = &kernel.Bevel{Thickness: thickness, Size: size, Segments: segments}
		}

		m, err := kernel.ExtrudeProfile(f.profile, f.frame, depth, bevel)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
		}
		return &sexpMesh{m: m}, nil
	})

	// -----------------------------------------------------------------------
	// (offset m :distance 2)
	// (offset m :distance 2 :vertices (list 0 1 2 3))
	// -----------------------------------------------------------------------
	env.AddFunction("offset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("offset requires a mesh as first argument")
		}
		m, err := toMesh(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}
		distance, err := kwFloat(pa, "distance", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}

		if v, ok := pa.kw["vertices"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("offset: vertices: %w", err)
			}
			indices := make([]int, 0, len(items))
			for _, item := range items {
				ix, err := toInt(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("offset: vertex entry: %w", err)
				}
				indices = append(indices, ix)
			}
			out, err := kernel.OffsetVertices(m, indices, distance)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("offset: %w", err)
			}
			return &sexpMesh{m: out}, nil
		}

		return &sexpMesh{m: kernel.OffsetWhole(m, distance)}, nil
	})

	// -----------------------------------------------------------------------
	// (shell m :thickness 3)
	// -----------------------------------------------------------------------
	env.AddFunction("shell", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("shell requires a mesh as first argument")
		}
		m, err := toMesh(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shell: %w", err)
		}
		thickness, err := kwFloat(pa, "thickness", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shell: %w", err)
		}
		return &sexpMesh{m: kernel.Shell(m, thickness)}, nil
	})

	// -----------------------------------------------------------------------
	// (emit m "name") adds a mesh to the scene as a named part
	// -----------------------------------------------------------------------
	env.AddFunction("emit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("emit requires a mesh and a name")
		}
		m, err := toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("emit: %w", err)
		}
		partName, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("emit: %w", err)
		}
		out := m.Clone()
		out.Name = partName
		sc.Add(&scene.Part{Name: partName, Mesh: out})
		return args[0], nil
	})
}
