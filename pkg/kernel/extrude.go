package kernel

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mkessy/whittle/pkg/mesh"
)

// Bevel describes an optional chamfer of the extrusion rims.
type Bevel struct {
	Thickness float64 // extent of the chamfer along the sweep axis, from each cap
	Size      float64 // how far the cap rim is inset toward the profile center
	Segments  int     // chamfer subdivisions, minimum 1
}

// ExtrudeProfile sweeps a 2D profile along the frame's normal axis by
// depth and returns the resulting solid re-embedded in world space
// through the frame basis.
//
// A negative depth mirrors the sweep axis rather than reversing the
// profile winding, so a negative-depth solid is the mirror image of a
// positive-depth one about the face plane. Caps are fan-triangulated,
// which is sufficient only for convex profiles. The bevel insets each
// rim point radially toward the profile origin, again a convex-profile
// operation; the chamfer lives inside the depth span, so the solid's
// extent along the sweep axis is always exactly |depth|.
func ExtrudeProfile(profile Profile2D, frame Frame, depth float64, bevel *Bevel) (*mesh.Mesh, error) {
	if len(profile) < 3 {
		return nil, fmt.Errorf("extrude: %d profile points: %w", len(profile), ErrDegenerateFace)
	}
	area := profile.SignedArea()
	if math.Abs(area) < EpsArea {
		return nil, fmt.Errorf("extrude: profile area %g: %w", area, ErrDegenerateFace)
	}
	if math.Abs(depth) < EpsDepth {
		return nil, fmt.Errorf("extrude: depth %g: %w", depth, ErrZeroDepthExtrusion)
	}

	// Work on a CCW copy. ProjectFace already guarantees the winding,
	// but profiles can also arrive from external constructors.
	pts := make(Profile2D, len(profile))
	copy(pts, profile)
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}

	mirror := depth < 0
	sign := 1.0
	if mirror {
		sign = -1
	}

	// A ring is one copy of the profile at a height along the sweep
	// axis, optionally inset for the bevel chamfer.
	type ring struct{ inset, h float64 }
	var rings []ring
	if bevel == nil {
		rings = []ring{{0, 0}, {0, depth}}
	} else {
		t := math.Abs(bevel.Thickness)
		if limit := math.Abs(depth) / 2; t > limit {
			t = limit
		}
		s := math.Abs(bevel.Size)
		segs := bevel.Segments
		if segs < 1 {
			segs = 1
		}
		rings = append(rings, ring{s, 0})
		for k := 1; k <= segs; k++ {
			f := float64(k) / float64(segs)
			rings = append(rings, ring{s * (1 - f), sign * t * f})
		}
		rings = append(rings, ring{0, depth - sign*t})
		for k := 1; k <= segs; k++ {
			f := float64(k) / float64(segs)
			rings = append(rings, ring{s * f, depth - sign*t + sign*t*f})
		}
	}

	n := len(pts)
	verts := make([]vec3.T, 0, n*len(rings))
	for _, r := range rings {
		for _, p := range pts {
			verts = append(verts, frame.Unproject(insetPoint(p, r.inset), r.h))
		}
	}

	var indices []uint32
	tri := func(a, b, c int) {
		// Mirrored sweeps flip winding so outward normals stay outward.
		if mirror {
			b, c = c, b
		}
		indices = append(indices, uint32(a), uint32(b), uint32(c))
	}

	// Side walls between consecutive rings.
	for r := 0; r+1 < len(rings); r++ {
		base0, base1 := r*n, (r+1)*n
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			tri(base0+i, base0+j, base1+j)
			tri(base0+i, base1+j, base1+i)
		}
	}

	// Caps. The bottom faces away from the sweep direction, the top
	// toward it.
	bottom, top := 0, (len(rings)-1)*n
	for i := 1; i+1 < n; i++ {
		tri(bottom, bottom+i+1, bottom+i)
		tri(top, top+i, top+i+1)
	}

	return mesh.NewIndexed("extrusion", verts, indices), nil
}

// insetPoint moves a profile point radially toward the origin by
// inset, collapsing to the origin when the point is closer than that.
func insetPoint(p vec2.T, inset float64) vec2.T {
	if inset <= 0 {
		return p
	}
	l := p.Length()
	if l <= inset {
		return vec2.T{}
	}
	return p.Scaled((l - inset) / l)
}
