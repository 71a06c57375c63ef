package kernel

import (
	"fmt"
	"math"
	"sort"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// Frame is a right-handed orthonormal coordinate system on a face's
// plane, used to move between the face's 3D embedding and its 2D
// profile. Frames are recomputed fresh for every projection and never
// cached: a face's geometry may change between selections.
type Frame struct {
	Origin vec3.T
	U      vec3.T
	V      vec3.T
	Normal vec3.T
}

// Profile2D is an ordered 2D polygon representing a face boundary in
// its frame. The projector guarantees counter-clockwise winding
// (signed area > 0 viewed from the side the normal points to).
type Profile2D []vec2.T

// SignedArea computes the polygon's signed area via the shoelace
// formula. Positive means counter-clockwise.
func (p Profile2D) SignedArea() float64 {
	var sum float64
	n := len(p)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p[i][0]*p[j][1] - p[j][0]*p[i][1]
	}
	return sum / 2
}

// NewFrame builds the orthonormal basis for a plane through origin
// with the given normal. The world axis least aligned with the normal
// seeds u, then v = norm(n x u) and u is re-orthogonalized as
// norm(v x n), giving cross(u, v) == n.
func NewFrame(origin, normal vec3.T) Frame {
	n := normal.Normalized()

	axes := [3]vec3.T{vec3.UnitX, vec3.UnitY, vec3.UnitZ}
	seed := axes[0]
	best := math.Abs(vec3.Dot(&n, &axes[0]))
	for _, axis := range axes[1:] {
		if d := math.Abs(vec3.Dot(&n, &axis)); d < best {
			best = d
			seed = axis
		}
	}

	v := vec3.Cross(&n, &seed)
	v.Normalize()
	u := vec3.Cross(&v, &n)
	u.Normalize()

	return Frame{Origin: origin, U: u, V: v, Normal: n}
}

// WorldFrame is the identity frame: origin at zero, u/v on the world
// X/Y axes, normal along +Z.
func WorldFrame() Frame {
	return Frame{U: vec3.UnitX, V: vec3.UnitY, Normal: vec3.UnitZ}
}

// Project maps a 3D point into the frame's 2D plane coordinates.
func (f Frame) Project(p vec3.T) vec2.T {
	d := vec3.Sub(&p, &f.Origin)
	return vec2.T{vec3.Dot(&d, &f.U), vec3.Dot(&d, &f.V)}
}

// Unproject maps 2D plane coordinates plus a height along the normal
// back into world space.
func (f Frame) Unproject(p vec2.T, height float64) vec3.T {
	out := f.Origin
	du := f.U.Scaled(p[0])
	dv := f.V.Scaled(p[1])
	dn := f.Normal.Scaled(height)
	out.Add(&du)
	out.Add(&dv)
	out.Add(&dn)
	return out
}

// ProjectFace projects a face's boundary onto its plane and returns
// the resulting profile together with the frame used.
//
// The boundary points are ordered by angle about the centroid, which
// is valid for the convex, simply-connected profiles the kernel
// assumes. Winding is normalized to counter-clockwise. The origin is
// the face centroid rather than any particular vertex, so the profile
// is centered and unbiased by the mesh's vertex enumeration order.
//
// Near-zero-area profiles fail with ErrDegenerateFace; vertex sets
// that do not share the face plane (only possible when the aggregator
// was bypassed) fail with ErrNonPlanarFace. There is deliberately no
// fallback geometry on either path.
func ProjectFace(face *Face) (Profile2D, Frame, error) {
	if face.Normal.Length() < EpsNormal {
		return nil, Frame{}, fmt.Errorf("project: zero face normal: %w", ErrDegenerateFace)
	}
	frame := NewFrame(face.Centroid, face.Normal)

	if len(face.Vertices) < 3 {
		return nil, frame, fmt.Errorf("project: %d boundary points: %w", len(face.Vertices), ErrDegenerateFace)
	}
	for _, p := range face.Vertices {
		if planeDistance(frame.Normal, frame.Origin, p) > planarTol {
			return nil, frame, fmt.Errorf("project: vertex off the face plane: %w", ErrNonPlanarFace)
		}
	}

	profile := make(Profile2D, len(face.Vertices))
	for i, p := range face.Vertices {
		profile[i] = frame.Project(p)
	}

	// Angular sort about the origin (the centroid) recovers the convex
	// boundary order from the aggregator's unordered vertex set.
	sort.Slice(profile, func(i, j int) bool {
		return math.Atan2(profile[i][1], profile[i][0]) < math.Atan2(profile[j][1], profile[j][0])
	})

	area := profile.SignedArea()
	if math.Abs(area) < EpsArea {
		return nil, frame, fmt.Errorf("project: signed area %g: %w", area, ErrDegenerateFace)
	}
	if area < 0 {
		for i, j := 0, len(profile)-1; i < j; i, j = i+1, j-1 {
			profile[i], profile[j] = profile[j], profile[i]
		}
	}

	return profile, frame, nil
}

// UnprojectProfile is the inverse of ProjectFace: it re-embeds a 2D
// profile in world space on the frame's plane.
func UnprojectProfile(profile Profile2D, frame Frame) []vec3.T {
	out := make([]vec3.T, len(profile))
	for i, p := range profile {
		out[i] = frame.Unproject(p, 0)
	}
	return out
}
