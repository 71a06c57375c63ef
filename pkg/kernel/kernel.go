// Package kernel implements the mesh face-geometry kernel: coplanar
// face aggregation, planar projection, profile extrusion, and
// normal-offset displacement (face push and shelling).
//
// The kernel is pure computation. Every operation consumes immutable
// inputs and returns new values; no input mesh is ever mutated. That
// makes the package trivially safe to call from multiple goroutines,
// as long as no single mesh is being mutated elsewhere concurrently.
// All failures are structural (degenerate geometry, bad indices) and
// are surfaced as errors, never retried and never papered over with
// substitute geometry.
package kernel

// Geometric tolerances. These are fixed small epsilons; the kernel has
// no configuration layer.
const (
	// EpsNormal bounds how far from parallel two triangle normals may
	// be while still counting as coplanar candidates:
	// |dot(n1, n2)| > 1 - EpsNormal.
	EpsNormal = 1e-6

	// EpsPlane is the maximum perpendicular distance from a vertex to
	// the seed plane for its triangle to join a face.
	EpsPlane = 1e-6

	// WeldEps is the cell size of the spatial grid used to deduplicate
	// vertices during face aggregation. Two vertices closer than this
	// along every axis are treated as the same point.
	WeldEps = 1e-6

	// EpsArea is the signed-area magnitude below which a projected
	// profile is considered degenerate.
	EpsArea = 1e-9

	// EpsDepth is the extrusion depth magnitude below which an
	// extrusion is rejected as a no-op.
	EpsDepth = 1e-9

	// planarTol is the projector's planarity re-check tolerance. It is
	// looser than EpsPlane because the projector measures distance from
	// the centroid plane, not the seed plane the aggregator used.
	planarTol = 1e-5
)
