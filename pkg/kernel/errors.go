package kernel

import "errors"

// Kernel error taxonomy. All are synchronous result failures; the
// calling layer decides how to present them and leaves modeling state
// unchanged (no partial mutation is possible since the kernel only
// returns new values).
var (
	// ErrDegenerateFace reports a near-zero-area projected profile.
	// Recoverable: the caller should refuse the operation and keep its
	// selection state.
	ErrDegenerateFace = errors.New("degenerate face")

	// ErrZeroDepthExtrusion reports an extrusion depth too small to
	// produce a solid.
	ErrZeroDepthExtrusion = errors.New("zero-depth extrusion")

	// ErrNonPlanarFace reports a face whose vertices do not share a
	// plane. Only possible when a caller bypasses AggregateFace and
	// feeds an incoherent triangle set to the projector.
	ErrNonPlanarFace = errors.New("non-planar face")
)
