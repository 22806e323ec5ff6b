package grid

import "errors"

// Error kinds surfaced by dataset operations. Callers test with errors.Is;
// no retry or recovery is attempted at this level.
var (
	// ErrIO wraps missing or unreadable dataset files.
	ErrIO = errors.New("dataset file missing or unreadable")

	// ErrShapeMismatch flags elementwise operations over differently-shaped grids.
	ErrShapeMismatch = errors.New("grid shape mismatch")

	// ErrCRSMismatch flags operands referenced to different coordinate systems.
	ErrCRSMismatch = errors.New("coordinate reference system mismatch")

	// ErrWarpSpec flags absent or contradictory reprojection parameters.
	ErrWarpSpec = errors.New("invalid warp specification")

	// ErrNoCRS flags operations needing a coordinate reference system on
	// a dataset that carries none.
	ErrNoCRS = errors.New("dataset carries no coordinate reference system")
)
