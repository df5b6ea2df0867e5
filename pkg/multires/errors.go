package multires

import "errors"

// Failure conditions of context construction and assignment. All of them
// are local and recoverable: the operation is aborted and mesh data is left
// unchanged.
var (
	// ErrNoBaseMesh: construction without a usable base mesh.
	ErrNoBaseMesh = errors.New("multires: no usable base mesh")

	// ErrBadTopology: face/grid counts do not line up with the base mesh.
	ErrBadTopology = errors.New("multires: incompatible topology")

	// ErrInvalidLevel: requested levels are out of range or inconsistent.
	ErrInvalidLevel = errors.New("multires: invalid level")

	// ErrLevelMismatch: stored grid dimensions disagree with the levels a
	// construction path requires.
	ErrLevelMismatch = errors.New("multires: grid level mismatch")

	// ErrCountMismatch: caller-supplied data does not match the expected
	// element count. Nothing has been written.
	ErrCountMismatch = errors.New("multires: element count mismatch")

	// ErrSourceTooCoarse: a grid source is below the reshape level.
	ErrSourceTooCoarse = errors.New("multires: source below reshape level")

	// ErrNoOriginal: an operation needs the original grid snapshot but
	// StoreOriginalGrids was never called.
	ErrNoOriginal = errors.New("multires: original grids not stored")
)
