// Package multires implements the multiresolution displacement reshape
// engine: it maps per-vertex displacement stored on a hierarchy of fine
// grids into and out of a canonical tangent-space representation, and
// propagates edits made at one resolution level through the hierarchy while
// preserving high-frequency sculpted detail.
//
// A reshape operation is driven through a Context:
//
//	ctx, err := multires.NewContext(topo, grids, eval, settings)
//	...
//	ctx.StoreOriginalGrids()
//	err = ctx.AssignFromVertexPositions(positions)
//	err = ctx.SmoothWithDetails()
//	ctx.Close()
//
// Passes are strictly sequential and a Context must not be shared across
// goroutines; within a pass the per-grid-vertex work is parallelized
// internally. The limit-surface evaluator, base-mesh topology and grid
// buffers are consumed as narrow capabilities so the engine can run against
// analytic test surfaces as well as a real subdivision evaluator.
package multires

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/multires/pkg/subdiv"
)

// Topology is the read-only base-mesh view the engine needs, plus access to
// the live vertex buffer so base-refit operations can write corrected
// coordinates back.
type Topology interface {
	subdiv.Topology
	VertexCount() int
	VertexCoords() []mgl64.Vec3
}

// GridStore is the displacement/mask buffer capability. The engine writes
// through the slices the store hands out; allocation and growth stay with
// the store ("ensure grids" collaborator).
type GridStore interface {
	Level() int
	NumGrids() int
	Displacement(grid int) []mgl64.Vec3
	// Mask returns the paint-mask slice of a grid, or nil when the store
	// carries no masks.
	Mask(grid int) []float64
	EnsureLevel(level int)
}

// GridSource is an external fine-grid data source (for example a live
// sculpt session) supplying object-space positions at its own resolution.
type GridSource interface {
	Level() int
	NumGrids() int
	Position(grid, x, y int) mgl64.Vec3
}

// Settings selects the levels of a reshape operation.
type Settings struct {
	// Level is the resolution at which new displacement is assigned.
	Level int
	// TopLevel is the highest stored level; edits propagate up to it.
	TopLevel int
}

// LevelInfo describes one resolution level of a context.
type LevelInfo struct {
	Level    int
	GridSize int
}

// gridSizeForLevel returns the per-corner grid resolution at a level:
// (2^(level-1))+1 samples per side, one sample at level 0.
func gridSizeForLevel(level int) int {
	if level <= 0 {
		return 1
	}
	return (1 << (level - 1)) + 1
}
