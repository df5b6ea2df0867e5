package multires

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/multires/internal/parallel"
)

// assignPosition projects an object-space position into tangent space at a
// grid coordinate and stores it. A degenerate tangent frame projects to a
// zero displacement.
func (c *Context) assignPosition(gc GridCoord, pos mgl64.Vec3) {
	p, tm := c.EvaluateLimitAtGrid(gc)
	d := tm.Inv().Mul3x1(pos.Sub(p))
	*c.GridElementForGridCoord(gc).Displacement = d
}

// ptexLatticeSize returns the side length of the reshape-level vertex
// lattice of one ptex face: quad ptex faces span two grid quadrants per
// side, corner ptex faces span one.
func (c *Context) ptexLatticeSize(ptexFace int) int {
	r := c.reshape.GridSize
	if c.IsQuadFace(c.gridToFace[c.ptexFirstGrid[ptexFace]]) {
		return 2*(r-1) + 1
	}
	return r
}

// ptexLatticeOffsets returns the start index of every ptex face within a
// flat position array ordered ptex face by ptex face, row-major within
// each, plus the total vertex count.
func (c *Context) ptexLatticeOffsets() ([]int, int) {
	numPTex := len(c.ptexFirstGrid) - 1
	offsets := make([]int, numPTex)
	total := 0
	for pf := 0; pf < numPTex; pf++ {
		offsets[pf] = total
		size := c.ptexLatticeSize(pf)
		total += size * size
	}
	return offsets, total
}

// ExpectedVertexCount returns the number of positions
// AssignFromVertexPositions requires at the reshape level.
func (c *Context) ExpectedVertexCount() int {
	_, total := c.ptexLatticeOffsets()
	return total
}

// AssignFromVertexPositions interprets positions as the object-space
// location of every reshape-level vertex, ordered ptex face by ptex face
// and row-major within each face's vertex lattice. Each position is
// converted to a tangent-space displacement against the limit surface and
// written to the destination grids.
//
// Fails with ErrCountMismatch, before any write, if the position count does
// not match ExpectedVertexCount.
func (c *Context) AssignFromVertexPositions(positions []mgl64.Vec3) error {
	offsets, total := c.ptexLatticeOffsets()
	if len(positions) != total {
		return fmt.Errorf("%w: got %d positions, reshape level %d needs %d",
			ErrCountMismatch, len(positions), c.reshape.Level, total)
	}

	numPTex := len(offsets)
	parallel.For(numPTex, func(pf int) {
		size := c.ptexLatticeSize(pf)
		base := offsets[pf]
		firstGrid := c.ptexFirstGrid[pf]

		if !c.IsQuadFace(c.gridToFace[firstGrid]) {
			for y := 0; y < size; y++ {
				v := float64(y) / float64(size-1)
				for x := 0; x < size; x++ {
					u := float64(x) / float64(size-1)
					gc := GridCoord{GridIndex: firstGrid, U: u, V: v}
					c.assignPosition(gc, positions[base+y*size+x])
				}
			}
			return
		}

		// Quad faces: walk each corner grid over its quadrant so the
		// quadrant-seam elements of every grid get written; seam lattice
		// entries are shared by the adjacent grids.
		r := c.reshape.GridSize
		for corner := 0; corner < 4; corner++ {
			for gy := 0; gy < r; gy++ {
				gv := float64(gy) / float64(r-1)
				for gx := 0; gx < r; gx++ {
					gu := float64(gx) / float64(r-1)
					pu, pv := QuadGridUVToPTexUV(corner, gu, gv)
					px := int(math.Round(pu * float64(size-1)))
					py := int(math.Round(pv * float64(size-1)))
					gc := GridCoord{GridIndex: firstGrid + corner, U: gu, V: gv}
					c.assignPosition(gc, positions[base+py*size+px])
				}
			}
		}
	})

	c.log.Debug("assigned displacement from vertex positions",
		zap.String("op", c.opID), zap.Int("count", total))
	return nil
}

// AssignFromGridSource pulls object-space positions from an external
// fine-grid source at the reshape level. The source must cover the same
// grids as the base mesh and be at least at the reshape level.
func (c *Context) AssignFromGridSource(src GridSource) error {
	if src == nil || src.NumGrids() != c.numGrids {
		return fmt.Errorf("%w: grid source does not match base mesh", ErrBadTopology)
	}
	if src.Level() < c.reshape.Level {
		return fmt.Errorf("%w: source level %d, reshape level %d",
			ErrSourceTooCoarse, src.Level(), c.reshape.Level)
	}

	r := c.reshape.GridSize
	srcSize := gridSizeForLevel(src.Level())
	step := (srcSize - 1) / (r - 1)

	parallel.For(c.numGrids, func(g int) {
		for y := 0; y < r; y++ {
			v := float64(y) / float64(r-1)
			for x := 0; x < r; x++ {
				u := float64(x) / float64(r-1)
				gc := GridCoord{GridIndex: g, U: u, V: v}
				c.assignPosition(gc, src.Position(g, x*step, y*step))
			}
		}
	})

	c.log.Debug("assigned displacement from grid source",
		zap.String("op", c.opID), zap.Int("source_level", src.Level()))
	return nil
}

// AssignFromStoredDisplacement marks the displacement currently held by the
// destination grids as the reshape-level source data. The stored values are
// already in tangent space, so no re-projection happens; the call exists so
// flows that re-propagate existing data (for example smoothing without an
// edit) go through the same state sequence as flows that assign new data.
func (c *Context) AssignFromStoredDisplacement() error {
	c.log.Debug("assigned displacement from stored grids", zap.String("op", c.opID))
	return nil
}

// AssignFromOrigDisplacement copies the original snapshot into the
// destination at the reshape level. Used by the subdivide flow, where the
// snapshot holds the pre-growth grids and the destination has been
// reallocated at a finer level.
func (c *Context) AssignFromOrigDisplacement() error {
	if c.orig == nil {
		return ErrNoOriginal
	}
	r := c.reshape.GridSize
	if c.orig.size < r {
		return fmt.Errorf("%w: original at level %d, reshape level %d",
			ErrSourceTooCoarse, c.orig.level, c.reshape.Level)
	}

	g := c.top.GridSize
	step := (g - 1) / (r - 1)
	origStep := (c.orig.size - 1) / (r - 1)

	parallel.For(c.numGrids, func(grid int) {
		displ := c.grids.Displacement(grid)
		mask := c.grids.Mask(grid)
		for y := 0; y < r; y++ {
			for x := 0; x < r; x++ {
				src := (y*origStep)*c.orig.size + x*origStep
				dst := (y*step)*g + x*step
				displ[dst] = c.orig.displ[grid][src]
				if mask != nil && c.orig.mask[grid] != nil {
					mask[dst] = c.orig.mask[grid][src]
				}
			}
		}
	})

	c.log.Debug("assigned displacement from original grids", zap.String("op", c.opID))
	return nil
}

// TangentDisplacementFromPositions re-projects per-grid object-space
// positions at the top level into tangent-space displacement against the
// current limit surface. positions must hold one full top-level grid per
// base grid.
func (c *Context) TangentDisplacementFromPositions(positions [][]mgl64.Vec3) error {
	g := c.top.GridSize
	if len(positions) != c.numGrids {
		return fmt.Errorf("%w: got %d grids, need %d", ErrCountMismatch, len(positions), c.numGrids)
	}
	for i := range positions {
		if len(positions[i]) != g*g {
			return fmt.Errorf("%w: grid %d has %d samples, need %d",
				ErrCountMismatch, i, len(positions[i]), g*g)
		}
	}

	parallel.For(c.numGrids, func(grid int) {
		for y := 0; y < g; y++ {
			v := float64(y) / float64(g-1)
			for x := 0; x < g; x++ {
				u := float64(x) / float64(g-1)
				gc := GridCoord{GridIndex: grid, U: u, V: v}
				c.assignPosition(gc, positions[grid][y*g+x])
			}
		}
	})
	return nil
}
