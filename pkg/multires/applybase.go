package multires

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/multires/internal/parallel"
)

// FinalPositions evaluates every top-level grid sample to object space:
// limit surface position plus tangent-frame-rotated displacement. One full
// top-level grid is returned per base grid.
func (c *Context) FinalPositions() [][]mgl64.Vec3 {
	g := c.top.GridSize
	out := make([][]mgl64.Vec3, c.numGrids)

	parallel.For(c.numGrids, func(grid int) {
		displ := c.grids.Displacement(grid)
		positions := make([]mgl64.Vec3, g*g)
		for y := 0; y < g; y++ {
			v := float64(y) / float64(g-1)
			for x := 0; x < g; x++ {
				u := float64(x) / float64(g-1)
				p, tm := c.EvaluateLimitAtGrid(GridCoord{GridIndex: grid, U: u, V: v})
				positions[y*g+x] = p.Add(tm.Mul3x1(displ[y*g+x]))
			}
		}
		out[grid] = positions
	})
	return out
}

// baseVertexOffsets computes, per base vertex, the average object-space
// displacement stored at the grid origins of its incident face corners.
// The grid origin sits on the vertex's limit position, so this is the
// offset between where the surface is and where it should be.
func (c *Context) baseVertexOffsets() []mgl64.Vec3 {
	offsets := make([]mgl64.Vec3, c.topo.VertexCount())
	counts := make([]int, c.topo.VertexCount())

	for f := 0; f < c.topo.FaceCount(); f++ {
		n := c.topo.CornerCount(f)
		for corner := 0; corner < n; corner++ {
			grid := c.faceFirstGrid[f] + corner
			gc := GridCoord{GridIndex: grid, U: 0, V: 0}
			_, tm := c.EvaluateLimitAtGrid(gc)
			d := *c.GridElementForGridCoord(gc).Displacement

			vert := c.topo.FaceVertex(f, corner)
			offsets[vert] = offsets[vert].Add(tm.Mul3x1(d))
			counts[vert]++
		}
	}
	for v := range offsets {
		if counts[v] > 0 {
			offsets[v] = offsets[v].Mul(1 / float64(counts[v]))
		}
	}
	return offsets
}

// RefitBaseMesh moves every base vertex by the average stored
// displacement of its corner grids, an approximate inverse of
// subdivision: after refitting and re-refining, the limit surface passes
// close to where the displaced surface was. The subdivision evaluator is
// not refreshed; call RefineSubdiv afterwards.
func (c *Context) RefitBaseMesh() error {
	offsets := c.baseVertexOffsets()
	coords := c.topo.VertexCoords()
	if len(coords) != len(offsets) {
		return fmt.Errorf("%w: mesh has %d coords for %d vertices",
			ErrBadTopology, len(coords), len(offsets))
	}
	for v := range coords {
		coords[v] = coords[v].Add(offsets[v])
	}
	c.log.Debug("base mesh refitted", zap.String("op", c.opID), zap.Int("vertices", len(coords)))
	return nil
}

// RefineSubdiv pushes the base mesh's current coordinates into the
// subdivision evaluator, so subsequent limit evaluations see the edited
// base.
func (c *Context) RefineSubdiv() {
	c.eval.Refine(c.topo.VertexCoords())
}

// UpdateMeshCoords writes the final object-space position stored at each
// vertex's grid origins straight onto the base mesh, skipping the refit
// solve. Used when the edit lives at the base level and the stored
// displacement already encodes the wanted vertex positions. The evaluator
// is refreshed afterwards.
func (c *Context) UpdateMeshCoords() {
	coords := c.topo.VertexCoords()
	sums := make([]mgl64.Vec3, len(coords))
	counts := make([]int, len(coords))

	for f := 0; f < c.topo.FaceCount(); f++ {
		n := c.topo.CornerCount(f)
		for corner := 0; corner < n; corner++ {
			gc := GridCoord{GridIndex: c.faceFirstGrid[f] + corner}
			p, tm := c.EvaluateLimitAtGrid(gc)
			d := *c.GridElementForGridCoord(gc).Displacement

			vert := c.topo.FaceVertex(f, corner)
			sums[vert] = sums[vert].Add(p.Add(tm.Mul3x1(d)))
			counts[vert]++
		}
	}
	for v := range coords {
		if counts[v] > 0 {
			coords[v] = sums[v].Mul(1 / float64(counts[v]))
		}
	}
	c.RefineSubdiv()
	c.log.Debug("base mesh coordinates updated", zap.String("op", c.opID))
}

// ApplyBase bakes the stored displacement into the base mesh: the final
// object-space surface is captured, the base vertices are refitted toward
// it, the evaluator is re-refined around the new base, and the
// displacement grids are rebuilt against the new limit surface so the
// final surface stays where it was.
func (c *Context) ApplyBase() error {
	targets := c.FinalPositions()
	if err := c.RefitBaseMesh(); err != nil {
		return err
	}
	c.RefineSubdiv()
	if err := c.TangentDisplacementFromPositions(targets); err != nil {
		return err
	}
	c.log.Info("displacement applied to base mesh", zap.String("op", c.opID))
	return nil
}
