package multires

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/multires/pkg/mesh"
	"github.com/Faultbox/multires/pkg/subdiv"
)

const eps = 1e-9

func cornerTotal(m *mesh.Mesh) int {
	n := 0
	for f := 0; f < m.FaceCount(); f++ {
		n += m.CornerCount(f)
	}
	return n
}

// buildContext sets up a context over m with a bilinear patch evaluator and
// a fresh grid store at the top level.
func buildContext(t *testing.T, m *mesh.Mesh, reshape, top int, withMask bool) (*Context, *mesh.GridSet, *subdiv.PatchEvaluator) {
	t.Helper()
	eval := subdiv.NewPatchEvaluator(m, m.Coords)
	grids := mesh.NewGridSet(cornerTotal(m), top, withMask)
	ctx, err := NewContext(m, grids, eval, Settings{Level: reshape, TopLevel: top})
	require.NoError(t, err)
	t.Cleanup(ctx.Close)
	return ctx, grids, eval
}

// limitPositions evaluates the limit surface over the reshape-level vertex
// lattice, in the order AssignFromVertexPositions consumes, optionally
// offset by a constant vector.
func limitPositions(c *Context, eval subdiv.Evaluator, offset mgl64.Vec3) []mgl64.Vec3 {
	offsets, total := c.ptexLatticeOffsets()
	out := make([]mgl64.Vec3, total)
	for pf := range offsets {
		size := c.ptexLatticeSize(pf)
		for y := 0; y < size; y++ {
			v := float64(y) / float64(size-1)
			for x := 0; x < size; x++ {
				u := float64(x) / float64(size-1)
				p, _, _ := eval.Evaluate(pf, u, v)
				out[offsets[pf]+y*size+x] = p.Add(offset)
			}
		}
	}
	return out
}

// sliceGridSource serves positions from in-memory grids, standing in for a
// live sculpt session.
type sliceGridSource struct {
	level int
	grids [][]mgl64.Vec3
}

func (s *sliceGridSource) Level() int    { return s.level }
func (s *sliceGridSource) NumGrids() int { return len(s.grids) }

func (s *sliceGridSource) Position(grid, x, y int) mgl64.Vec3 {
	size := mesh.GridSizeForLevel(s.level)
	return s.grids[grid][y*size+x]
}
