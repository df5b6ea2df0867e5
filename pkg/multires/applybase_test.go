package multires

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/multires/pkg/mesh"
)

func TestFinalPositionsWithoutDisplacement(t *testing.T) {
	ctx, _, _ := buildContext(t, mesh.Quad(2), 2, 2, false)

	positions := ctx.FinalPositions()
	require.Len(t, positions, ctx.NumGrids())

	size := ctx.Top().GridSize
	for g := range positions {
		require.Len(t, positions[g], size*size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				gc := GridCoord{
					GridIndex: g,
					U:         float64(x) / float64(size-1),
					V:         float64(y) / float64(size-1),
				}
				limit, _ := ctx.EvaluateLimitAtGrid(gc)
				assert.InDelta(t, 0, positions[g][y*size+x].Sub(limit).Len(), eps)
			}
		}
	}
}

func TestFinalPositionsAddDisplacement(t *testing.T) {
	ctx, grids, _ := buildContext(t, mesh.Quad(2), 2, 2, false)

	const h = 0.75
	for g := 0; g < grids.NumGrids(); g++ {
		displ := grids.Displacement(g)
		for i := range displ {
			displ[i] = mgl64.Vec3{0, 0, h}
		}
	}

	// The quad's tangent normal is +Z, so every final position floats h
	// above the plane.
	for _, grid := range ctx.FinalPositions() {
		for _, p := range grid {
			assert.InDelta(t, h, p.Z(), eps)
		}
	}
}

func TestUpdateMeshCoords(t *testing.T) {
	// Grid-origin displacement becomes the vertex position directly, no
	// refit solve involved.
	m := mesh.Quad(1)
	before := append([]mgl64.Vec3(nil), m.Coords...)
	ctx, grids, eval := buildContext(t, m, 1, 1, false)

	for g := 0; g < grids.NumGrids(); g++ {
		grids.Displacement(g)[0] = mgl64.Vec3{0, 0, 3}
	}
	ctx.UpdateMeshCoords()

	for i, c := range m.Coords {
		want := before[i].Add(mgl64.Vec3{0, 0, 3})
		assert.InDeltaf(t, 0, c.Sub(want).Len(), eps, "vertex %d", i)
	}

	// The evaluator saw the new base.
	p, _, _ := eval.Evaluate(0, 0, 0)
	assert.InDelta(t, 3, p.Z(), eps)
}

func TestApplyBaseTranslatedSurface(t *testing.T) {
	// Reshape the whole surface by a rigid translation, then bake it into
	// the base: the base mesh absorbs the translation and the stored
	// displacement collapses to zero, leaving the surface where it was.
	m := mesh.Quad(2)
	ctx, grids, eval := buildContext(t, m, 2, 2, false)

	shift := mgl64.Vec3{0.5, -0.25, 1}
	require.NoError(t, ctx.AssignFromVertexPositions(limitPositions(ctx, eval, shift)))

	wantCoords := make([]mgl64.Vec3, len(m.Coords))
	for i, c := range m.Coords {
		wantCoords[i] = c.Add(shift)
	}
	wantFinal := ctx.FinalPositions()

	require.NoError(t, ctx.ApplyBase())

	for i, c := range m.Coords {
		assert.InDeltaf(t, 0, c.Sub(wantCoords[i]).Len(), eps, "vertex %d", i)
	}
	for g := 0; g < grids.NumGrids(); g++ {
		for i, d := range grids.Displacement(g) {
			assert.InDeltaf(t, 0, d.Len(), eps, "grid %d sample %d", g, i)
		}
	}

	// The displaced surface itself did not move.
	gotFinal := ctx.FinalPositions()
	for g := range wantFinal {
		for i := range wantFinal[g] {
			assert.InDelta(t, 0, gotFinal[g][i].Sub(wantFinal[g][i]).Len(), eps)
		}
	}
}

func TestRefitBaseMeshUsesCornerSamples(t *testing.T) {
	// Only the grid-origin samples drive the refit; each base vertex moves
	// by the average over its incident corners.
	m := mesh.Quad(1)
	ctx, grids, _ := buildContext(t, m, 1, 1, false)

	// Vertex 0 is corner 0 of the only face, grid 0.
	grids.Displacement(0)[0] = mgl64.Vec3{0, 0, 2}
	before := m.Coords[1]

	require.NoError(t, ctx.RefitBaseMesh())
	assert.InDelta(t, 2, m.Coords[0].Z(), eps)
	assert.InDelta(t, 0, m.Coords[1].Sub(before).Len(), eps)
}
