package multires

// GridCoord identifies a point within one grid's local parameterization.
// Sample (0,0) sits on the base vertex of the grid's corner, (1,1) on the
// face center.
type GridCoord struct {
	GridIndex int
	U, V      float64
}

// PTexCoord identifies a point on a ptex face, the canonical domain the
// limit-surface evaluator operates on.
type PTexCoord struct {
	PTexFaceIndex int
	U, V          float64
}

// GridToFace returns the base face the grid was created for.
func (c *Context) GridToFace(grid int) int {
	return c.gridToFace[grid]
}

// GridToCorner returns the face corner the grid was created for.
func (c *Context) GridToCorner(grid int) int {
	return grid - c.faceFirstGrid[c.gridToFace[grid]]
}

// IsQuadFace reports whether the face has exactly 4 corners.
func (c *Context) IsQuadFace(face int) bool {
	return c.topo.CornerCount(face) == 4
}

// GridToPTexIndex returns the ptex face of a grid. All 4 grids of a quad
// face share one ptex face; every other corner has its own.
func (c *Context) GridToPTexIndex(grid int) int {
	face := c.gridToFace[grid]
	if c.IsQuadFace(face) {
		return c.facePTexOffset[face]
	}
	return c.facePTexOffset[face] + c.GridToCorner(grid)
}

// GridCoordToPTex converts a normalized grid coordinate to a normalized
// ptex coordinate. For quad faces the grid's square is folded into the
// quadrant of the shared ptex face that contains its corner; for every
// other face the mapping is the identity onto the corner's dedicated ptex
// face.
func (c *Context) GridCoordToPTex(gc GridCoord) PTexCoord {
	face := c.gridToFace[gc.GridIndex]
	ptex := c.GridToPTexIndex(gc.GridIndex)
	if !c.IsQuadFace(face) {
		return PTexCoord{PTexFaceIndex: ptex, U: gc.U, V: gc.V}
	}
	u, v := QuadGridUVToPTexUV(c.GridToCorner(gc.GridIndex), gc.U, gc.V)
	return PTexCoord{PTexFaceIndex: ptex, U: u, V: v}
}

// PTexCoordToGrid is the exact inverse of GridCoordToPTex. Points on the
// seams between quadrants resolve to one deterministic owning corner; the
// returned coordinate still denotes the same surface point.
func (c *Context) PTexCoordToGrid(pc PTexCoord) GridCoord {
	firstGrid := c.ptexFirstGrid[pc.PTexFaceIndex]
	face := c.gridToFace[firstGrid]
	if !c.IsQuadFace(face) {
		return GridCoord{GridIndex: firstGrid, U: pc.U, V: pc.V}
	}
	corner, u, v := PTexUVToQuadGridUV(pc.U, pc.V)
	return GridCoord{GridIndex: firstGrid + corner, U: u, V: v}
}

// QuadGridUVToPTexUV folds a grid-local coordinate of the given quad corner
// into the shared ptex square. Ptex corners 0..3 sit at (0,0), (1,0),
// (1,1), (0,1); within each quadrant the grid u axis runs along the face
// edge toward the next corner and the v axis toward the previous corner,
// so all four grids meet continuously at the ptex center (1/2, 1/2).
func QuadGridUVToPTexUV(corner int, u, v float64) (ptexU, ptexV float64) {
	switch corner & 3 {
	case 0:
		return 0.5 * u, 0.5 * v
	case 1:
		return 1 - 0.5*v, 0.5 * u
	case 2:
		return 1 - 0.5*u, 1 - 0.5*v
	default:
		return 0.5 * v, 1 - 0.5*u
	}
}

// PTexUVToQuadGridUV classifies a ptex coordinate into its quadrant and
// returns the owning corner with the grid-local coordinate. Inverse of
// QuadGridUVToPTexUV for interior points; seam points resolve to one
// deterministic owning corner.
func PTexUVToQuadGridUV(u, v float64) (corner int, gridU, gridV float64) {
	switch {
	case u <= 0.5 && v <= 0.5:
		return 0, 2 * u, 2 * v
	case u > 0.5 && v <= 0.5:
		return 1, 2 * v, 2 * (1 - u)
	case u > 0.5 && v > 0.5:
		return 2, 2 * (1 - u), 2 * (1 - v)
	default:
		return 3, 2 * (1 - v), 2 * u
	}
}
