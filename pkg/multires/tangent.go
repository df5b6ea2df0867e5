package multires

import "github.com/go-gl/mathgl/mgl64"

// TangentMatrixForCorner assembles the tangent-space basis at a face corner
// from the limit-surface derivatives at that point. Columns are the
// normalized grid-u tangent, grid-v tangent and their normalized cross
// product (the surface normal); multiplying the matrix by a tangent-space
// displacement yields the object-space offset, its inverse projects the
// other way.
//
// For quad faces the ptex derivatives are rotated into the corner's grid
// axes, so displacement stays grid-local no matter which quadrant the
// sample falls in. Degenerate derivatives (near-zero or parallel) produce a
// degenerate, possibly non-invertible matrix; callers must tolerate the
// resulting zero projections.
func (c *Context) TangentMatrixForCorner(face, corner int, dPdu, dPdv mgl64.Vec3) mgl64.Mat3 {
	tu, tv := dPdu, dPdv
	if c.IsQuadFace(face) {
		// Grid axes per quadrant, from the jacobian of the quadrant
		// fold in QuadGridUVToPTexUV.
		switch corner & 3 {
		case 1:
			tu, tv = dPdv, dPdu.Mul(-1)
		case 2:
			tu, tv = dPdu.Mul(-1), dPdv.Mul(-1)
		case 3:
			tu, tv = dPdv.Mul(-1), dPdu
		}
	}
	normal := tu.Cross(tv)
	return mgl64.Mat3FromCols(safeNormalize(tu), safeNormalize(tv), safeNormalize(normal))
}

// EvaluateLimitAtGrid samples the limit surface at a grid coordinate and
// returns the position together with the tangent matrix at that point. This
// is the single integration point combining coordinate conversion, the
// external evaluator and frame assembly.
func (c *Context) EvaluateLimitAtGrid(gc GridCoord) (mgl64.Vec3, mgl64.Mat3) {
	pc := c.GridCoordToPTex(gc)
	p, dPdu, dPdv := c.eval.Evaluate(pc.PTexFaceIndex, pc.U, pc.V)
	face := c.GridToFace(gc.GridIndex)
	corner := c.GridToCorner(gc.GridIndex)
	return p, c.TangentMatrixForCorner(face, corner, dPdu, dPdv)
}

func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}
