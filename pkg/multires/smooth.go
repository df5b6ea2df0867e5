package multires

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/multires/internal/parallel"
)

// bilerpVec samples a size×size grid of vectors at normalized (u, v) with
// bilinear interpolation.
func bilerpVec(data []mgl64.Vec3, size int, u, v float64) mgl64.Vec3 {
	f := float64(size - 1)
	fx, fy := u*f, v*f
	x0, y0 := int(fx), int(fy)
	if x0 > size-2 {
		x0 = size - 2
	}
	if y0 > size-2 {
		y0 = size - 2
	}
	tx, ty := fx-float64(x0), fy-float64(y0)

	r0 := data[y0*size+x0].Mul(1 - tx).Add(data[y0*size+x0+1].Mul(tx))
	r1 := data[(y0+1)*size+x0].Mul(1 - tx).Add(data[(y0+1)*size+x0+1].Mul(tx))
	return r0.Mul(1 - ty).Add(r1.Mul(ty))
}

func bilerpScalar(data []float64, size int, u, v float64) float64 {
	f := float64(size - 1)
	fx, fy := u*f, v*f
	x0, y0 := int(fx), int(fy)
	if x0 > size-2 {
		x0 = size - 2
	}
	if y0 > size-2 {
		y0 = size - 2
	}
	tx, ty := fx-float64(x0), fy-float64(y0)

	r0 := data[y0*size+x0]*(1-tx) + data[y0*size+x0+1]*tx
	r1 := data[(y0+1)*size+x0]*(1-tx) + data[(y0+1)*size+x0+1]*tx
	return r0*(1-ty) + r1*ty
}

// restrictVec picks every step-th sample of a src-sized grid into an
// r-sized coarse grid.
func restrictVec(data []mgl64.Vec3, srcSize, r int) []mgl64.Vec3 {
	step := (srcSize - 1) / (r - 1)
	out := make([]mgl64.Vec3, r*r)
	for y := 0; y < r; y++ {
		for x := 0; x < r; x++ {
			out[y*r+x] = data[(y*step)*srcSize+x*step]
		}
	}
	return out
}

func restrictScalar(data []float64, srcSize, r int) []float64 {
	step := (srcSize - 1) / (r - 1)
	out := make([]float64, r*r)
	for y := 0; y < r; y++ {
		for x := 0; x < r; x++ {
			out[y*r+x] = data[(y*step)*srcSize+x*step]
		}
	}
	return out
}

// SmoothGrids propagates the reshape-level displacement to every top-level
// sample by bilinear interpolation, discarding whatever finer detail the
// grids held. Reshape-level samples are kept exactly, so running this on
// unchanged data leaves the reshape level untouched.
func (c *Context) SmoothGrids() {
	c.smoothGrids(false)
	c.log.Debug("smoothed grids", zap.String("op", c.opID))
}

// SmoothWithDetails propagates the reshape-level displacement to the top
// level while re-applying the high-frequency detail captured by the
// original snapshot: each top-level sample gets the interpolated new
// coarse displacement plus the original sample's deviation from the
// interpolated original coarse displacement. If the reshape-level data is
// unchanged since the snapshot, every sample comes out unchanged.
func (c *Context) SmoothWithDetails() error {
	if c.orig == nil {
		return ErrNoOriginal
	}
	c.smoothGrids(true)
	c.log.Debug("smoothed grids with details", zap.String("op", c.opID))
	return nil
}

func (c *Context) smoothGrids(withDetails bool) {
	r := c.reshape.GridSize
	g := c.top.GridSize

	parallel.For(c.numGrids, func(grid int) {
		displ := c.grids.Displacement(grid)
		mask := c.grids.Mask(grid)

		coarseD := restrictVec(displ, g, r)
		var coarseM []float64
		if mask != nil {
			coarseM = restrictScalar(mask, g, r)
		}

		var origD, origCoarseD []mgl64.Vec3
		var origM, origCoarseM []float64
		var origSize int
		if withDetails {
			origSize = c.orig.size
			origD = c.orig.displ[grid]
			origCoarseD = restrictVec(origD, origSize, r)
			if mask != nil && c.orig.mask[grid] != nil {
				origM = c.orig.mask[grid]
				origCoarseM = restrictScalar(origM, origSize, r)
			}
		}

		for y := 0; y < g; y++ {
			v := float64(y) / float64(g-1)
			for x := 0; x < g; x++ {
				u := float64(x) / float64(g-1)
				d := bilerpVec(coarseD, r, u, v)
				if withDetails {
					dOrig := bilerpVec(origD, origSize, u, v)
					dOrigCoarse := bilerpVec(origCoarseD, r, u, v)
					d = d.Add(dOrig).Sub(dOrigCoarse)
				}
				displ[y*g+x] = d

				if mask != nil {
					m := bilerpScalar(coarseM, r, u, v)
					if origM != nil {
						m += bilerpScalar(origM, origSize, u, v) - bilerpScalar(origCoarseM, r, u, v)
					}
					mask[y*g+x] = m
				}
			}
		}
	})
}
