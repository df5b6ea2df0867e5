package multires

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// GridElement is a non-owning view into the destination buffers at one grid
// vertex. Writes go straight through to the backing mesh data; the view is
// valid for as long as the backing buffers are.
type GridElement struct {
	Displacement *mgl64.Vec3
	// Mask is nil when the destination carries no paint masks.
	Mask *float64
}

// ConstGridElement is an immutable snapshot of one grid vertex, used for
// original data that must not alias the destination.
type ConstGridElement struct {
	Displacement mgl64.Vec3
	Mask         float64
}

// gridElementIndex maps a normalized coordinate to the nearest sample of a
// grid with the given side length.
func gridElementIndex(u, v float64, gridSize int) int {
	x := int(math.Round(u * float64(gridSize-1)))
	y := int(math.Round(v * float64(gridSize-1)))
	return y*gridSize + x
}

// GridElementForGridCoord returns the destination element nearest to the
// grid coordinate, at the store's current (top) resolution.
func (c *Context) GridElementForGridCoord(gc GridCoord) GridElement {
	size := gridSizeForLevel(c.grids.Level())
	i := gridElementIndex(gc.U, gc.V, size)

	elem := GridElement{Displacement: &c.grids.Displacement(gc.GridIndex)[i]}
	if m := c.grids.Mask(gc.GridIndex); m != nil {
		elem.Mask = &m[i]
	}
	return elem
}

// GridElementForPTexCoord returns the destination element for a ptex
// coordinate.
func (c *Context) GridElementForPTexCoord(pc PTexCoord) GridElement {
	return c.GridElementForGridCoord(c.PTexCoordToGrid(pc))
}

// OrigGridElementForGridCoord returns the snapshotted original element
// nearest to the grid coordinate, or a zero element if no snapshot was
// stored.
func (c *Context) OrigGridElementForGridCoord(gc GridCoord) ConstGridElement {
	if c.orig == nil {
		return ConstGridElement{}
	}
	i := gridElementIndex(gc.U, gc.V, c.orig.size)
	elem := ConstGridElement{Displacement: c.orig.displ[gc.GridIndex][i]}
	if c.orig.mask[gc.GridIndex] != nil {
		elem.Mask = c.orig.mask[gc.GridIndex][i]
	}
	return elem
}
