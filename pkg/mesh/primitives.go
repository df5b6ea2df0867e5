package mesh

import "github.com/go-gl/mathgl/mgl64"

// Primitive builders used by tests and the gridprobe tool.

// Quad returns a single planar quad face in the XY plane, side length size,
// corner 0 at the origin.
func Quad(size float64) *Mesh {
	return &Mesh{
		Coords: []mgl64.Vec3{
			{0, 0, 0},
			{size, 0, 0},
			{size, size, 0},
			{0, size, 0},
		},
		Faces: [][]int{{0, 1, 2, 3}},
	}
}

// Triangle returns a single triangle face in the XY plane.
func Triangle(size float64) *Mesh {
	return &Mesh{
		Coords: []mgl64.Vec3{
			{0, 0, 0},
			{size, 0, 0},
			{0.5 * size, size, 0},
		},
		Faces: [][]int{{0, 1, 2}},
	}
}

// Cube returns an axis-aligned cube of six quad faces centered at the
// origin, with outward-facing winding.
func Cube(size float64) *Mesh {
	h := size * 0.5
	return &Mesh{
		Coords: []mgl64.Vec3{
			{-h, -h, -h},
			{h, -h, -h},
			{h, h, -h},
			{-h, h, -h},
			{-h, -h, h},
			{h, -h, h},
			{h, h, h},
			{-h, h, h},
		},
		Faces: [][]int{
			{3, 2, 1, 0}, // -Z
			{4, 5, 6, 7}, // +Z
			{0, 1, 5, 4}, // -Y
			{2, 3, 7, 6}, // +Y
			{1, 2, 6, 5}, // +X
			{3, 0, 4, 7}, // -X
		},
	}
}
