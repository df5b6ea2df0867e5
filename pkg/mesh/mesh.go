// Package mesh provides base-mesh topology and multiresolution grid storage.
//
// A Mesh is the coarse control cage: vertex coordinates plus faces given as
// lists of vertex indices. It is deliberately minimal; edited vertex data,
// modifier stacks and file formats live elsewhere.
package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a polygonal base mesh. Faces reference vertices by index and may
// mix quads with other polygon sizes. Coords is the live vertex buffer;
// callers that reshape the base mesh mutate it in place.
type Mesh struct {
	Coords []mgl64.Vec3
	Faces  [][]int
}

// New builds a mesh and validates face/vertex consistency.
func New(coords []mgl64.Vec3, faces [][]int) (*Mesh, error) {
	m := &Mesh{Coords: coords, Faces: faces}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that every face has at least 3 corners and references
// only existing vertices.
func (m *Mesh) Validate() error {
	for fi, face := range m.Faces {
		if len(face) < 3 {
			return fmt.Errorf("face %d has %d corners, need at least 3", fi, len(face))
		}
		for ci, v := range face {
			if v < 0 || v >= len(m.Coords) {
				return fmt.Errorf("face %d corner %d references vertex %d of %d", fi, ci, v, len(m.Coords))
			}
		}
	}
	return nil
}

// VertexCount returns the number of base vertices.
func (m *Mesh) VertexCount() int { return len(m.Coords) }

// FaceCount returns the number of base faces.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// CornerCount returns the number of corners of the given face.
func (m *Mesh) CornerCount(face int) int { return len(m.Faces[face]) }

// FaceVertex returns the vertex index at the given face corner.
func (m *Mesh) FaceVertex(face, corner int) int { return m.Faces[face][corner] }

// VertexCoords returns the live vertex coordinate buffer. Mutations write
// through to the mesh.
func (m *Mesh) VertexCoords() []mgl64.Vec3 { return m.Coords }

// FaceCenter returns the average of a face's corner positions.
func (m *Mesh) FaceCenter(face int) mgl64.Vec3 {
	var c mgl64.Vec3
	for _, v := range m.Faces[face] {
		c = c.Add(m.Coords[v])
	}
	return c.Mul(1.0 / float64(len(m.Faces[face])))
}

// EdgeMidpoint returns the midpoint of the face edge starting at the given
// corner (from corner to the next corner, wrapping around).
func (m *Mesh) EdgeMidpoint(face, corner int) mgl64.Vec3 {
	n := len(m.Faces[face])
	a := m.Coords[m.Faces[face][corner]]
	b := m.Coords[m.Faces[face][(corner+1)%n]]
	return a.Add(b).Mul(0.5)
}
