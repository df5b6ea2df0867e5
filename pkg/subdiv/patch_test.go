package subdiv

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/multires/pkg/mesh"
)

const eps = 1e-9

func TestPTexFaceCount(t *testing.T) {
	assert.Equal(t, 1, PTexFaceCount(mesh.Quad(1)))
	assert.Equal(t, 3, PTexFaceCount(mesh.Triangle(1)))
	assert.Equal(t, 6, PTexFaceCount(mesh.Cube(1)))
}

func TestPatchQuadCorners(t *testing.T) {
	m := mesh.Quad(2)
	e := NewPatchEvaluator(m, m.Coords)
	require.Equal(t, 1, e.PTexFaceCount())

	// Ptex corners land exactly on the base vertices.
	uv := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for c, p := range uv {
		got, _, _ := e.Evaluate(0, p[0], p[1])
		assert.InDeltaf(t, 0, got.Sub(m.Coords[c]).Len(), eps, "corner %d", c)
	}

	// Center of the ptex square is the face center.
	center, _, _ := e.Evaluate(0, 0.5, 0.5)
	assert.InDelta(t, 0, center.Sub(m.FaceCenter(0)).Len(), eps)
}

func TestPatchTriangleSubQuads(t *testing.T) {
	m := mesh.Triangle(1)
	e := NewPatchEvaluator(m, m.Coords)
	require.Equal(t, 3, e.PTexFaceCount())

	for c := 0; c < 3; c++ {
		// Ptex (0,0) of each sub-quad sits on its corner vertex.
		p, _, _ := e.Evaluate(c, 0, 0)
		assert.InDeltaf(t, 0, p.Sub(m.Coords[c]).Len(), eps, "corner %d origin", c)

		// Ptex (1,1) of every sub-quad is the shared face center.
		p, _, _ = e.Evaluate(c, 1, 1)
		assert.InDeltaf(t, 0, p.Sub(m.FaceCenter(0)).Len(), eps, "corner %d center", c)
	}

	// Adjacent sub-quads agree along their shared edge midpoint.
	a, _, _ := e.Evaluate(0, 1, 0) // corner 0, toward corner 1
	b, _, _ := e.Evaluate(1, 0, 1) // corner 1, toward corner 0
	assert.InDelta(t, 0, a.Sub(b).Len(), eps)
}

func TestPatchDerivativesMatchFiniteDifference(t *testing.T) {
	m := mesh.Cube(2)
	e := NewPatchEvaluator(m, m.Coords)

	const h = 1e-6
	for pf := 0; pf < e.PTexFaceCount(); pf++ {
		u, v := 0.3, 0.7
		_, du, dv := e.Evaluate(pf, u, v)

		p0, _, _ := e.Evaluate(pf, u-h, v)
		p1, _, _ := e.Evaluate(pf, u+h, v)
		fd := p1.Sub(p0).Mul(1 / (2 * h))
		assert.InDeltaf(t, 0, fd.Sub(du).Len(), 1e-5, "dPdu ptex %d", pf)

		p0, _, _ = e.Evaluate(pf, u, v-h)
		p1, _, _ = e.Evaluate(pf, u, v+h)
		fd = p1.Sub(p0).Mul(1 / (2 * h))
		assert.InDeltaf(t, 0, fd.Sub(dv).Len(), 1e-5, "dPdv ptex %d", pf)
	}
}

func TestPatchRefine(t *testing.T) {
	m := mesh.Quad(1)
	e := NewPatchEvaluator(m, m.Coords)

	shift := mgl64.Vec3{0, 0, 3}
	moved := make([]mgl64.Vec3, len(m.Coords))
	for i, c := range m.Coords {
		moved[i] = c.Add(shift)
	}
	e.Refine(moved)

	p, _, _ := e.Evaluate(0, 0.25, 0.75)
	assert.InDelta(t, 3, p.Z(), eps)
	assert.False(t, e.Closed())
	e.Close()
	assert.True(t, e.Closed())
}

func TestSphereEvaluator(t *testing.T) {
	m := mesh.Cube(2)
	inner := NewPatchEvaluator(m, m.Coords)
	sphere := NewSphereEvaluator(inner, mgl64.Vec3{}, 1.5)

	for pf := 0; pf < inner.PTexFaceCount(); pf++ {
		for _, uv := range [][2]float64{{0.1, 0.1}, {0.5, 0.5}, {0.9, 0.3}} {
			p, du, dv := sphere.Evaluate(pf, uv[0], uv[1])

			assert.InDeltaf(t, 1.5, p.Len(), eps, "radius at ptex %d uv %v", pf, uv)

			// Derivatives are tangent to the sphere.
			radial := p.Normalize()
			assert.InDeltaf(t, 0, radial.Dot(du), 1e-9, "dPdu radial at ptex %d", pf)
			assert.InDeltaf(t, 0, radial.Dot(dv), 1e-9, "dPdv radial at ptex %d", pf)
			assert.Greater(t, du.Len(), 0.0)
			assert.Greater(t, dv.Len(), 0.0)
		}
	}

	if math.IsNaN(sphere.Radius) {
		t.Fatal("unexpected NaN radius")
	}
}
