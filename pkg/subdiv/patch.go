package subdiv

import "github.com/go-gl/mathgl/mgl64"

// PatchEvaluator evaluates a bilinear patch per ptex face over the base
// mesh. Quad faces map their ptex square onto the four corner vertices;
// every other face gets one ptex sub-quad per corner spanning the corner
// vertex, the midpoints of its two edges and the face center. The surface
// is therefore the base mesh itself, which makes the evaluator exact for
// flat geometry and a convenient backend for tools and tests.
type PatchEvaluator struct {
	topo   Topology
	coords []mgl64.Vec3

	// ptexFace -> (face, corner). For quad faces corner is 0 and unused.
	faceOf   []int
	cornerOf []int
	closed   bool
}

// NewPatchEvaluator builds an evaluator over the topology and the given
// vertex coordinates. The coordinates are copied; call Refine to track base
// mesh edits.
func NewPatchEvaluator(topo Topology, coords []mgl64.Vec3) *PatchEvaluator {
	e := &PatchEvaluator{
		topo:   topo,
		coords: append([]mgl64.Vec3(nil), coords...),
	}
	for f := 0; f < topo.FaceCount(); f++ {
		if n := topo.CornerCount(f); n == 4 {
			e.faceOf = append(e.faceOf, f)
			e.cornerOf = append(e.cornerOf, 0)
		} else {
			for c := 0; c < n; c++ {
				e.faceOf = append(e.faceOf, f)
				e.cornerOf = append(e.cornerOf, c)
			}
		}
	}
	return e
}

// PTexFaceCount returns the number of ptex faces the evaluator covers.
func (e *PatchEvaluator) PTexFaceCount() int { return len(e.faceOf) }

// Evaluate returns the bilinear patch position and derivatives at the given
// ptex coordinate.
func (e *PatchEvaluator) Evaluate(ptexFace int, u, v float64) (p, dPdu, dPdv mgl64.Vec3) {
	face := e.faceOf[ptexFace]
	q0, q1, q2, q3 := e.patchCorners(face, e.cornerOf[ptexFace])

	// P(u,v) = (1-u)(1-v) q0 + u(1-v) q1 + uv q2 + (1-u)v q3
	p = q0.Mul((1 - u) * (1 - v)).
		Add(q1.Mul(u * (1 - v))).
		Add(q2.Mul(u * v)).
		Add(q3.Mul((1 - u) * v))
	dPdu = q1.Sub(q0).Mul(1 - v).Add(q2.Sub(q3).Mul(v))
	dPdv = q3.Sub(q0).Mul(1 - u).Add(q2.Sub(q1).Mul(u))
	return p, dPdu, dPdv
}

// patchCorners returns the ptex patch corners in ptex order: (0,0), (1,0),
// (1,1), (0,1).
func (e *PatchEvaluator) patchCorners(face, corner int) (q0, q1, q2, q3 mgl64.Vec3) {
	n := e.topo.CornerCount(face)
	if n == 4 {
		return e.coords[e.topo.FaceVertex(face, 0)],
			e.coords[e.topo.FaceVertex(face, 1)],
			e.coords[e.topo.FaceVertex(face, 2)],
			e.coords[e.topo.FaceVertex(face, 3)]
	}

	// Sub-quad for one corner of an n-gon: corner vertex, next-edge
	// midpoint, face center, previous-edge midpoint.
	cur := e.coords[e.topo.FaceVertex(face, corner)]
	next := e.coords[e.topo.FaceVertex(face, (corner+1)%n)]
	prev := e.coords[e.topo.FaceVertex(face, (corner+n-1)%n)]
	var center mgl64.Vec3
	for c := 0; c < n; c++ {
		center = center.Add(e.coords[e.topo.FaceVertex(face, c)])
	}
	center = center.Mul(1.0 / float64(n))

	return cur, cur.Add(next).Mul(0.5), center, cur.Add(prev).Mul(0.5)
}

// Refine replaces the vertex coordinates the patches are built from.
func (e *PatchEvaluator) Refine(coords []mgl64.Vec3) {
	e.coords = append(e.coords[:0], coords...)
}

// Close releases the evaluator. Closed reports whether it was called, which
// lets ownership tests observe teardown.
func (e *PatchEvaluator) Close() { e.closed = true }

// Closed reports whether Close has been called.
func (e *PatchEvaluator) Closed() bool { return e.closed }
