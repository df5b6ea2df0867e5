package subdiv

import "github.com/go-gl/mathgl/mgl64"

// PlaneEvaluator is the simplest possible limit surface: a single flat
// patch shared by every ptex face. Derivatives are constant and curvature
// is exactly zero, which makes it the reference surface for the
// zero-displacement tests.
type PlaneEvaluator struct {
	Origin mgl64.Vec3
	DPdu   mgl64.Vec3
	DPdv   mgl64.Vec3
}

// NewPlaneEvaluator returns a plane spanning axisU and axisV from origin.
func NewPlaneEvaluator(origin, axisU, axisV mgl64.Vec3) *PlaneEvaluator {
	return &PlaneEvaluator{Origin: origin, DPdu: axisU, DPdv: axisV}
}

func (e *PlaneEvaluator) Evaluate(ptexFace int, u, v float64) (p, dPdu, dPdv mgl64.Vec3) {
	p = e.Origin.Add(e.DPdu.Mul(u)).Add(e.DPdv.Mul(v))
	return p, e.DPdu, e.DPdv
}

func (e *PlaneEvaluator) Refine(coords []mgl64.Vec3) {}

func (e *PlaneEvaluator) Close() {}

// SphereEvaluator wraps another evaluator and projects its surface onto a
// sphere, with derivatives mapped through the projection by the chain rule.
// Wrapping a cube PatchEvaluator yields an exact analytic sphere, the
// classic curved test surface for tangent-frame checks.
type SphereEvaluator struct {
	Inner  Evaluator
	Center mgl64.Vec3
	Radius float64
}

// NewSphereEvaluator projects inner onto the sphere (center, radius).
func NewSphereEvaluator(inner Evaluator, center mgl64.Vec3, radius float64) *SphereEvaluator {
	return &SphereEvaluator{Inner: inner, Center: center, Radius: radius}
}

func (e *SphereEvaluator) Evaluate(ptexFace int, u, v float64) (p, dPdu, dPdv mgl64.Vec3) {
	q, du, dv := e.Inner.Evaluate(ptexFace, u, v)

	d := q.Sub(e.Center)
	n := d.Len()
	if n == 0 {
		// Degenerate: inner surface passes through the center.
		return e.Center, mgl64.Vec3{}, mgl64.Vec3{}
	}

	p = e.Center.Add(d.Mul(e.Radius / n))
	// d/dt (R * d/|d|) = R/|d| * (d' - d (d.d')/|d|^2)
	dPdu = du.Sub(d.Mul(d.Dot(du) / (n * n))).Mul(e.Radius / n)
	dPdv = dv.Sub(d.Mul(d.Dot(dv) / (n * n))).Mul(e.Radius / n)
	return p, dPdu, dPdv
}

func (e *SphereEvaluator) Refine(coords []mgl64.Vec3) { e.Inner.Refine(coords) }

func (e *SphereEvaluator) Close() { e.Inner.Close() }
