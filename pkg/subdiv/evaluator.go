// Package subdiv defines the limit-surface evaluator capability consumed by
// the reshape engine, together with analytic evaluators that stand in for a
// full subdivision-surface implementation. The evaluators here are exact on
// their respective shapes, which makes them usable both as lightweight test
// doubles and as backends for the gridprobe tool.
package subdiv

import "github.com/go-gl/mathgl/mgl64"

// Topology is the minimal read-only view of a base mesh an evaluator needs.
type Topology interface {
	FaceCount() int
	CornerCount(face int) int
	FaceVertex(face, corner int) int
}

// Evaluator samples a limit surface in the ptex parameter domain.
//
// Evaluate must be safe for concurrent calls for a fixed base-mesh state.
// Refine and Close must not be called concurrently with Evaluate.
type Evaluator interface {
	// Evaluate returns the limit position and the partial derivatives of
	// position with respect to the ptex (u, v) parameters.
	Evaluate(ptexFace int, u, v float64) (p, dPdu, dPdv mgl64.Vec3)

	// Refine re-fits the evaluator to new base-mesh vertex coordinates so
	// that subsequent Evaluate calls reflect the edited base shape.
	Refine(coords []mgl64.Vec3)

	// Close releases evaluator resources. Further calls are undefined.
	Close()
}

// PTexFaceCount returns the number of ptex faces the given topology
// produces: one per quad face, one per corner for every other face.
func PTexFaceCount(topo Topology) int {
	n := 0
	for f := 0; f < topo.FaceCount(); f++ {
		if c := topo.CornerCount(f); c == 4 {
			n++
		} else {
			n += c
		}
	}
	return n
}
