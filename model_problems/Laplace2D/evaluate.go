package Laplace2D

import (
	"fmt"

	"github.com/notargets/laplace2d/geometry2D"
	"github.com/notargets/laplace2d/mesh"
	"gonum.org/v1/gonum/spatial/r2"
)

// StabilityRadius bounds the distance from the centre of the square at which Jstar is evaluated
const StabilityRadius = 0.25

// Result of a stable point evaluation
type Result struct {
	Value    float64
	Point    r2.Vec
	Distance float64 // from the centre of the square
	Cells    int
}

func (r Result) String() string {
	return fmt.Sprintf("u*(%g, %g) = %.15g [%d cells, distance %.4f from the centre]",
		r.Point.X, r.Point.Y, r.Value, r.Cells, r.Distance)
}

// InStabilityRegion reports whether x is close enough to the centre for StabPointEval, false for non-finite points
func InStabilityRegion(x r2.Vec) bool {
	return geometry2D.DistanceFromCenter(x) <= StabilityRadius
}

/*
StabPointEval evaluates u at x through Jstar. Points farther than StabilityRadius from the centre of the square are
refused with an *EvaluationError wrapping ErrOutOfStabilityRegion, so a failure is never mistaken for a value.
*/
func StabPointEval(m *mesh.Mesh, u ScalarField, x r2.Vec) (res Result, err error) {
	var (
		dist = geometry2D.DistanceFromCenter(x)
	)
	if !InStabilityRegion(x) {
		err = &EvaluationError{Point: x, Distance: dist, Err: ErrOutOfStabilityRegion}
		return
	}
	var val float64
	if val, err = Jstar(m, u, x); err != nil {
		err = &EvaluationError{Point: x, Distance: dist, Err: err}
		return
	}
	res = Result{Value: val, Point: x, Distance: dist, Cells: m.NumCells()}
	return
}
