package Laplace2D

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrSingularEvaluation is returned when the kernel is evaluated with coincident points
	ErrSingularEvaluation = errors.New("laplace2d: kernel evaluated at coincident points")

	// ErrNonTriangularMesh is returned when the volume functional meets a cell that is not a triangle
	ErrNonTriangularMesh = errors.New("laplace2d: functional requires a triangular mesh")

	// ErrOutOfStabilityRegion is returned by the driver for points too far from the centre of the square
	ErrOutOfStabilityRegion = errors.New("laplace2d: point outside the stability region")
)

// SingularityError carries the coincident arguments of a kernel evaluation
type SingularityError struct {
	X, Y r2.Vec
}

func (e *SingularityError) Error() string {
	return fmt.Sprintf("%v: x = (%g, %g), y = (%g, %g)", ErrSingularEvaluation, e.X.X, e.X.Y, e.Y.X, e.Y.Y)
}

func (e *SingularityError) Unwrap() error {
	return ErrSingularEvaluation
}

// EvaluationError wraps a failed point evaluation with the point and its distance from the centre
type EvaluationError struct {
	Point    r2.Vec
	Distance float64
	Err      error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation at (%g, %g), distance %.4f from the centre: %v",
		e.Point.X, e.Point.Y, e.Distance, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// recoverSingular turns a kernel singularity panic into an error, other panics propagate
func recoverSingular(err *error) {
	if r := recover(); r != nil {
		if se, ok := r.(*SingularityError); ok {
			*err = se
			return
		}
		panic(r)
	}
}

func discardOnError(sum *float64, err *error) {
	if *err != nil {
		*sum = 0
	}
}
