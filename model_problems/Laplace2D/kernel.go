package Laplace2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const inv2Pi = 1. / (2. * math.Pi)

/*
G is the fundamental solution of the Laplacian in the plane

	G(x,y) = -1/(2 pi) ln|x-y|

Coincident points panic with a *SingularityError, the reductions in this package recover it into an error.
*/
func G(x, y r2.Vec) float64 {
	d := r2.Norm(r2.Sub(x, y))
	if d == 0 {
		panic(&SingularityError{X: x, Y: y})
	}
	return -inv2Pi * math.Log(d)
}

// GradG is the gradient of G with respect to x: -(x-y) / (2 pi |x-y|^2)
func GradG(x, y r2.Vec) r2.Vec {
	d := r2.Sub(x, y)
	d2 := r2.Dot(d, d)
	if d2 == 0 {
		panic(&SingularityError{X: x, Y: y})
	}
	return r2.Scale(-inv2Pi/d2, d)
}

// GradGy is the gradient of G with respect to y, the integration variable of the potentials
func GradGy(x, y r2.Vec) r2.Vec {
	return GradG(y, x)
}
