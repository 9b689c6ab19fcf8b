package Laplace2D

import (
	"math"

	"github.com/notargets/laplace2d/geometry2D"
	"gonum.org/v1/gonum/spatial/r2"
)

type CutoffZone uint8

const (
	ZoneInner   CutoffZone = iota // Psi = 0
	ZoneAnnulus                   // Psi rises from 0 to 1
	ZoneOuter                     // Psi = 1
	ZoneUndefined                 // y is not finite, Psi = NaN
)

func (z CutoffZone) String() string {
	return [...]string{"Inner", "Annulus", "Outer", "Undefined"}[z]
}

const (
	CutoffInnerRadius = 0.25 * math.Sqrt2
	CutoffOuterRadius = 0.5
)

// cutoffFreq scales the phase so cos^2 reaches 0 exactly at the inner radius
var cutoffFreq = math.Pi / (0.5*math.Sqrt2 - 1)

// CutoffValue is the cutoff with its gradient and Laplacian at one point
type CutoffValue struct {
	Value     float64
	Grad      r2.Vec
	Laplacian float64
	Zone      CutoffZone
}

// Active reports whether the derivatives are nonzero, only then does a point contribute to Jstar
func (cv CutoffValue) Active() bool {
	return cv.Zone == ZoneAnnulus
}

/*
Psi is a radial cutoff about the centre of the unit square, with r = |y - (0.5,0.5)| and c = pi/(0.5 sqrt2 - 1):

	r <= sqrt2/4        Psi = 0
	sqrt2/4 < r < 1/2   Psi = cos^2(c (r - 1/2))
	r >= 1/2            Psi = 1

Value and gradient are continuous across both radii. A point with a NaN coordinate is in ZoneUndefined with a NaN
value and never contributes to Jstar.
*/
func Psi(y r2.Vec) (cv CutoffValue) {
	r := geometry2D.DistanceFromCenter(y)
	switch {
	case math.IsNaN(r):
		cv.Value, cv.Zone = math.NaN(), ZoneUndefined
	case r <= CutoffInnerRadius:
		cv.Zone = ZoneInner
	case r >= CutoffOuterRadius:
		cv.Value, cv.Zone = 1, ZoneOuter
	default:
		var (
			cs, sn = math.Cos(cutoffFreq*(r-0.5)), math.Sin(cutoffFreq*(r-0.5))
			dPsi   = -2 * cutoffFreq * cs * sn // dPsi/dr
		)
		cv.Zone = ZoneAnnulus
		cv.Value = cs * cs
		cv.Grad = r2.Scale(dPsi/r, r2.Sub(y, geometry2D.Center))
		// Psi'' + Psi'/r
		cv.Laplacian = 2*cutoffFreq*cutoffFreq*(sn*sn-cs*cs) + dPsi/r
	}
	return
}
