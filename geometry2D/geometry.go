package geometry2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Center of the unit square, the reference point for the cutoff zones and the stability region
var Center = r2.Vec{X: 0.5, Y: 0.5}

func NewPoint(x, y float64) r2.Vec {
	return r2.Vec{X: x, Y: y}
}

func DistanceFromCenter(p r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, Center))
}

func Midpoint(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: 0.5 * (a.X + b.X), Y: 0.5 * (a.Y + b.Y)}
}

// SignedArea2 is twice the signed area of triangle abc, positive for counterclockwise ordering
func SignedArea2(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}

// OutwardNormal returns the unit normal of segment ab pointing away from the point interior, usually the
// centroid of the cell owning the segment
func OutwardNormal(a, b, interior r2.Vec) (n r2.Vec) {
	t := r2.Sub(b, a)
	n = r2.Unit(r2.Vec{X: t.Y, Y: -t.X})
	if r2.Dot(n, r2.Sub(interior, a)) > 0 {
		n = r2.Scale(-1, n)
	}
	return
}

/*
UnitSquareNormal assigns the outward normal of the unit square to a point on (or near) its boundary by splitting
the square into four sectors with the two diagonals:

	below both diagonals  -> ( 0,-1)  bottom
	right of both         -> ( 1, 0)  right
	above both            -> ( 0, 1)  top
	left of both          -> (-1, 0)  left

Points exactly on a diagonal are ambiguous. The convention here: the horizontal sides win, so a point on either
diagonal below the centre maps to the bottom, above the centre to the top, and the centre itself maps to the
bottom. Meshes carry their own normals; this is only used to cross check unit square meshes.
*/
func UnitSquareNormal(p r2.Vec) r2.Vec {
	var (
		below1 = p.Y <= p.X     // on or below the diagonal y = x
		below2 = p.Y <= 1.0-p.X // on or below the diagonal y = 1 - x
	)
	switch {
	case below1 && below2:
		return r2.Vec{X: 0, Y: -1}
	case !below1 && !below2:
		return r2.Vec{X: 0, Y: 1}
	case below1: // strictly above y = 1 - x
		if p.Y == p.X {
			return r2.Vec{X: 0, Y: 1}
		}
		return r2.Vec{X: 1, Y: 0}
	default: // strictly above y = x, on or below y = 1 - x
		if p.Y == 1.0-p.X {
			return r2.Vec{X: 0, Y: 1}
		}
		return r2.Vec{X: -1, Y: 0}
	}
}

// OnUnitSquareBoundary reports whether p lies on one of the four sides within tol
func OnUnitSquareBoundary(p r2.Vec, tol float64) bool {
	inside := p.X >= -tol && p.X <= 1+tol && p.Y >= -tol && p.Y <= 1+tol
	onSide := math.Abs(p.X) <= tol || math.Abs(p.X-1) <= tol ||
		math.Abs(p.Y) <= tol || math.Abs(p.Y-1) <= tol
	return inside && onSide
}
