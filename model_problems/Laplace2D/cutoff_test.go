package Laplace2D

import (
	"math"
	"testing"

	"github.com/notargets/laplace2d/geometry2D"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

// radial returns the point at distance r from the centre along angle theta
func radial(r, theta float64) r2.Vec {
	return r2.Add(geometry2D.Center, r2.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
}

func TestPsiZones(t *testing.T) {
	{
		cv := Psi(geometry2D.Center)
		assert.Equal(t, CutoffValue{Zone: ZoneInner}, cv)
		assert.False(t, cv.Active())
	}
	{
		cv := Psi(r2.Vec{X: 0.3, Y: 0.4}) // inside the stability region
		assert.Equal(t, ZoneInner, cv.Zone)
	}
	for _, p := range []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0.5}, {X: 0.5, Y: 0}, {X: 1, Y: 1}} {
		cv := Psi(p)
		assert.Equal(t, CutoffValue{Value: 1, Zone: ZoneOuter}, cv)
	}
	{
		cv := Psi(radial(0.42, 0.3))
		assert.Equal(t, ZoneAnnulus, cv.Zone)
		assert.True(t, cv.Active())
		assert.Equal(t, "Annulus", cv.Zone.String())
	}
	{ // NaN coordinates are flagged, not placed in a zone
		cv := Psi(r2.Vec{X: math.NaN(), Y: 0.5})
		assert.Equal(t, ZoneUndefined, cv.Zone)
		assert.True(t, math.IsNaN(cv.Value))
		assert.False(t, cv.Active())
		assert.Equal(t, "Undefined", cv.Zone.String())
	}
	{ // Infinitely far away is outside
		cv := Psi(r2.Vec{X: math.Inf(1), Y: 0.5})
		assert.Equal(t, CutoffValue{Value: 1, Zone: ZoneOuter}, cv)
	}
}

func TestPsiContinuity(t *testing.T) {
	eps := 1.e-9
	for _, theta := range []float64{0, 0.4, 1.3, 2.9, 4.4} {
		for _, r := range []float64{CutoffInnerRadius, CutoffOuterRadius} {
			in, out := Psi(radial(r-eps, theta)), Psi(radial(r+eps, theta))
			assert.InDelta(t, in.Value, out.Value, 1.e-6)
			assert.InDelta(t, 0., r2.Norm(r2.Sub(in.Grad, out.Grad)), 1.e-6)
		}
	}
	{ // Range
		for r := 0.; r < 0.8; r += 0.01 {
			for theta := 0.; theta < 2*math.Pi; theta += 0.3 {
				v := Psi(radial(r, theta)).Value
				assert.GreaterOrEqual(t, v, 0.)
				assert.LessOrEqual(t, v, 1.)
			}
		}
	}
	{ // Monotone in r
		prev := 0.
		for r := CutoffInnerRadius; r <= CutoffOuterRadius; r += 0.005 {
			v := Psi(radial(r, 0.7)).Value
			assert.GreaterOrEqual(t, v, prev)
			prev = v
		}
	}
}

func TestPsiDerivatives(t *testing.T) {
	value := func(p r2.Vec) float64 { return Psi(p).Value }
	for _, p := range []r2.Vec{radial(0.38, 0.2), radial(0.42, 1.9), radial(0.47, 3.5), radial(0.4, 5.5)} {
		cv := Psi(p)
		assert.Equal(t, ZoneAnnulus, cv.Zone)
		{ // Gradient
			var (
				h      = 1.e-6
				ex, ey = r2.Vec{X: h}, r2.Vec{Y: h}
			)
			fd := r2.Vec{
				X: (value(r2.Add(p, ex)) - value(r2.Sub(p, ex))) / (2 * h),
				Y: (value(r2.Add(p, ey)) - value(r2.Sub(p, ey))) / (2 * h),
			}
			assert.InDelta(t, fd.X, cv.Grad.X, 1.e-6)
			assert.InDelta(t, fd.Y, cv.Grad.Y, 1.e-6)
		}
		{ // Five point Laplacian
			var (
				h      = 1.e-4
				ex, ey = r2.Vec{X: h}, r2.Vec{Y: h}
			)
			fd := (value(r2.Add(p, ex)) + value(r2.Sub(p, ex)) + value(r2.Add(p, ey)) + value(r2.Sub(p, ey)) -
				4*value(p)) / (h * h)
			assert.InDelta(t, fd, cv.Laplacian, 1.e-2)
		}
	}
}
