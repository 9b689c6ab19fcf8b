package geometry2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestUnitSquareNormal(t *testing.T) {
	var (
		bottom = r2.Vec{X: 0, Y: -1}
		right  = r2.Vec{X: 1, Y: 0}
		top    = r2.Vec{X: 0, Y: 1}
		left   = r2.Vec{X: -1, Y: 0}
	)
	{ // Edge midpoints on each side
		assert.Equal(t, bottom, UnitSquareNormal(NewPoint(0.125, 0)))
		assert.Equal(t, bottom, UnitSquareNormal(NewPoint(0.875, 0)))
		assert.Equal(t, right, UnitSquareNormal(NewPoint(1, 0.125)))
		assert.Equal(t, right, UnitSquareNormal(NewPoint(1, 0.875)))
		assert.Equal(t, top, UnitSquareNormal(NewPoint(0.125, 1)))
		assert.Equal(t, top, UnitSquareNormal(NewPoint(0.875, 1)))
		assert.Equal(t, left, UnitSquareNormal(NewPoint(0, 0.125)))
		assert.Equal(t, left, UnitSquareNormal(NewPoint(0, 0.875)))
	}
	{ // Diagonal tie breaking: horizontal sides win
		assert.Equal(t, bottom, UnitSquareNormal(NewPoint(0, 0)))
		assert.Equal(t, bottom, UnitSquareNormal(NewPoint(1, 0)))
		assert.Equal(t, top, UnitSquareNormal(NewPoint(1, 1)))
		assert.Equal(t, top, UnitSquareNormal(NewPoint(0, 1)))
		assert.Equal(t, bottom, UnitSquareNormal(Center))
		assert.Equal(t, bottom, UnitSquareNormal(NewPoint(0.25, 0.25)))
		assert.Equal(t, top, UnitSquareNormal(NewPoint(0.75, 0.75)))
		assert.Equal(t, top, UnitSquareNormal(NewPoint(0.25, 0.75)))
		assert.Equal(t, bottom, UnitSquareNormal(NewPoint(0.75, 0.25)))
	}
}

func TestOutwardNormal(t *testing.T) {
	a, b := NewPoint(0, 0), NewPoint(1, 0)
	n := OutwardNormal(a, b, NewPoint(0.3, 0.3))
	assert.InDelta(t, 0, n.X, 1e-15)
	assert.InDelta(t, -1, n.Y, 1e-15)
	// Orientation of the segment must not matter
	n = OutwardNormal(b, a, NewPoint(0.3, 0.3))
	assert.InDelta(t, -1, n.Y, 1e-15)
	n = OutwardNormal(NewPoint(0, 0), NewPoint(1, 1), NewPoint(1, 0))
	assert.InDelta(t, -1/math.Sqrt2, n.X, 1e-15)
	assert.InDelta(t, 1/math.Sqrt2, n.Y, 1e-15)
	assert.InDelta(t, 1, r2.Norm(n), 1e-15)
}

func TestPointHelpers(t *testing.T) {
	assert.InDelta(t, math.Sqrt(0.05), DistanceFromCenter(NewPoint(0.3, 0.4)), 1e-15)
	assert.Equal(t, NewPoint(0.125, 0), Midpoint(NewPoint(0, 0), NewPoint(0.25, 0)))
	assert.Equal(t, 1., SignedArea2(NewPoint(0, 0), NewPoint(1, 0), NewPoint(0, 1)))
	assert.Equal(t, -1., SignedArea2(NewPoint(0, 0), NewPoint(0, 1), NewPoint(1, 0)))
	assert.True(t, OnUnitSquareBoundary(NewPoint(0.3, 1), 1e-12))
	assert.True(t, OnUnitSquareBoundary(NewPoint(0, 0), 1e-12))
	assert.False(t, OnUnitSquareBoundary(NewPoint(0.3, 0.4), 1e-12))
	assert.False(t, OnUnitSquareBoundary(NewPoint(1.5, 1), 1e-12))
}

func TestBoundingBox(t *testing.T) {
	assert.Nil(t, NewBoundingBox(nil))
	box := NewBoundingBox([]r2.Vec{{X: 0, Y: 0.5}, {X: 1, Y: 0}, {X: 0.5, Y: 1}})
	assert.Equal(t, [2]float64{0, 0}, box.XMin)
	assert.Equal(t, [2]float64{1, 1}, box.XMax)
	assert.NoError(t, box.IsUnitSquare(1e-12))
	assert.Equal(t, Center, box.Centroid())
	assert.True(t, box.Contains(NewPoint(0.3, 0.4)))
	big := box.Scale(2)
	assert.Equal(t, [2]float64{-0.5, -0.5}, big.XMin)
	assert.Error(t, big.IsUnitSquare(1e-12))
	box.Grow(big)
	assert.Equal(t, big.XMax, box.XMax)
}
