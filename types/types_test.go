package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for edge labeling
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{0, 1})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{1, 0}, en.GetVertices(true))

		en = NewEdgeKey([2]int{100, 100001})
		assert.Equal(t, EdgeKey(100001*(1<<32)+100), en)
		assert.Equal(t, [2]int{100, 100001}, en.GetVertices(false))

		en = NewEdgeKey([2]int{1<<32 - 1, 1<<32 - 1})
		assert.Equal(t, EdgeKey(1<<64-1), en)
		assert.Panics(t, func() { NewEdgeKey([2]int{-1, 2}) })
	}
	{ // Directed edges keep their orientation and share a key with the reverse edge
		e := NewEdgeInt([2]int{7, 3})
		assert.True(t, e < 0)
		assert.Equal(t, [2]int{7, 3}, e.GetVertices())
		assert.Equal(t, [2]int{3, 7}, (-e).GetVertices())
		assert.Equal(t, NewEdgeKey([2]int{3, 7}), e.GetKey())
		assert.Equal(t, e.GetKey(), NewEdgeInt([2]int{3, 7}).GetKey())
	}
	{
		tokens := []string{"Bottom", "wall-left", "NORTH", "east_2", "inflow", "Top side"}
		flags := []BCFLAG{BC_Bottom, BC_Left, BC_Top, BC_Right, BC_None, BC_Top}
		for i, token := range tokens {
			assert.Equal(t, flags[i], NewBCFLAG(token), token)
		}
		assert.Equal(t, [2]float64{1, 0}, BC_Right.Normal())
		assert.Equal(t, [2]float64{0, -1}, BC_Bottom.Normal())
		assert.Equal(t, [2]float64{}, BC_None.Normal())
		assert.Equal(t, "Left", BC_Left.String())
	}
}

func TestCurveReOrder(t *testing.T) {
	square := func() Curve {
		// Counterclockwise loop 0-1-2-3 given out of order
		return Curve{
			NewEdgeInt([2]int{2, 3}),
			NewEdgeInt([2]int{0, 1}),
			NewEdgeInt([2]int{3, 0}),
			NewEdgeInt([2]int{1, 2}),
		}
	}
	{
		c := square()
		loops, err := c.ReOrder(false)
		require.NoError(t, err)
		assert.Equal(t, 1, loops)
		for i := range c {
			next := c[(i+1)%len(c)]
			assert.Equal(t, c[i].GetVertices()[1], next.GetVertices()[0])
		}
	}
	{
		c := square()
		loops, err := c.ReOrder(true)
		require.NoError(t, err)
		assert.Equal(t, 1, loops)
		// Reversed curve runs clockwise: 3 -> 2 follows 0 -> 3
		for i := range c {
			next := c[(i+1)%len(c)]
			assert.Equal(t, c[i].GetVertices()[1], next.GetVertices()[0])
		}
		assert.Equal(t, [2]int{2, 1}, c[0].GetVertices())
	}
	{ // Two separate triangles
		c := Curve{
			NewEdgeInt([2]int{0, 1}), NewEdgeInt([2]int{1, 2}), NewEdgeInt([2]int{2, 0}),
			NewEdgeInt([2]int{5, 6}), NewEdgeInt([2]int{6, 7}), NewEdgeInt([2]int{7, 5}),
		}
		loops, err := c.ReOrder(false)
		require.NoError(t, err)
		assert.Equal(t, 2, loops)
	}
	{ // Open chain
		c := Curve{NewEdgeInt([2]int{0, 1}), NewEdgeInt([2]int{1, 2})}
		_, err := c.ReOrder(false)
		assert.Error(t, err)
	}
	{
		var c Curve
		loops, err := c.ReOrder(false)
		assert.NoError(t, err)
		assert.Zero(t, loops)
	}
}

func TestElementType(t *testing.T) {
	assert.Equal(t, "Triangle", Triangle.String())
	assert.Equal(t, 2, Quad.Dimension())
	assert.Equal(t, 1, Line.Dimension())
	assert.Equal(t, 0, Point.Dimension())
	assert.Equal(t, 3, Triangle.NumVertices())
	assert.Equal(t, 4, Quad.NumVertices())
}
