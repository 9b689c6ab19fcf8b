package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

/*
An EdgeInt stores the edge vertices in the traversal order of the owning cell, so that it can be recovered with
its direction. Boundary edges are kept as EdgeInt so the outward side is known without the cell.
*/
type EdgeInt int64

func NewEdgeInt(verts [2]int) (packed EdgeInt) {
	// This packs two index coordinates into two 31 bit unsigned integers, the sign carries the direction
	var (
		limit = math.MaxUint32 >> 1 // leaves room for the sign bit of an int64
		sign  bool
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into an int64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		sign = true
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeInt(i1 + i2<<32)
	if sign {
		packed = -packed
	}
	return
}

func (e EdgeInt) GetVertices() (verts [2]int) {
	var (
		eTmp EdgeInt
		sign bool
	)
	if e < 0 {
		sign = true
		e = -e
	}
	eTmp = e >> 32
	verts[1] = int(eTmp)
	verts[0] = int(e - eTmp*(1<<32))
	if sign {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

func (e EdgeInt) GetKey() (ek EdgeKey) {
	ek = NewEdgeKey(e.GetVertices())
	return
}

// Curve is a set of directed segments, for example the boundary edges of a mesh.
type Curve []EdgeInt

// ReOrder chains the segments head to tail starting from the first one. It returns the number of closed loops
// found; a mesh of a simply connected domain has exactly one. Segments that cannot be chained make it return an
// error.
func (c Curve) ReOrder(reverse bool) (loops int, err error) {
	var (
		l     = len(c)
		start = make(map[int]int, l) // first vertex -> index in c
	)
	if l == 0 {
		return
	}
	for i, e := range c {
		v0 := e.GetVertices()[0]
		if _, dup := start[v0]; dup {
			err = fmt.Errorf("vertex %d starts more than one segment, curve is not a simple chain", v0)
			return
		}
		start[v0] = i
	}
	ordered := make(Curve, 0, l)
	used := make([]bool, l)
	for len(ordered) < l {
		// Begin a new loop at the lowest unused segment
		var cur int
		for cur = 0; used[cur]; cur++ {
		}
		first := c[cur].GetVertices()[0]
		for {
			used[cur] = true
			ordered = append(ordered, c[cur])
			next := c[cur].GetVertices()[1]
			if next == first {
				loops++
				break
			}
			var ok bool
			if cur, ok = start[next]; !ok || used[cur] {
				err = fmt.Errorf("curve is open at vertex %d", next)
				return
			}
		}
	}
	if reverse {
		for i, j := 0, l-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
		for i := range ordered {
			ordered[i] = -ordered[i]
		}
	}
	copy(c, ordered)
	return
}
