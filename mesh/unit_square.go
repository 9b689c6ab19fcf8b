package mesh

import (
	"fmt"

	"github.com/notargets/laplace2d/types"
)

/*
NewUnitSquare triangulates [0,1]x[0,1] with n x n squares of side h = 1/n, each split along the diagonal from its
lower left to its upper right corner:

	p01 ---- p11
	 |  1  /  |
	 |   /  0 |
	p00 ---- p10

Boundary edges are labeled with the side of the square they lie on.
*/
func NewUnitSquare(n int) (m *Mesh, err error) {
	if n < 1 {
		err = fmt.Errorf("unit square needs at least one subdivision, got %d", n)
		return
	}
	var (
		h     = 1. / float64(n)
		vertN = func(i, j int) int { return j + (n+1)*i } // i along x, j along y
	)
	m = NewMesh()
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			m.AddNode(vertN(i, j), float64(i)*h, float64(j)*h)
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p00, p10, p11, p01 := vertN(i, j), vertN(i+1, j), vertN(i+1, j+1), vertN(i, j+1)
			m.appendCell(types.Triangle, 0, []int{p00, p10, p11})
			m.appendCell(types.Triangle, 0, []int{p00, p11, p01})
		}
	}
	for i := 0; i < n; i++ {
		m.SideTags[types.NewEdgeKey([2]int{vertN(i, 0), vertN(i+1, 0)})] = types.BC_Bottom
		m.SideTags[types.NewEdgeKey([2]int{vertN(n, i), vertN(n, i+1)})] = types.BC_Right
		m.SideTags[types.NewEdgeKey([2]int{vertN(i, n), vertN(i+1, n)})] = types.BC_Top
		m.SideTags[types.NewEdgeKey([2]int{vertN(0, i), vertN(0, i+1)})] = types.BC_Left
	}
	m.BoundaryTags[int(types.BC_Bottom)] = types.BC_Bottom.String()
	m.BoundaryTags[int(types.BC_Right)] = types.BC_Right.String()
	m.BoundaryTags[int(types.BC_Top)] = types.BC_Top.String()
	m.BoundaryTags[int(types.BC_Left)] = types.BC_Left.String()
	if err = m.BuildConnectivity(); err != nil {
		return nil, err
	}
	return
}
