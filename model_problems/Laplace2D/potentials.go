package Laplace2D

import (
	"github.com/notargets/laplace2d/mesh"
	"github.com/notargets/laplace2d/quadrature"
	"gonum.org/v1/gonum/spatial/r2"
)

type ScalarField func(p r2.Vec) float64

type VectorField func(p r2.Vec) r2.Vec

// Constant returns the field equal to c everywhere
func Constant(c float64) ScalarField {
	return func(r2.Vec) float64 { return c }
}

/*
The boundary potentials integrate over the boundary edges of the mesh with the midpoint rule, each edge
contributing (datum at the midpoint) x (kernel term at the midpoint) x (edge length). The normal of an edge is the
outward normal stored with it.
*/

// PSL is the single layer potential of v at x
func PSL(m *mesh.Mesh, v ScalarField, x r2.Vec) (float64, error) {
	return pslRange(m, v, x, 0, len(m.BoundaryEdges))
}

// PDL is the double layer potential of v at x
func PDL(m *mesh.Mesh, v ScalarField, x r2.Vec) (float64, error) {
	return pdlRange(m, v, x, 0, len(m.BoundaryEdges))
}

// NormalFluxPSL is the single layer potential whose datum is the normal derivative gradU.n of the edge
func NormalFluxPSL(m *mesh.Mesh, gradU VectorField, x r2.Vec) (float64, error) {
	return fluxRange(m, gradU, x, 0, len(m.BoundaryEdges))
}

func pslRange(m *mesh.Mesh, v ScalarField, x r2.Vec, eMin, eMax int) (float64, error) {
	return boundarySum(m, eMin, eMax, func(_ r2.Vec, y r2.Vec) float64 {
		return v(y) * G(x, y)
	})
}

func pdlRange(m *mesh.Mesh, v ScalarField, x r2.Vec, eMin, eMax int) (float64, error) {
	return boundarySum(m, eMin, eMax, func(n r2.Vec, y r2.Vec) float64 {
		return v(y) * r2.Dot(GradGy(x, y), n)
	})
}

func fluxRange(m *mesh.Mesh, gradU VectorField, x r2.Vec, eMin, eMax int) (float64, error) {
	return boundarySum(m, eMin, eMax, func(n r2.Vec, y r2.Vec) float64 {
		return r2.Dot(gradU(y), n) * G(x, y)
	})
}

// boundarySum integrates f(normal, y) over boundary edges [eMin, eMax)
func boundarySum(m *mesh.Mesh, eMin, eMax int, f func(n, y r2.Vec) float64) (sum float64, err error) {
	defer discardOnError(&sum, &err)
	defer recoverSingular(&err)
	rule := quadrature.SegmentMidpointRule()
	for i := eMin; i < eMax; i++ {
		be := m.BoundaryEdges[i]
		sum += rule.Integrate(be.Geometry(m), func(y r2.Vec) float64 {
			return f(be.Normal, y)
		})
	}
	return
}
