package Laplace2D

import (
	"fmt"

	"github.com/notargets/laplace2d/mesh"
	"github.com/notargets/laplace2d/quadrature"
	"github.com/notargets/laplace2d/types"
	"gonum.org/v1/gonum/spatial/r2"
)

/*
Jstar is the regularized volume functional

	J*(x) = - sum_cells sum_l w_l |J| u(z_l) [ 2 gradY G(x,z_l).grad Psi(z_l) + G(x,z_l) lap Psi(z_l) ]

evaluated with the midpoint rule. It reproduces u(x) for harmonic u when x lies inside the inner zone of Psi, and
the kernel is only sampled inside the annulus where Psi varies, away from x.
*/
func Jstar(m *mesh.Mesh, u ScalarField, x r2.Vec) (float64, error) {
	return JstarWithRule(m, u, x, quadrature.MidpointRule())
}

// JstarWithRule evaluates the functional with a triangle quadrature rule
func JstarWithRule(m *mesh.Mesh, u ScalarField, x r2.Vec, rule *quadrature.QuadRule) (float64, error) {
	if err := checkFunctionalInputs(m, rule); err != nil {
		return 0, err
	}
	return jstarRange(m, u, x, rule, 0, m.NumCells())
}

func checkFunctionalInputs(m *mesh.Mesh, rule *quadrature.QuadRule) error {
	if rule.RefEl != types.Triangle {
		return fmt.Errorf("quadrature rule %s is defined on a %s: %w", rule.Name, rule.RefEl, ErrNonTriangularMesh)
	}
	for k, t := range m.CellTypes {
		if t != types.Triangle {
			return fmt.Errorf("cell %d is a %s: %w", k, t, ErrNonTriangularMesh)
		}
	}
	return nil
}

// jstarRange is the contribution of cells [kMin, kMax)
func jstarRange(m *mesh.Mesh, u ScalarField, x r2.Vec, rule *quadrature.QuadRule, kMin, kMax int) (
	sum float64, err error) {
	defer discardOnError(&sum, &err)
	defer recoverSingular(&err)
	for k := kMin; k < kMax; k++ {
		sum -= rule.Integrate(m.CellGeometry(k), func(z r2.Vec) float64 {
			cv := Psi(z)
			if !cv.Active() {
				return 0
			}
			return u(z) * (2*r2.Dot(GradGy(x, z), cv.Grad) + G(x, z)*cv.Laplacian)
		})
	}
	return
}
