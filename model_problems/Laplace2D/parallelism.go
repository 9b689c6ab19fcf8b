package Laplace2D

import (
	"context"
	"fmt"
	"math"

	"github.com/notargets/laplace2d/geometry2D"
	"github.com/notargets/laplace2d/mesh"
	"github.com/notargets/laplace2d/quadrature"
	"github.com/notargets/laplace2d/utils"
	"gonum.org/v1/gonum/spatial/r2"
)

/*
Evaluator splits the cell and boundary edge sums over partitions evaluated concurrently. Partial sums are combined
in partition order, so results are repeatable for a fixed ParallelDegree, and a ParallelDegree of one reproduces
the package level functions exactly.
*/
type Evaluator struct {
	Mesh           *mesh.Mesh
	ParallelDegree int // Number of go routines to use for parallel execution
	Rule           *quadrature.QuadRule
	CellPartitions *utils.PartitionMap
	EdgePartitions *utils.PartitionMap
}

type EvaluatorOption func(ev *Evaluator)

// WithParallelDegree sets the number of partitions, zero selects one per CPU
func WithParallelDegree(np int) EvaluatorOption {
	return func(ev *Evaluator) { ev.ParallelDegree = np }
}

// WithRule sets the triangle rule used by Jstar
func WithRule(rule *quadrature.QuadRule) EvaluatorOption {
	return func(ev *Evaluator) { ev.Rule = rule }
}

func NewEvaluator(m *mesh.Mesh, opts ...EvaluatorOption) (ev *Evaluator) {
	ev = &Evaluator{
		Mesh: m,
		Rule: quadrature.MidpointRule(),
	}
	for _, opt := range opts {
		opt(ev)
	}
	ev.ParallelDegree = utils.ParallelDegreeFor(ev.ParallelDegree, m.NumCells())
	ev.CellPartitions = utils.NewPartitionMap(ev.ParallelDegree, m.NumCells())
	ev.EdgePartitions = utils.NewPartitionMap(
		utils.ParallelDegreeFor(ev.ParallelDegree, len(m.BoundaryEdges)), len(m.BoundaryEdges))
	return
}

func (ev *Evaluator) reduceEdges(ctx context.Context, rangeSum func(eMin, eMax int) (float64, error)) (
	float64, error) {
	return ev.EdgePartitions.Reduce(ctx, func(ctx context.Context, eMin, eMax int) (float64, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return rangeSum(eMin, eMax)
	})
}

func (ev *Evaluator) PSL(ctx context.Context, v ScalarField, x r2.Vec) (float64, error) {
	return ev.reduceEdges(ctx, func(eMin, eMax int) (float64, error) {
		return pslRange(ev.Mesh, v, x, eMin, eMax)
	})
}

func (ev *Evaluator) PDL(ctx context.Context, v ScalarField, x r2.Vec) (float64, error) {
	return ev.reduceEdges(ctx, func(eMin, eMax int) (float64, error) {
		return pdlRange(ev.Mesh, v, x, eMin, eMax)
	})
}

func (ev *Evaluator) NormalFluxPSL(ctx context.Context, gradU VectorField, x r2.Vec) (float64, error) {
	return ev.reduceEdges(ctx, func(eMin, eMax int) (float64, error) {
		return fluxRange(ev.Mesh, gradU, x, eMin, eMax)
	})
}

func (ev *Evaluator) Jstar(ctx context.Context, u ScalarField, x r2.Vec) (float64, error) {
	if err := checkFunctionalInputs(ev.Mesh, ev.Rule); err != nil {
		return 0, err
	}
	return ev.CellPartitions.Reduce(ctx, func(ctx context.Context, kMin, kMax int) (float64, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return jstarRange(ev.Mesh, u, x, ev.Rule, kMin, kMax)
	})
}

// StabPointEval is the partitioned form of the package level StabPointEval
func (ev *Evaluator) StabPointEval(ctx context.Context, u ScalarField, x r2.Vec) (res Result, err error) {
	dist := geometry2D.DistanceFromCenter(x)
	if !InStabilityRegion(x) {
		err = &EvaluationError{Point: x, Distance: dist, Err: ErrOutOfStabilityRegion}
		return
	}
	var val float64
	if val, err = ev.Jstar(ctx, u, x); err != nil {
		err = &EvaluationError{Point: x, Distance: dist, Err: err}
		return
	}
	res = Result{Value: val, Point: x, Distance: dist, Cells: ev.Mesh.NumCells()}
	return
}

// PointEval is the partitioned form of PointEvalWith
func (ev *Evaluator) PointEval(ctx context.Context, sol AnalyticSolution, x r2.Vec) (float64, error) {
	flux, err := ev.NormalFluxPSL(ctx, sol.Gradient, x)
	if err != nil {
		return 0, err
	}
	dl, err := ev.PDL(ctx, sol.Value, x)
	if err != nil {
		return 0, err
	}
	return math.Abs(sol.Value(x) - (flux - dl)), nil
}

func (ev *Evaluator) String() string {
	return fmt.Sprintf("%d cells and %d boundary edges in %d partitions, %s",
		ev.Mesh.NumCells(), len(ev.Mesh.BoundaryEdges), ev.ParallelDegree, ev.Rule)
}

/*
RunConvergenceStudy is NewConvergenceStudy with every level evaluated by a partitioned Evaluator built with opts.
*/
func RunConvergenceStudy(ctx context.Context, levels []int, sol AnalyticSolution, x r2.Vec,
	opts ...EvaluatorOption) (*ConvergenceStudy, error) {
	return runStudy(levels, sol, x, func(m *mesh.Mesh) (peErr, jErr float64, err error) {
		ev := NewEvaluator(m, opts...)
		if peErr, err = ev.PointEval(ctx, sol, x); err != nil {
			return
		}
		var res Result
		if res, err = ev.StabPointEval(ctx, sol.Value, x); err != nil {
			return
		}
		jErr = math.Abs(res.Value - sol.Value(x))
		return
	})
}
