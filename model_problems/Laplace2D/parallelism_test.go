package Laplace2D

import (
	"context"
	"math"
	"testing"

	"github.com/notargets/laplace2d/quadrature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestEvaluatorMatchesSerial(t *testing.T) {
	var (
		ctx = context.Background()
		m   = unitSquare(t, 16)
		sol = LogSolution()
		x   = VerificationPoint
	)
	serialJ, err := Jstar(m, sol.Value, x)
	require.NoError(t, err)
	serialPSL, err := PSL(m, sol.Value, x)
	require.NoError(t, err)
	serialPDL, err := PDL(m, sol.Value, x)
	require.NoError(t, err)
	serialPE, err := PointEval(m)
	require.NoError(t, err)

	{ // One partition is the serial sum
		ev := NewEvaluator(m, WithParallelDegree(1))
		assert.Equal(t, 1, ev.ParallelDegree)
		j, err := ev.Jstar(ctx, sol.Value, x)
		require.NoError(t, err)
		assert.Equal(t, serialJ, j)
		psl, err := ev.PSL(ctx, sol.Value, x)
		require.NoError(t, err)
		assert.Equal(t, serialPSL, psl)
	}
	for _, np := range []int{2, 3, 7, 16} {
		ev := NewEvaluator(m, WithParallelDegree(np))
		assert.Equal(t, np, ev.ParallelDegree)
		assert.Equal(t, np, ev.EdgePartitions.ParallelDegree)
		j, err := ev.Jstar(ctx, sol.Value, x)
		require.NoError(t, err)
		assert.InDelta(t, serialJ, j, 1.e-12)
		// Repeatable for a fixed partition count
		for i := 0; i < 3; i++ {
			j2, err := ev.Jstar(ctx, sol.Value, x)
			require.NoError(t, err)
			assert.Equal(t, j, j2)
		}
		psl, err := ev.PSL(ctx, sol.Value, x)
		require.NoError(t, err)
		assert.InDelta(t, serialPSL, psl, 1.e-13)
		pdl, err := ev.PDL(ctx, sol.Value, x)
		require.NoError(t, err)
		assert.InDelta(t, serialPDL, pdl, 1.e-13)
		pe, err := ev.PointEval(ctx, sol, x)
		require.NoError(t, err)
		assert.InDelta(t, serialPE, pe, 1.e-13)
		res, err := ev.StabPointEval(ctx, sol.Value, x)
		require.NoError(t, err)
		assert.Equal(t, j, res.Value)
		assert.Equal(t, m.NumCells(), res.Cells)
	}
	{ // More partitions than boundary edges
		small := unitSquare(t, 3)
		ev := NewEvaluator(small, WithParallelDegree(16))
		assert.Equal(t, 16, ev.ParallelDegree)
		assert.Equal(t, 1, ev.EdgePartitions.ParallelDegree)
		assert.Contains(t, ev.String(), "18 cells and 12 boundary edges in 16 partitions")
	}
	{ // Default degree
		ev := NewEvaluator(m)
		assert.GreaterOrEqual(t, ev.ParallelDegree, 1)
		_, err := ev.Jstar(ctx, sol.Value, x)
		assert.NoError(t, err)
	}
}

func TestEvaluatorRule(t *testing.T) {
	m := unitSquare(t, 8)
	sol := LogSolution()
	want, err := JstarWithRule(m, sol.Value, VerificationPoint, quadrature.EdgeMidpointRule())
	require.NoError(t, err)
	ev := NewEvaluator(m, WithParallelDegree(1), WithRule(quadrature.EdgeMidpointRule()))
	got, err := ev.Jstar(context.Background(), sol.Value, VerificationPoint)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEvaluatorErrors(t *testing.T) {
	m := unitSquare(t, 8)
	{ // Cancelled before the reduction
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		for _, np := range []int{1, 4} {
			ev := NewEvaluator(m, WithParallelDegree(np))
			_, err := ev.Jstar(ctx, Constant(1), VerificationPoint)
			assert.ErrorIs(t, err, context.Canceled)
			_, err = ev.PSL(ctx, Constant(1), VerificationPoint)
			assert.ErrorIs(t, err, context.Canceled)
		}
	}
	ctx := context.Background()
	ev := NewEvaluator(m, WithParallelDegree(4))
	{ // Singular evaluation inside one partition
		_, err := ev.PSL(ctx, Constant(1), r2.Vec{X: 0.0625, Y: 0})
		assert.ErrorIs(t, err, ErrSingularEvaluation)
	}
	{
		_, err := ev.StabPointEval(ctx, Constant(1), r2.Vec{X: 0.05, Y: 0.5})
		assert.ErrorIs(t, err, ErrOutOfStabilityRegion)
		res, err := ev.StabPointEval(ctx, Constant(1), r2.Vec{X: math.NaN(), Y: 0.4})
		assert.ErrorIs(t, err, ErrOutOfStabilityRegion)
		assert.Equal(t, Result{}, res)
	}
	{
		quads, err := quadMesh()
		require.NoError(t, err)
		_, err = NewEvaluator(quads, WithParallelDegree(2)).Jstar(ctx, Constant(1), VerificationPoint)
		assert.ErrorIs(t, err, ErrNonTriangularMesh)
	}
}

func TestRunConvergenceStudy(t *testing.T) {
	levels := []int{4, 8}
	serial, err := NewConvergenceStudy(levels, LogSolution(), VerificationPoint)
	require.NoError(t, err)
	par, err := RunConvergenceStudy(context.Background(), levels, LogSolution(), VerificationPoint,
		WithParallelDegree(3))
	require.NoError(t, err)
	require.Len(t, par.Rows, len(serial.Rows))
	for i := range serial.Rows {
		assert.InDelta(t, serial.Rows[i].PointEvalError, par.Rows[i].PointEvalError, 1.e-13)
		assert.InDelta(t, serial.Rows[i].JstarError, par.Rows[i].JstarError, 1.e-12)
	}
}
