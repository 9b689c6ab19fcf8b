package quadrature

import (
	"fmt"
	"strings"

	"github.com/notargets/laplace2d/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Mapping carries a reference element onto a mesh entity
type Mapping interface {
	Global(ref r2.Vec) r2.Vec
	IntegrationElement(ref r2.Vec) float64
}

/*
QuadRule is a quadrature rule on a reference element. The reference triangle has corners (0,0),(1,0),(0,1) and
the reference segment is [0,1] along r, so the weights sum to the reference volume: 1/2 on the triangle, 1 on the
segment.
*/
type QuadRule struct {
	Name    string
	RefEl   types.ElementType
	Degree  int        // Polynomials up to this degree are integrated exactly
	Points  *mat.Dense // 2 x NumPoints, row 0 is r, row 1 is s
	Weights []float64
}

func newQuadRule(name string, refEl types.ElementType, degree int, r, s, w []float64) (qr *QuadRule) {
	np := len(w)
	qr = &QuadRule{
		Name:    name,
		RefEl:   refEl,
		Degree:  degree,
		Points:  mat.NewDense(2, np, nil),
		Weights: w,
	}
	qr.Points.SetRow(0, r)
	qr.Points.SetRow(1, s)
	return
}

// MidpointRule is the one point centroid rule on the reference triangle
func MidpointRule() *QuadRule {
	return newQuadRule("midpoint", types.Triangle, 1,
		[]float64{1. / 3}, []float64{1. / 3}, []float64{0.5})
}

// EdgeMidpointRule samples the three edge midpoints of the reference triangle
func EdgeMidpointRule() *QuadRule {
	return newQuadRule("edge-midpoint", types.Triangle, 2,
		[]float64{0.5, 0.5, 0}, []float64{0, 0.5, 0.5}, []float64{1. / 6, 1. / 6, 1. / 6})
}

// SegmentMidpointRule is the midpoint rule on the reference segment
func SegmentMidpointRule() *QuadRule {
	return newQuadRule("segment-midpoint", types.Line, 1,
		[]float64{0.5}, []float64{0}, []float64{1})
}

// NewTriangleRule returns a triangle rule by name, an empty name selects the midpoint rule
func NewTriangleRule(name string) (qr *QuadRule, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "midpoint", "centroid":
		qr = MidpointRule()
	case "edge-midpoint", "edgemidpoint", "edge_midpoint":
		qr = EdgeMidpointRule()
	default:
		err = fmt.Errorf("unknown quadrature rule %q, choose midpoint or edge-midpoint", name)
	}
	return
}

func (qr *QuadRule) NumPoints() int { return len(qr.Weights) }

// Point returns reference point i
func (qr *QuadRule) Point(i int) r2.Vec {
	return r2.Vec{X: qr.Points.At(0, i), Y: qr.Points.At(1, i)}
}

// WeightSum is the reference volume seen by the rule
func (qr *QuadRule) WeightSum() float64 {
	return floats.Sum(qr.Weights)
}

// Global maps every quadrature point through geo
func (qr *QuadRule) Global(geo Mapping) (pts []r2.Vec) {
	pts = make([]r2.Vec, qr.NumPoints())
	for i := range pts {
		pts[i] = geo.Global(qr.Point(i))
	}
	return
}

// Integrate approximates the integral of f over the entity mapped by geo
func (qr *QuadRule) Integrate(geo Mapping, f func(x r2.Vec) float64) (sum float64) {
	for i, w := range qr.Weights {
		ref := qr.Point(i)
		sum += w * geo.IntegrationElement(ref) * f(geo.Global(ref))
	}
	return
}

func (qr *QuadRule) String() string {
	return fmt.Sprintf("%s rule on the reference %s, %d points, exact to degree %d",
		qr.Name, qr.RefEl, qr.NumPoints(), qr.Degree)
}
