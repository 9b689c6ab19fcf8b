package Laplace2D

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/notargets/laplace2d/mesh"
	"gonum.org/v1/gonum/spatial/r2"
)

// VerificationPoint is where the representation formula is checked
var VerificationPoint = r2.Vec{X: 0.3, Y: 0.4}

// AnalyticSolution is a harmonic function with its gradient
type AnalyticSolution struct {
	Name     string
	Value    ScalarField
	Gradient VectorField
}

func LogSolution() AnalyticSolution {
	return AnalyticSolution{
		Name: "log",
		// u = ln|x + (1,0)|, singular at (-1,0) outside the square
		Value: func(p r2.Vec) float64 {
			return 0.5 * math.Log((p.X+1)*(p.X+1)+p.Y*p.Y)
		},
		Gradient: func(p r2.Vec) r2.Vec {
			d2 := (p.X+1)*(p.X+1) + p.Y*p.Y
			return r2.Vec{X: (p.X + 1) / d2, Y: p.Y / d2}
		},
	}
}

var analyticSolutions = map[string]func() AnalyticSolution{
	"log": LogSolution,
	"constant": func() AnalyticSolution {
		return AnalyticSolution{
			Name:     "constant",
			Value:    Constant(1),
			Gradient: func(r2.Vec) r2.Vec { return r2.Vec{} },
		}
	},
	"linear": func() AnalyticSolution {
		return AnalyticSolution{
			Name:     "linear",
			Value:    func(p r2.Vec) float64 { return p.X + 2*p.Y },
			Gradient: func(r2.Vec) r2.Vec { return r2.Vec{X: 1, Y: 2} },
		}
	},
	"saddle": func() AnalyticSolution {
		return AnalyticSolution{
			Name:     "saddle",
			Value:    func(p r2.Vec) float64 { return p.X*p.X - p.Y*p.Y },
			Gradient: func(p r2.Vec) r2.Vec { return r2.Vec{X: 2 * p.X, Y: -2 * p.Y} },
		}
	},
}

// SolutionNames lists the names accepted by NewAnalyticSolution
func SolutionNames() (names []string) {
	for name := range analyticSolutions {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// NewAnalyticSolution looks up a solution by name, an empty name selects "log"
func NewAnalyticSolution(name string) (sol AnalyticSolution, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "log"
	}
	ctor, ok := analyticSolutions[name]
	if !ok {
		err = fmt.Errorf("unknown solution %q, choose from %s", name, strings.Join(SolutionNames(), ", "))
		return
	}
	sol = ctor()
	return
}

/*
PointEval checks the Green representation formula for the log solution at VerificationPoint:

	| u(x) - ( PSL[du/dn](x) - PDL[u](x) ) |

The error falls as h^2.
*/
func PointEval(m *mesh.Mesh) (float64, error) {
	return PointEvalWith(m, LogSolution(), VerificationPoint)
}

// PointEvalWith is PointEval for any solution and point
func PointEvalWith(m *mesh.Mesh, sol AnalyticSolution, x r2.Vec) (float64, error) {
	flux, err := NormalFluxPSL(m, sol.Gradient, x)
	if err != nil {
		return 0, err
	}
	dl, err := PDL(m, sol.Value, x)
	if err != nil {
		return 0, err
	}
	return math.Abs(sol.Value(x) - (flux - dl)), nil
}

// StudyRow is one refinement level of a convergence study
type StudyRow struct {
	N              int     // subdivisions per side
	H              float64 // longest edge
	PointEvalError float64
	JstarError     float64
	PointEvalRate  float64 // observed order against the previous row, NaN on the first
	JstarRate      float64
}

// ConvergenceStudy is a sequence of refinements of the unit square
type ConvergenceStudy struct {
	Solution string
	Point    r2.Vec
	Rows     []StudyRow
}

// observedRate is log(e0/e1) / log(h0/h1)
func observedRate(e0, e1, h0, h1 float64) float64 {
	if e0 <= 0 || e1 <= 0 || h0 == h1 {
		return math.NaN()
	}
	return math.Log(e0/e1) / math.Log(h0/h1)
}

// Add appends a row and fills in its rates
func (cs *ConvergenceStudy) Add(row StudyRow) {
	row.PointEvalRate, row.JstarRate = math.NaN(), math.NaN()
	if n := len(cs.Rows); n > 0 {
		prev := cs.Rows[n-1]
		row.PointEvalRate = observedRate(prev.PointEvalError, row.PointEvalError, prev.H, row.H)
		row.JstarRate = observedRate(prev.JstarError, row.JstarError, prev.H, row.H)
	}
	cs.Rows = append(cs.Rows, row)
}

/*
NewConvergenceStudy evaluates the representation formula error and the Jstar error of sol at x on unit square meshes
with each of the given subdivisions, using the serial evaluation.
*/
func NewConvergenceStudy(levels []int, sol AnalyticSolution, x r2.Vec) (cs *ConvergenceStudy, err error) {
	ev := func(m *mesh.Mesh) (peErr, jErr float64, err error) {
		if peErr, err = PointEvalWith(m, sol, x); err != nil {
			return
		}
		var res Result
		if res, err = StabPointEval(m, sol.Value, x); err != nil {
			return
		}
		jErr = math.Abs(res.Value - sol.Value(x))
		return
	}
	return runStudy(levels, sol, x, ev)
}

func runStudy(levels []int, sol AnalyticSolution, x r2.Vec,
	ev func(m *mesh.Mesh) (peErr, jErr float64, err error)) (cs *ConvergenceStudy, err error) {
	if len(levels) == 0 {
		err = fmt.Errorf("convergence study needs at least one refinement level")
		return
	}
	cs = &ConvergenceStudy{Solution: sol.Name, Point: x}
	for _, n := range levels {
		var m *mesh.Mesh
		if m, err = mesh.NewUnitSquare(n); err != nil {
			return nil, err
		}
		row := StudyRow{N: n, H: m.MeshSize()}
		if row.PointEvalError, row.JstarError, err = ev(m); err != nil {
			return nil, fmt.Errorf("refinement %d: %w", n, err)
		}
		cs.Add(row)
	}
	return
}

func formatRate(r float64) string {
	if math.IsNaN(r) {
		return "-"
	}
	return fmt.Sprintf("%5.2f", r)
}

// Print writes the study as a table
func (cs *ConvergenceStudy) Print(w io.Writer) {
	fmt.Fprintf(w, "Convergence study, solution = %s, x = (%g, %g)\n", cs.Solution, cs.Point.X, cs.Point.Y)
	fmt.Fprintf(w, "%6s %10s %14s %6s %14s %6s\n", "N", "h", "PointEval", "rate", "Jstar", "rate")
	for _, r := range cs.Rows {
		fmt.Fprintf(w, "%6d %10.6f %14.6e %6s %14.6e %6s\n",
			r.N, r.H, r.PointEvalError, formatRate(r.PointEvalRate), r.JstarError, formatRate(r.JstarRate))
	}
}

var studyHeader = []string{"solution", "x", "y", "N", "h", "point_eval_error", "jstar_error"}

// WriteCSV writes one record per row, rates are recomputed on reading
func (cs *ConvergenceStudy) WriteCSV(w io.Writer) (err error) {
	cw := csv.NewWriter(w)
	if err = cw.Write(studyHeader); err != nil {
		return
	}
	ff := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
	for _, r := range cs.Rows {
		if err = cw.Write([]string{cs.Solution, ff(cs.Point.X), ff(cs.Point.Y),
			strconv.Itoa(r.N), ff(r.H), ff(r.PointEvalError), ff(r.JstarError)}); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadStudyCSV reads studies written by WriteCSV, grouped by solution and point in order of appearance
func ReadStudyCSV(r io.Reader) (studies []*ConvergenceStudy, err error) {
	var (
		records [][]string
		byKey   = make(map[string]*ConvergenceStudy)
	)
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(studyHeader)
	if records, err = cr.ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 && rec[0] == studyHeader[0] {
			continue
		}
		var (
			vals [5]float64
			n    int
		)
		if n, err = strconv.Atoi(rec[3]); err != nil {
			return nil, fmt.Errorf("record %d: invalid N: %w", i, err)
		}
		for j, col := range []int{1, 2, 4, 5, 6} {
			if vals[j], err = strconv.ParseFloat(rec[col], 64); err != nil {
				return nil, fmt.Errorf("record %d: invalid %s: %w", i, studyHeader[col], err)
			}
		}
		key := rec[0] + "," + rec[1] + "," + rec[2]
		cs, ok := byKey[key]
		if !ok {
			cs = &ConvergenceStudy{Solution: rec[0], Point: r2.Vec{X: vals[0], Y: vals[1]}}
			byKey[key] = cs
			studies = append(studies, cs)
		}
		cs.Add(StudyRow{N: n, H: vals[2], PointEvalError: vals[3], JstarError: vals[4]})
	}
	return
}
