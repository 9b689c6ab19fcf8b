package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/notargets/laplace2d/model_problems/Laplace2D"
	"gonum.org/v1/gonum/stat"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	studies, err := readCSV(csvFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	summarize(os.Stdout, studies)
}

func readCSV(csvFile string) (studies []*Laplace2D.ConvergenceStudy, err error) {
	var f *os.File
	if f, err = os.Open(csvFile); err != nil {
		return
	}
	defer f.Close()
	return Laplace2D.ReadStudyCSV(bufio.NewReader(f))
}

// fittedOrder is the slope of the least squares line through (log h, log error), NaN with fewer than two usable rows
func fittedOrder(h, e []float64) float64 {
	var lh, le []float64
	for i := range h {
		if h[i] > 0 && e[i] > 0 {
			lh = append(lh, math.Log(h[i]))
			le = append(le, math.Log(e[i]))
		}
	}
	if len(lh) < 2 {
		return math.NaN()
	}
	_, beta := stat.LinearRegression(lh, le, nil, false)
	return beta
}

func summarize(w io.Writer, studies []*Laplace2D.ConvergenceStudy) {
	for _, cs := range studies {
		cs.Print(w)
		var h, pe, je []float64
		for _, r := range cs.Rows {
			h = append(h, r.H)
			pe = append(pe, r.PointEvalError)
			je = append(je, r.JstarError)
		}
		fmt.Fprintf(w, "Fitted order: PointEval = %5.2f, Jstar = %5.2f\n\n", fittedOrder(h, pe), fittedOrder(h, je))
	}
}
