package InputParameters

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters2D struct {
	Title          string     `json:"Title"`
	MeshFile       string     `json:"MeshFile"`       // Gmsh 2.2 or SU2 file, overrides Refinement
	Refinement     int        `json:"Refinement"`     // Subdivisions per side of the generated unit square
	Point          [2]float64 `json:"Point"`          // Evaluation point
	Solution       string     `json:"Solution"`       // Name of the analytic solution
	ParallelDegree int        `json:"ParallelDegree"` // Zero uses one partition per CPU
	Quadrature     string     `json:"Quadrature"`     // midpoint or edge-midpoint
	Levels         []int      `json:"Levels"`         // Refinements of a convergence study
}

// NewInputParameters2D returns the defaults: the log solution at (0.3,0.4) on a 64 x 64 unit square
func NewInputParameters2D() *InputParameters2D {
	return &InputParameters2D{
		Title:          "Stable point evaluation",
		Refinement:     64,
		Point:          [2]float64{0.3, 0.4},
		Solution:       "log",
		ParallelDegree: 1,
		Quadrature:     "midpoint",
		Levels:         []int{4, 8, 16, 32, 64},
	}
}

// Parse overlays the YAML in data onto ip
func (ip *InputParameters2D) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	return ip.Validate()
}

// ReadFile parses the YAML input file at path
func (ip *InputParameters2D) ReadFile(path string) (err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return fmt.Errorf("unable to read input file: %w", err)
	}
	if err = ip.Parse(data); err != nil {
		return fmt.Errorf("input file %s: %w", path, err)
	}
	return
}

func (ip *InputParameters2D) Validate() error {
	if ip.MeshFile == "" && ip.Refinement < 1 {
		return fmt.Errorf("Refinement must be positive without a MeshFile, have %d", ip.Refinement)
	}
	for _, c := range ip.Point {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("Point must be finite, have %v", ip.Point)
		}
	}
	if ip.ParallelDegree < 0 {
		return fmt.Errorf("ParallelDegree must not be negative, have %d", ip.ParallelDegree)
	}
	for _, n := range ip.Levels {
		if n < 1 {
			return fmt.Errorf("convergence study levels must be positive, have %v", ip.Levels)
		}
	}
	return nil
}

// Marshal writes the parameters as YAML
func (ip *InputParameters2D) Marshal() ([]byte, error) {
	return yaml.Marshal(ip)
}

func (ip *InputParameters2D) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	if ip.MeshFile != "" {
		fmt.Fprintf(w, "[%s]\t\t= Mesh File\n", ip.MeshFile)
	} else {
		fmt.Fprintf(w, "[%d]\t\t\t\t= Refinement\n", ip.Refinement)
	}
	fmt.Fprintf(w, "(%8.5f,%8.5f)\t= Point\n", ip.Point[0], ip.Point[1])
	fmt.Fprintf(w, "[%s]\t\t\t= Solution\n", ip.Solution)
	fmt.Fprintf(w, "[%s]\t\t= Quadrature\n", ip.Quadrature)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Parallel Degree\n", ip.ParallelDegree)
	fmt.Fprintf(w, "%v\t= Levels\n", ip.Levels)
}
