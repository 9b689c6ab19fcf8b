/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/notargets/laplace2d/InputParameters"
	"github.com/notargets/laplace2d/mesh"
	"github.com/notargets/laplace2d/model_problems/Laplace2D"
	"github.com/notargets/laplace2d/quadrature"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// EvalCmd represents the eval command
var EvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a harmonic function at a point near the centre of the unit square",
	Long: `
Evaluates u*(x) with the regularized volume functional and compares it with the analytic solution.
The point must lie within 0.25 of the centre (0.5,0.5).

laplace2d eval -x 0.3 -y 0.4 -n 64 -s log`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := parameters(cmd.Flags())
		if err != nil {
			return err
		}
		return runEval(cmd.OutOrStdout(), ip)
	},
}

func init() {
	rootCmd.AddCommand(EvalCmd)
	addCommonFlags(EvalCmd.Flags())
	EvalCmd.Flags().IntP("refinement", "n", 64, "subdivisions per side of the generated unit square mesh")
	EvalCmd.Flags().StringP("gridFile", "F", "", "mesh of the unit square in Gmsh 2.2 (.msh) or SU2 (.su2) format")
}

func addCommonFlags(flags *pflag.FlagSet) {
	flags.Float64P("x", "x", 0.3, "x coordinate of the evaluation point")
	flags.Float64P("y", "y", 0.4, "y coordinate of the evaluation point")
	flags.StringP("solution", "s", "log", "analytic solution: "+fmt.Sprint(Laplace2D.SolutionNames()))
	flags.StringP("quadrature", "q", "midpoint", "triangle rule of the volume functional: midpoint or edge-midpoint")
	flags.IntP("parallel", "p", 1, "number of partitions, 0 uses one per CPU")
	flags.StringP("inputConditionsFile", "I", "", "YAML file of input parameters")
}

/*
parameters resolves the run parameters in increasing precedence: the defaults, the config file and LAPLACE2D_*
environment, the input file given with -I, and the flags set on the command line.
*/
func parameters(flags *pflag.FlagSet) (ip *InputParameters.InputParameters2D, err error) {
	ip = InputParameters.NewInputParameters2D()
	if viper.IsSet("solution") {
		ip.Solution = viper.GetString("solution")
	}
	if viper.IsSet("quadrature") {
		ip.Quadrature = viper.GetString("quadrature")
	}
	if viper.IsSet("parallel") {
		ip.ParallelDegree = viper.GetInt("parallel")
	}
	if viper.IsSet("refinement") {
		ip.Refinement = viper.GetInt("refinement")
	}
	if file, _ := flags.GetString("inputConditionsFile"); file != "" {
		if err = ip.ReadFile(file); err != nil {
			return
		}
	}
	if flags.Changed("x") {
		ip.Point[0], _ = flags.GetFloat64("x")
	}
	if flags.Changed("y") {
		ip.Point[1], _ = flags.GetFloat64("y")
	}
	if flags.Changed("solution") {
		ip.Solution, _ = flags.GetString("solution")
	}
	if flags.Changed("quadrature") {
		ip.Quadrature, _ = flags.GetString("quadrature")
	}
	if flags.Changed("parallel") {
		ip.ParallelDegree, _ = flags.GetInt("parallel")
	}
	if flags.Changed("refinement") {
		ip.Refinement, _ = flags.GetInt("refinement")
	}
	if flags.Changed("gridFile") {
		ip.MeshFile, _ = flags.GetString("gridFile")
	}
	if flags.Changed("levels") {
		ip.Levels, _ = flags.GetIntSlice("levels")
	}
	err = ip.Validate()
	return
}

// loadMesh reads the mesh file or generates the unit square
func loadMesh(ip *InputParameters.InputParameters2D) (m *mesh.Mesh, err error) {
	if ip.MeshFile == "" {
		return mesh.NewUnitSquare(ip.Refinement)
	}
	if m, err = mesh.ReadMeshFile(ip.MeshFile); err != nil {
		return
	}
	if err = m.CheckUnitSquare(1.e-9); err != nil {
		return nil, fmt.Errorf("mesh %s: %w", ip.MeshFile, err)
	}
	return
}

func runEval(w io.Writer, ip *InputParameters.InputParameters2D) (err error) {
	var (
		sol  Laplace2D.AnalyticSolution
		rule *quadrature.QuadRule
		m    *mesh.Mesh
		x    = r2.Vec{X: ip.Point[0], Y: ip.Point[1]}
	)
	if sol, err = Laplace2D.NewAnalyticSolution(ip.Solution); err != nil {
		return
	}
	if rule, err = quadrature.NewTriangleRule(ip.Quadrature); err != nil {
		return
	}
	if m, err = loadMesh(ip); err != nil {
		return
	}
	ip.Print(w)
	if verbose {
		m.PrintStatistics(w)
	}
	ev := Laplace2D.NewEvaluator(m, Laplace2D.WithParallelDegree(ip.ParallelDegree), Laplace2D.WithRule(rule))
	logger.Debug("evaluating",
		zap.Stringer("evaluator", ev),
		zap.Float64("h", m.MeshSize()),
		zap.Float64("x", x.X), zap.Float64("y", x.Y))

	var res Laplace2D.Result
	if res, err = ev.StabPointEval(context.Background(), sol.Value, x); err != nil {
		return
	}
	exact := sol.Value(x)
	fmt.Fprintln(w, res)
	fmt.Fprintf(w, "u(%g, %g)  = %.15g [%s]\n", x.X, x.Y, exact, sol.Name)
	fmt.Fprintf(w, "|u* - u|   = %.6e\n", math.Abs(res.Value-exact))
	logger.Info("evaluated",
		zap.Float64("value", res.Value),
		zap.Float64("error", math.Abs(res.Value-exact)))
	return
}
