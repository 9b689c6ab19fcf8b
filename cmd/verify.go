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
	"os"

	"github.com/notargets/laplace2d/InputParameters"
	"github.com/notargets/laplace2d/model_problems/Laplace2D"
	"github.com/notargets/laplace2d/quadrature"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// VerifyCmd represents the verify command
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Convergence study of the representation formula and the volume functional",
	Long: `
Refines the unit square mesh through the given levels and reports the error of the boundary representation
formula and of the volume functional with observed orders of convergence.

laplace2d verify -l 4,8,16,32 -o study.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := parameters(cmd.Flags())
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("output")
		return runVerify(cmd.OutOrStdout(), ip, out)
	},
}

func init() {
	rootCmd.AddCommand(VerifyCmd)
	addCommonFlags(VerifyCmd.Flags())
	VerifyCmd.Flags().IntSliceP("levels", "l", []int{4, 8, 16, 32, 64}, "subdivisions per side of each refinement")
	VerifyCmd.Flags().StringP("output", "o", "", "CSV file for the study")
}

func runVerify(w io.Writer, ip *InputParameters.InputParameters2D, outFile string) (err error) {
	var (
		sol  Laplace2D.AnalyticSolution
		rule *quadrature.QuadRule
		cs   *Laplace2D.ConvergenceStudy
		x    = r2.Vec{X: ip.Point[0], Y: ip.Point[1]}
	)
	if sol, err = Laplace2D.NewAnalyticSolution(ip.Solution); err != nil {
		return
	}
	if rule, err = quadrature.NewTriangleRule(ip.Quadrature); err != nil {
		return
	}
	logger.Debug("convergence study", zap.Ints("levels", ip.Levels), zap.String("solution", sol.Name))
	if cs, err = Laplace2D.RunConvergenceStudy(context.Background(), ip.Levels, sol, x,
		Laplace2D.WithParallelDegree(ip.ParallelDegree), Laplace2D.WithRule(rule)); err != nil {
		return
	}
	cs.Print(w)
	if outFile == "" {
		return
	}
	var f *os.File
	if f, err = os.Create(outFile); err != nil {
		return
	}
	if err = cs.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", outFile, err)
	}
	if err = f.Close(); err != nil {
		return
	}
	logger.Info("wrote convergence study", zap.String("file", outFile), zap.Int("rows", len(cs.Rows)))
	return
}
