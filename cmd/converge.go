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
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/dg1d/model_problems"
)

// ConvergeCmd represents the converge command
var ConvergeCmd = &cobra.Command{
	Use:   "converge",
	Short: "Grid convergence study for smooth model problems",
	Long: `
Runs the selected model problem on a sequence of meshes, doubling the element
count each level, and reports the L2 and Linf errors with the observed order
of accuracy between levels,

dg1d converge `,
	Run: func(cmd *cobra.Command, args []string) {
		m1d := &Model1D{}
		mr, _ := cmd.Flags().GetInt("model")
		m1d.ModelRun = ModelType1D(mr)
		m1d.Case, _ = cmd.Flags().GetInt("case")
		m1d.Flux, _ = cmd.Flags().GetInt("flux")
		m1d.NodeType, _ = cmd.Flags().GetString("nodeType")
		m1d.XMax, _ = cmd.Flags().GetFloat64("xMax")
		m1d.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		m1d.CFL, _ = cmd.Flags().GetFloat64("CFL")
		m1d.N, _ = cmd.Flags().GetInt("n")
		m1d.K, _ = cmd.Flags().GetInt("k")
		m1d.WaveSpeed, _ = cmd.Flags().GetFloat64("waveSpeed")
		levels, _ := cmd.Flags().GetInt("levels")
		var err error
		if m1d.CFL, err = LimitCFL(m1d.ModelRun, m1d.CFL); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err := RunConverge(m1d, levels); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ConvergeCmd)
	ModelRun := M_1DAdvect
	CFL, XMax, N, K, CaseInt := Defaults(ModelRun)
	ConvergeCmd.Flags().IntP("model", "m", int(ModelRun), "model to run: 0 = Advect1D, 1 = Burgers1D, 2 = Euler1D")
	ConvergeCmd.Flags().IntP("k", "k", K, "Number of elements on the coarsest level")
	ConvergeCmd.Flags().IntP("n", "n", N, "polynomial degree")
	ConvergeCmd.Flags().IntP("case", "c", CaseInt, "Case to run, must have a smooth exact solution")
	ConvergeCmd.Flags().IntP("flux", "f", 0, "Numerical flux")
	ConvergeCmd.Flags().IntP("levels", "l", 3, "number of refinement levels")
	ConvergeCmd.Flags().String("nodeType", "GLL", "Nodal set: GLL = Gauss-Lobatto-Legendre, GL = Gauss-Legendre")
	ConvergeCmd.Flags().Float64("CFL", CFL, "CFL - increase for speedup, decrease for stability")
	ConvergeCmd.Flags().Float64("finalTime", 1, "FinalTime - the target end time for the sim")
	ConvergeCmd.Flags().Float64("xMax", XMax, "Maximum X coordinate")
	ConvergeCmd.Flags().Float64("waveSpeed", 1, "advection wave speed")
}

func RunConverge(m1d *Model1D, levels int) (err error) {
	var (
		data = make([]model_problems.ConvergenceDatum, 0, levels)
		K    = m1d.K
	)
	if levels < 2 {
		return fmt.Errorf("need at least 2 refinement levels, have %d", levels)
	}
	for lev := 0; lev < levels; lev++ {
		run := *m1d
		run.K = K
		C, err := NewModel1D(&run)
		if err != nil {
			return err
		}
		if err = C.Run(); err != nil {
			return fmt.Errorf("level %d (K=%d) failed: %w", lev, K, err)
		}
		data = append(data, C.Report())
		K *= 2
	}
	fmt.Printf("%8s %8s %14s %8s %14s %8s\n", "K", "DOFs", "L2", "Order", "Linf", "Order")
	for i, d := range data {
		if i == 0 {
			fmt.Printf("%8d %8d %14.6e %8s %14.6e %8s\n",
				d.NumCells, d.NumDofs, d.L2Error, "-", d.LinfError, "-")
			continue
		}
		prev := data[i-1]
		ordL2 := math.Log2(prev.L2Error / d.L2Error)
		ordLinf := math.Log2(prev.LinfError / d.LinfError)
		fmt.Printf("%8d %8d %14.6e %8.2f %14.6e %8.2f\n",
			d.NumCells, d.NumDofs, d.L2Error, ordL2, d.LinfError, ordLinf)
	}
	return nil
}
