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
	"io/ioutil"
	"math"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/dg1d/DG1D"
	"github.com/notargets/dg1d/InputParameters"
	"github.com/notargets/dg1d/model_problems"
	"github.com/notargets/dg1d/model_problems/Advection1D"
	"github.com/notargets/dg1d/model_problems/Burgers1D"
	"github.com/notargets/dg1d/model_problems/Euler1D"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One Dimensional Model Problem Solutions",
	Long: `
Executes the Nodal Discontinuous Galerkin solver for a variety of model problems,

dg1d 1D `,
	Run: func(cmd *cobra.Command, args []string) {
		m1d := &Model1D{}
		fmt.Println("1D called")
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
		m1d.Gamma, _ = cmd.Flags().GetFloat64("gamma")
		icFile, _ := cmd.Flags().GetString("inputConditionsFile")
		if len(icFile) != 0 {
			processInput(icFile, m1d)
		}
		var err error
		if m1d.CFL, err = LimitCFL(m1d.ModelRun, m1d.CFL); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		C, err := NewModel1D(m1d)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = C.Run(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		d := C.Report()
		fmt.Printf("K = %d, DOFs = %d, L2 = %8.5e, Linf = %8.5e\n",
			d.NumCells, d.NumDofs, d.L2Error, d.LinfError)
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	var (
		ModelRun = M_1DEuler
	)
	CFL, XMax, N, K, CaseInt := Defaults(ModelRun)
	OneDCmd.Flags().IntP("model", "m", int(ModelRun), "model to run: 0 = Advect1D, 1 = Burgers1D, 2 = Euler1D")
	OneDCmd.Flags().IntP("k", "k", K, "Number of elements in model")
	OneDCmd.Flags().IntP("n", "n", N, "polynomial degree")
	OneDCmd.Flags().IntP("case", "c", CaseInt, "Case to run, for Euler: 0 = SOD Shock Tube, 1 = Density Wave, 2 = Freestream")
	OneDCmd.Flags().IntP("flux", "f", 0, "Numerical flux, for Euler: 0 = Lax, 1 = Roe; for Advection: 0 = Upwind, 1 = Central")
	OneDCmd.Flags().String("nodeType", "GLL", "Nodal set: GLL = Gauss-Lobatto-Legendre, GL = Gauss-Legendre")
	OneDCmd.Flags().Float64("CFL", CFL, "CFL - increase for speedup, decrease for stability")
	OneDCmd.Flags().Float64("finalTime", FinalTime, "FinalTime - the target end time for the sim")
	OneDCmd.Flags().Float64("xMax", XMax, "Maximum X coordinate - make sure to increase K with XMax")
	OneDCmd.Flags().Float64("waveSpeed", 1, "advection wave speed")
	OneDCmd.Flags().Float64("gamma", 1.4, "ratio of specific heats for the Euler model")
	OneDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file of input parameters, overrides command line flags")
	OneDCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
}

type Model1D struct {
	K, N                 int // Number of elements, Polynomial Degree
	ModelRun             ModelType1D
	CFL, FinalTime, XMax float64
	Case, Flux           int
	NodeType             string
	WaveSpeed            float64
	Gamma                float64 // Euler only, zero leaves the default 1.4
	Limiter              *bool   // nil leaves the per-case default
	LimiterM             float64
}

type ModelType1D uint8

const (
	M_1DAdvect ModelType1D = iota
	M_1DBurgers
	M_1DEuler
)

const FinalTime = 100000.

var (
	max_CFL    = []float64{1, 0.5, 1}
	def_K      = []int{20, 40, 200}
	def_N      = []int{3, 3, 2}
	def_CFL    = []float64{0.75, 0.3, 0.75}
	def_XMAX   = []float64{2 * math.Pi, 2 * math.Pi, 1}
	def_CASE   = make([]int, 3)
	num_CASE   = []int{2, 2, 3}
	num_FLUX   = []int{2, 1, 2}
	modelNames = map[string]ModelType1D{
		"advection": M_1DAdvect,
		"burgers":   M_1DBurgers,
		"euler":     M_1DEuler,
	}
	caseNames = map[string]int{
		"sine": 0, "gauss": 1, // advection and burgers share index 0
		"shock": 1,
		"sod":   0, "densitywave": 1, "freestream": 2,
	}
	fluxNames = map[string]int{
		"upwind": 0, "central": 1,
		"rusanov": 0,
		"lax":     0, "roe": 1,
	}
)

type Model interface {
	Run() error
	Report() model_problems.ConvergenceDatum
}

func NewModel1D(m1d *Model1D) (C Model, err error) {
	if int(m1d.ModelRun) >= len(num_CASE) {
		return nil, fmt.Errorf("unknown model %d, must be 0 (advection), 1 (burgers) or 2 (euler)", m1d.ModelRun)
	}
	if m1d.Case < 0 || m1d.Case >= num_CASE[m1d.ModelRun] {
		return nil, fmt.Errorf("case %d out of range, model has %d cases", m1d.Case, num_CASE[m1d.ModelRun])
	}
	if m1d.Flux < 0 || m1d.Flux >= num_FLUX[m1d.ModelRun] {
		return nil, fmt.Errorf("flux %d out of range, model has %d flux types", m1d.Flux, num_FLUX[m1d.ModelRun])
	}
	var opts []DG1D.Option
	if m1d.NodeType == "GL" {
		opts = append(opts, DG1D.WithNodeType(DG1D.Gauss))
	}
	switch m1d.ModelRun {
	case M_1DAdvect:
		C = Advection1D.NewAdvection(m1d.WaveSpeed, m1d.CFL, m1d.FinalTime, m1d.XMax,
			m1d.N, m1d.K, Advection1D.FluxType(m1d.Flux), Advection1D.CaseType(m1d.Case), opts...)
	case M_1DBurgers:
		C = Burgers1D.NewBurgers(m1d.CFL, m1d.FinalTime, m1d.XMax,
			m1d.N, m1d.K, Burgers1D.CaseType(m1d.Case), opts...)
	case M_1DEuler:
		fallthrough
	default:
		var eopts []Euler1D.Option
		if m1d.NodeType == "GL" {
			eopts = append(eopts, Euler1D.WithNodeType(DG1D.Gauss))
		}
		if m1d.Gamma != 0 {
			eopts = append(eopts, Euler1D.WithGamma(m1d.Gamma))
		}
		C = Euler1D.NewEuler(m1d.CFL, m1d.FinalTime, m1d.XMax,
			m1d.N, m1d.K, Euler1D.FluxType(m1d.Flux), Euler1D.CaseType(m1d.Case), eopts...)
	}
	applyLimiter(C, m1d)
	return
}

func applyLimiter(C Model, m1d *Model1D) {
	if m1d.Limiter == nil && m1d.LimiterM == 0 {
		return
	}
	set := func(use *bool, M *float64) {
		if m1d.Limiter != nil {
			*use = *m1d.Limiter
		}
		if m1d.LimiterM != 0 {
			*M = m1d.LimiterM
		}
	}
	switch m := C.(type) {
	case *Advection1D.Advection:
		set(&m.UseLimiter, &m.LimiterM)
	case *Burgers1D.Burgers:
		set(&m.UseLimiter, &m.LimiterM)
	case *Euler1D.Euler:
		set(&m.UseLimiter, &m.LimiterM)
	}
}

func processInput(icFile string, m1d *Model1D) {
	var (
		err  error
		data []byte
	)
	if data, err = ioutil.ReadFile(icFile); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Test Case"
Model: euler
Case: sod
FluxType: roe
NodeType: GLL
PolynomialOrder: 2
NumElements: 200
CFL: 0.75
FinalTime: 0.2
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	ip := &InputParameters.InputParameters1D{}
	if err = ip.Parse(data); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	model, ok := modelNames[ip.Model]
	if !ok {
		model = m1d.ModelRun
	}
	if int(model) >= len(max_CFL) {
		fmt.Printf("error: unknown model %d\n", model)
		os.Exit(1)
	}
	if err = ip.Validate(max_CFL[model]); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	ip.Print()
	m1d.ModelRun = model
	m1d.N = ip.PolynomialOrder
	m1d.K = ip.NumElements
	m1d.CFL = ip.CFL
	m1d.FinalTime = ip.FinalTime
	if ip.Case != "" {
		m1d.Case = caseNames[ip.Case]
	}
	if ip.FluxType != "" {
		m1d.Flux = fluxNames[ip.FluxType]
	}
	if ip.NodeType != "" {
		m1d.NodeType = ip.NodeType
	}
	if ip.XMax != 0 {
		m1d.XMax = ip.XMax
	}
	if ip.WaveSpeed != 0 {
		m1d.WaveSpeed = ip.WaveSpeed
	}
	if ip.Gamma != 0 {
		m1d.Gamma = ip.Gamma
	}
	m1d.Limiter = ip.Limiter
	m1d.LimiterM = ip.LimiterM
}

func LimitCFL(model ModelType1D, CFL float64) (float64, error) {
	if int(model) >= len(max_CFL) {
		return CFL, fmt.Errorf("unknown model %d, must be 0 (advection), 1 (burgers) or 2 (euler)", model)
	}
	if CFLMax := max_CFL[model]; CFL > CFLMax {
		return CFL, fmt.Errorf("CFL %g exceeds the stability bound %g for this model", CFL, CFLMax)
	}
	return CFL, nil
}

func Defaults(model ModelType1D) (CFL, XMax float64, N, K, Case int) {
	return def_CFL[model], def_XMAX[model], def_N[model], def_K[model], def_CASE[model]
}
