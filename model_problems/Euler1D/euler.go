package Euler1D

import (
	"fmt"
	"math"

	"github.com/notargets/dg1d/DG1D"
	"github.com/notargets/dg1d/model_problems"
	"github.com/notargets/dg1d/sod_shock_tube"
	"github.com/notargets/dg1d/utils"
)

type CaseType uint8

const (
	SOD_TUBE CaseType = iota
	DENSITY_WAVE
	FREESTREAM
)

var caseNames = []string{
	"Sod Shock Tube",
	"Density Wave",
	"Freestream",
}

type FluxType uint8

const (
	LAX_FLUX FluxType = iota
	ROE_FLUX
)

var fluxNames = []string{
	"Lax Friedrichs Flux",
	"Roe Flux",
}

// Euler solves the compressible Euler equations in 1D for the conserved
// variables (Rho, RhoU, Ener) with a Galerkin DG scheme and SSP-RK3 time
// advancement.
type Euler struct {
	// Input parameters
	CFL, FinalTime float64
	XMax, Gamma    float64
	El             *DG1D.Elements1D
	State          *FieldState
	Rho, RhoU      utils.Matrix
	Ener           utils.Matrix
	In, Out        *State
	Case           CaseType
	Flux           FluxType
	UseLimiter     bool
	LimiterM       float64
	Monitor        model_problems.Monitor
	LogFrequency   int
	Time           float64
	steps          int
	nodes          DG1D.NodeType
}

type Option func(c *Euler)

// WithGamma overrides the default ratio of specific heats, 1.4.
func WithGamma(gamma float64) Option {
	return func(c *Euler) { c.Gamma = gamma }
}

func WithNodeType(nt DG1D.NodeType) Option {
	return func(c *Euler) { c.nodes = nt }
}

func NewEuler(CFL, FinalTime, XMax float64, N, K int, flux FluxType,
	ctype CaseType, opts ...Option) (c *Euler) {
	if XMax == 0 {
		XMax = 1
	}
	bc := DG1D.Periodic
	if ctype == SOD_TUBE {
		bc = DG1D.Physical
	}
	VX, EToV := DG1D.SimpleMesh1D(0, XMax, K)
	c = &Euler{
		CFL:          CFL,
		FinalTime:    FinalTime,
		XMax:         XMax,
		Gamma:        1.4,
		Case:         ctype,
		Flux:         flux,
		UseLimiter:   ctype == SOD_TUBE,
		LimiterM:     20,
		LogFrequency: 50,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.El = DG1D.NewElements1D(N, VX, EToV,
		DG1D.WithBoundary(bc), DG1D.WithNodeType(c.nodes))
	c.State = NewFieldState(c.Gamma)
	switch ctype {
	case DENSITY_WAVE:
		c.InitializeDensityWave()
	case FREESTREAM:
		c.In = NewStateP(c.Gamma, 1, 0, 1)
		c.Out = c.In
		c.InitializeFS()
	case SOD_TUBE:
		fallthrough
	default:
		c.In = NewStateP(c.Gamma, 1, 0, 1)
		c.Out = NewStateP(c.Gamma, 0.125, 0, 0.1)
		c.InitializeSOD()
	}
	return
}

// InitializeSOD assigns the left/right Sod states element by element, split
// at the cell centers relative to the diaphragm location.
func (c *Euler) InitializeSOD() {
	var (
		el   = c.El
		xMid = 0.5 * c.XMax
	)
	c.Rho = utils.NewMatrix(el.Np, el.K)
	c.RhoU = utils.NewMatrix(el.Np, el.K)
	c.Ener = utils.NewMatrix(el.Np, el.K)
	for k := 0; k < el.K; k++ {
		x0 := 0.5 * (el.X.At(0, k) + el.X.At(el.Np-1, k))
		s := c.In
		if x0 >= xMid {
			s = c.Out
		}
		for i := 0; i < el.Np; i++ {
			c.Rho.Set(i, k, s.Rho)
			c.RhoU.Set(i, k, s.RhoU)
			c.Ener.Set(i, k, s.Ener)
		}
	}
}

func (c *Euler) InitializeFS() {
	var (
		el = c.El
		FS = c.In
	)
	c.Rho = utils.NewMatrix(el.Np, el.K).AddScalar(FS.Rho)
	c.RhoU = utils.NewMatrix(el.Np, el.K).AddScalar(FS.RhoU)
	c.Ener = utils.NewMatrix(el.Np, el.K).AddScalar(FS.Ener)
}

func (c *Euler) InitializeDensityWave() {
	var (
		el = c.El
	)
	c.Rho = el.ProjectFunction(func(x float64) float64 { return c.densityWaveRho(x, 0) })
	c.RhoU = c.Rho.Copy() // u = 1 everywhere
	c.Ener = c.Rho.Copy().Apply(func(rho float64) float64 {
		return 1./(c.Gamma-1.) + 0.5*rho
	})
}

func (c *Euler) densityWaveRho(x, t float64) float64 {
	return 2 + math.Sin(2*math.Pi*(x-t)/c.XMax)
}

func (c *Euler) Run() (err error) {
	var (
		el   = c.El
		xmin = el.XMin()
	)
	fmt.Printf("Euler Equations in 1 Dimension\nCase: %s\nFlux: %s\n",
		caseNames[c.Case], fluxNames[c.Flux])
	fmt.Printf("CFL = %8.4f, Polynomial Degree N = %d (1 is linear), Num Elements K = %d\n\n",
		c.CFL, el.Np-1, el.K)
	for c.Time < c.FinalTime {
		c.State.Update(c.Rho, c.RhoU, c.Ener)
		dt := c.CalculateDT(xmin)

		// SSP RK Stage 1
		rhsRho, rhsRhoU, rhsEner := c.RHS(c.Rho, c.RhoU, c.Ener)
		update1 := func(u0, rhs float64) (u1 float64) {
			u1 = u0 + dt*rhs
			return
		}
		rho1 := c.Rho.Copy().Apply2(rhsRho, update1)
		rhou1 := c.RhoU.Copy().Apply2(rhsRhoU, update1)
		ener1 := c.Ener.Copy().Apply2(rhsEner, update1)
		if err = c.postStage(&rho1, &rhou1, &ener1, dt); err != nil {
			return
		}

		// SSP RK Stage 2
		rhsRho, rhsRhoU, rhsEner = c.RHS(rho1, rhou1, ener1)
		update2 := func(u0, u1, rhs float64) (u2 float64) {
			u2 = (3*u0 + u1 + rhs*dt) * (1. / 4.)
			return
		}
		rho2 := c.Rho.Copy().Apply3(rho1, rhsRho, update2)
		rhou2 := c.RhoU.Copy().Apply3(rhou1, rhsRhoU, update2)
		ener2 := c.Ener.Copy().Apply3(ener1, rhsEner, update2)
		if err = c.postStage(&rho2, &rhou2, &ener2, dt); err != nil {
			return
		}

		// SSP RK Stage 3
		rhsRho, rhsRhoU, rhsEner = c.RHS(rho2, rhou2, ener2)
		update3 := func(u0, u2, rhs float64) (u3 float64) {
			u3 = (u0 + 2*u2 + 2*dt*rhs) * (1. / 3.)
			return
		}
		c.Rho.Apply3(rho2, rhsRho, update3)
		c.RhoU.Apply3(rhou2, rhsRhoU, update3)
		c.Ener.Apply3(ener2, rhsEner, update3)
		if err = c.postStage(&c.Rho, &c.RhoU, &c.Ener, dt); err != nil {
			return
		}

		c.Time += dt
		c.steps++
		isDone := math.Abs(c.Time-c.FinalTime) < 1.e-12
		if c.steps%c.LogFrequency == 0 || isDone {
			fmt.Printf("Time = %8.4f [%d], rhomin = %8.6f, rhomax = %8.6f, emin = %8.6f, emax = %8.6f\n",
				c.Time, c.steps, c.Rho.Min(), c.Rho.Max(), c.Ener.Min(), c.Ener.Max())
		}
		if c.Monitor != nil {
			c.Monitor(c.Time, map[string]utils.Matrix{
				"Rho": c.Rho, "RhoU": c.RhoU, "Ener": c.Ener,
			})
		}
	}
	return
}

func (c *Euler) CalculateDT(xmin float64) (dt float64) {
	// min(xmin ./ (abs(U) + C))
	Factor := c.State.LM.Copy().Apply(func(lm float64) float64 { return xmin / lm })
	dt = c.CFL * Factor.Min()
	if dt+c.Time > c.FinalTime {
		dt = c.FinalTime - c.Time
	}
	return
}

func (c *Euler) RHS(Rho, RhoU, Ener utils.Matrix) (rhsRho, rhsRhoU, rhsEner utils.Matrix) {
	var (
		el                 = c.El
		RhoF, RhoUF, EnerF = c.State.Flux(Rho, RhoU, Ener)
	)
	RhoM := el.FaceValues(Rho)
	RhoUM := el.FaceValues(RhoU)
	EnerM := el.FaceValues(Ener)
	RhoP := el.FaceGather(RhoM)
	RhoUP := el.FaceGather(RhoUM)
	EnerP := el.FaceGather(EnerM)
	if el.BC == DG1D.Physical {
		// Ghost states at the domain ends from the In/Out conditions
		RhoP.Set(0, 0, c.In.Rho)
		RhoUP.Set(0, 0, c.In.RhoU)
		EnerP.Set(0, 0, c.In.Ener)
		RhoP.Set(1, el.K-1, c.Out.Rho)
		RhoUP.Set(1, el.K-1, c.Out.RhoU)
		EnerP.Set(1, el.K-1, c.Out.Ener)
	}

	dRho := utils.NewMatrix(2, el.K)
	dRhoU := utils.NewMatrix(2, el.K)
	dEner := utils.NewMatrix(2, el.K)
	for k := 0; k < el.K; k++ {
		for f := 0; f < 2; f++ {
			var (
				nx            = el.NX.At(f, k)
				uM            = [3]float64{RhoM.At(f, k), RhoUM.At(f, k), EnerM.At(f, k)}
				uP            = [3]float64{RhoP.At(f, k), RhoUP.At(f, k), EnerP.At(f, k)}
				fs1, fs2, fs3 float64
			)
			switch c.Flux {
			case ROE_FLUX:
				fs1, fs2, fs3 = c.RoeFlux(uM, uP, nx)
			default:
				fs1, fs2, fs3 = c.LaxFlux(uM, uP, nx)
			}
			f1M, f2M, f3M, _, _, _ := c.State.NodeFlux(uM[0], uM[1], uM[2])
			dRho.Set(f, k, nx*(f1M-fs1))
			dRhoU.Set(f, k, nx*(f2M-fs2))
			dEner.Set(f, k, nx*(f3M-fs3))
		}
	}

	rhs := func(F, dF utils.Matrix) utils.Matrix {
		return el.Dr.Mul(F).ElMul(el.Rx).Scale(-1).Add(el.LIFT.Mul(dF.ElMul(el.FScale)))
	}
	rhsRho = rhs(RhoF, dRho)
	rhsRhoU = rhs(RhoUF, dRhoU)
	rhsEner = rhs(EnerF, dEner)
	return
}

// LaxFlux is the Rusanov (local Lax-Friedrichs) interface flux. The wave
// speed takes the maximum of |u|+c over both sides of the interface;
// underestimating it destabilizes the scheme.
func (c *Euler) LaxFlux(uM, uP [3]float64, nx float64) (fs1, fs2, fs3 float64) {
	f1M, f2M, f3M, _, _, lmM := c.State.NodeFlux(uM[0], uM[1], uM[2])
	f1P, f2P, f3P, _, _, lmP := c.State.NodeFlux(uP[0], uP[1], uP[2])
	lf := math.Max(lmM, lmP)
	fs1 = 0.5*(f1M+f1P) + 0.5*nx*lf*(uM[0]-uP[0])
	fs2 = 0.5*(f2M+f2P) + 0.5*nx*lf*(uM[1]-uP[1])
	fs3 = 0.5*(f3M+f3P) + 0.5*nx*lf*(uM[2]-uP[2])
	return
}

// RoeFlux is the Roe approximate Riemann solver with the Harten entropy
// correction smoothing the eigenvalues near sonic points.
func (c *Euler) RoeFlux(uM, uP [3]float64, nx float64) (fs1, fs2, fs3 float64) {
	var (
		g = c.Gamma
	)
	f1M, f2M, f3M, vM, pM, _ := c.State.NodeFlux(uM[0], uM[1], uM[2])
	f1P, f2P, f3P, vP, pP, _ := c.State.NodeFlux(uP[0], uP[1], uP[2])
	var (
		htM      = (uM[2] + pM) / uM[0]
		htP      = (uP[2] + pP) / uP[0]
		srM, srP = math.Sqrt(uM[0]), math.Sqrt(uP[0])
		rhoRL    = srM * srP
		uRL      = (srM*vM + srP*vP) / (srM + srP)
		htRL     = (srM*htM + srP*htP) / (srM + srP)
		aRL      = math.Sqrt((g - 1) * (htRL - 0.5*uRL*uRL))
		delRho   = uP[0] - uM[0]
		delU     = vP - vM
		delP     = pP - pM
		delta    = aRL / 20
		ooarl2   = 1 / (aRL * aRL)
		w1       = (delP - rhoRL*aRL*delU) * 0.5 * ooarl2
		w2       = delRho - delP*ooarl2
		w3       = (delP + rhoRL*aRL*delU) * 0.5 * ooarl2
	)
	// Harten's phi modifies the eigenvalues to eliminate aphysical
	// expansion shocks
	phi := func(eig float64) (res float64) {
		absLam := math.Abs(eig)
		if absLam > delta {
			res = absLam
		} else {
			res = (eig*eig + delta*delta) / (2 * delta)
		}
		return
	}
	phi1, phi2, phi3 := phi(uRL-aRL), phi(uRL), phi(uRL+aRL)
	// The dissipation carries the global half of F = (FL+FR)/2 - sum/2; the
	// half inside w1/w3 belongs to the wave strengths
	fs1 = 0.5*(f1M+f1P) - 0.5*nx*(phi1*w1+phi2*w2+phi3*w3)
	fs2 = 0.5*(f2M+f2P) - 0.5*nx*(phi1*w1*(uRL-aRL)+phi2*w2*uRL+phi3*w3*(uRL+aRL))
	fs3 = 0.5*(f3M+f3P) - 0.5*nx*(phi1*w1*(htRL-aRL*uRL)+phi2*(w2*uRL*uRL*0.5)+phi3*w3*(htRL+uRL*aRL))
	return
}

func (c *Euler) postStage(Rho, RhoU, Ener *utils.Matrix, dt float64) (err error) {
	if c.UseLimiter {
		*Rho = c.El.SlopeLimitN(*Rho, c.LimiterM)
		*RhoU = c.El.SlopeLimitN(*RhoU, c.LimiterM)
		*Ener = c.El.SlopeLimitN(*Ener, c.LimiterM)
	}
	t := c.Time + dt
	if elem, ok := model_problems.ScanState(*Rho, true); !ok {
		return &model_problems.InstabilityError{Time: t, Step: c.steps, Elem: elem, Field: "Rho"}
	}
	if elem, ok := model_problems.ScanState(*Ener, true); !ok {
		return &model_problems.InstabilityError{Time: t, Step: c.steps, Elem: elem, Field: "Ener"}
	}
	// The equation of state must close with a positive pressure
	Pres := (*Ener).Copy().Apply3(*Rho, *RhoU, func(ener, rho, rhou float64) float64 {
		return (c.Gamma - 1.) * (ener - 0.5*rhou*rhou/rho)
	})
	if elem, ok := model_problems.ScanState(Pres, true); !ok {
		return &model_problems.InstabilityError{Time: t, Step: c.steps, Elem: elem, Field: "Pres"}
	}
	return
}

// Report compares the final density field against the case's reference
// solution: the analytic Sod solution, the translated density wave, or the
// freestream constant.
func (c *Euler) Report() (d model_problems.ConvergenceDatum) {
	var (
		el    = c.El
		RhoEx utils.Matrix
	)
	switch c.Case {
	case SOD_TUBE:
		sample := sod_shock_tube.Solution(c.Time, c.XMax)
		RhoEx = el.X.Copy().Apply(func(x float64) float64 {
			rho, _, _ := sample(x)
			return rho
		})
	case DENSITY_WAVE:
		RhoEx = el.ProjectFunction(func(x float64) float64 { return c.densityWaveRho(x, c.Time) })
	default:
		RhoEx = utils.NewMatrix(el.Np, el.K).AddScalar(c.In.Rho)
	}
	d = model_problems.ConvergenceDatum{
		NumCells:  el.K,
		NumDofs:   el.K * el.Np,
		L2Error:   el.L2Norm(c.Rho, RhoEx),
		LinfError: el.LinfNorm(c.Rho, RhoEx),
	}
	return
}
