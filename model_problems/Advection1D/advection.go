package Advection1D

import (
	"fmt"
	"math"

	"github.com/notargets/dg1d/DG1D"
	"github.com/notargets/dg1d/model_problems"
	"github.com/notargets/dg1d/utils"
)

type CaseType uint8

const (
	SINE_WAVE CaseType = iota
	GAUSS_PULSE
)

var caseNames = []string{
	"Sine Wave",
	"Gaussian Pulse",
}

type FluxType uint8

const (
	UPWIND FluxType = iota
	CENTRAL
)

// Advection solves u_t + a u_x = 0 on a periodic domain [0, XMax] with an
// SSP-RK3 Galerkin DG scheme.
type Advection struct {
	// Input parameters
	a, CFL, FinalTime float64
	XMax              float64
	El                *DG1D.Elements1D
	U                 utils.Matrix
	Case              CaseType
	Flux              FluxType
	UseLimiter        bool
	LimiterM          float64
	Monitor           model_problems.Monitor
	LogFrequency      int
	Time              float64
	steps             int
}

func NewAdvection(a, CFL, FinalTime, XMax float64, N, K int, flux FluxType,
	ctype CaseType, opts ...DG1D.Option) (c *Advection) {
	if XMax == 0 {
		XMax = 2 * math.Pi
	}
	VX, EToV := DG1D.SimpleMesh1D(0, XMax, K)
	opts = append(opts, DG1D.WithBoundary(DG1D.Periodic))
	c = &Advection{
		a:            a,
		CFL:          CFL,
		FinalTime:    FinalTime,
		XMax:         XMax,
		El:           DG1D.NewElements1D(N, VX, EToV, opts...),
		Case:         ctype,
		Flux:         flux,
		LimiterM:     20,
		LogFrequency: 50,
	}
	c.U = c.El.ProjectFunction(c.InitialCondition)
	return
}

func (c *Advection) InitialCondition(x float64) float64 {
	return c.Exact(x, 0)
}

// Exact evaluates the translated initial profile, wrapping around the
// periodic domain.
func (c *Advection) Exact(x, t float64) float64 {
	switch c.Case {
	case GAUSS_PULSE:
		xs := math.Mod(x-c.a*t, c.XMax)
		if xs < 0 {
			xs += c.XMax
		}
		d := xs/c.XMax - 0.5
		return math.Exp(-40 * d * d)
	default:
		return math.Sin(2 * math.Pi * (x - c.a*t) / c.XMax)
	}
}

func (c *Advection) Run() (err error) {
	var (
		el   = c.El
		xmin = el.XMin()
	)
	fmt.Printf("Linear Advection in 1 Dimension\nCase: %s\n", caseNames[c.Case])
	fmt.Printf("CFL = %8.4f, Polynomial Degree N = %d (1 is linear), Num Elements K = %d\n\n",
		c.CFL, el.Np-1, el.K)
	for c.Time < c.FinalTime {
		dt := c.CalculateDT(xmin)

		// SSP RK Stage 1
		U1 := c.U.Copy().Apply2(c.RHS(c.U), func(u0, rhs float64) (u1 float64) {
			u1 = u0 + dt*rhs
			return
		})
		if err = c.postStage(&U1, dt); err != nil {
			return
		}

		// SSP RK Stage 2
		U2 := c.U.Copy().Apply3(U1, c.RHS(U1), func(u0, u1, rhs float64) (u2 float64) {
			u2 = (3*u0 + u1 + dt*rhs) * (1. / 4.)
			return
		})
		if err = c.postStage(&U2, dt); err != nil {
			return
		}

		// SSP RK Stage 3
		c.U.Apply3(U2, c.RHS(U2), func(u0, u2, rhs float64) (u3 float64) {
			u3 = (u0 + 2*u2 + 2*dt*rhs) * (1. / 3.)
			return
		})
		if err = c.postStage(&c.U, dt); err != nil {
			return
		}

		c.Time += dt
		c.steps++
		if c.steps%c.LogFrequency == 0 {
			fmt.Printf("Time = %8.4f [%d], umin = %8.4f, umax = %8.4f\n",
				c.Time, c.steps, c.U.Min(), c.U.Max())
		}
		if c.Monitor != nil {
			c.Monitor(c.Time, map[string]utils.Matrix{"U": c.U})
		}
	}
	return
}

func (c *Advection) CalculateDT(xmin float64) (dt float64) {
	dt = c.CFL * xmin / math.Abs(c.a)
	if dt+c.Time > c.FinalTime {
		dt = c.FinalTime - c.Time
	}
	return
}

func (c *Advection) RHS(U utils.Matrix) (rhsU utils.Matrix) {
	var (
		el = c.El
		CC = math.Abs(c.a)
	)
	if c.Flux == CENTRAL {
		CC = 0
	}
	F := U.Copy().Scale(c.a)
	UM := el.FaceValues(U)
	UP := el.FaceGather(UM)
	// dF = nx.*(F_M - F_P)/2 - C/2.*(U_M - U_P)
	dF := UM.Copy().Apply3(UP, el.NX, func(um, up, nx float64) (df float64) {
		df = 0.5*nx*c.a*(um-up) - 0.5*CC*(um-up)
		return
	})
	rhsU = el.Dr.Mul(F).ElMul(el.Rx).Scale(-1).Add(el.LIFT.Mul(dF.ElMul(el.FScale)))
	return
}

func (c *Advection) postStage(U *utils.Matrix, dt float64) (err error) {
	if c.UseLimiter {
		*U = c.El.SlopeLimitN(*U, c.LimiterM)
	}
	if elem, ok := model_problems.ScanState(*U, false); !ok {
		err = &model_problems.InstabilityError{Time: c.Time + dt, Step: c.steps, Elem: elem, Field: "U"}
	}
	return
}

// Report compares the final state with the exact translated profile.
func (c *Advection) Report() (d model_problems.ConvergenceDatum) {
	var (
		el  = c.El
		Uex = el.ProjectFunction(func(x float64) float64 { return c.Exact(x, c.Time) })
	)
	d = model_problems.ConvergenceDatum{
		NumCells:  el.K,
		NumDofs:   el.K * el.Np,
		L2Error:   el.L2Norm(c.U, Uex),
		LinfError: el.LinfNorm(c.U, Uex),
	}
	return
}
