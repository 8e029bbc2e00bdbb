package Burgers1D

import (
	"fmt"
	"math"

	"github.com/notargets/dg1d/DG1D"
	"github.com/notargets/dg1d/model_problems"
	"github.com/notargets/dg1d/utils"
)

type CaseType uint8

const (
	SMOOTH_SINE CaseType = iota
	SHOCK_FORMATION
)

var caseNames = []string{
	"Smooth Sine",
	"Shock Formation",
}

// Burgers solves u_t + (u^2/2)_x = 0 on a periodic domain [0, XMax] with a
// Rusanov (local Lax-Friedrichs) interface flux. The wave speed estimate
// takes the maximum over both sides of each interface.
type Burgers struct {
	// Input parameters
	CFL, FinalTime float64
	XMax           float64
	El             *DG1D.Elements1D
	U              utils.Matrix
	Case           CaseType
	UseLimiter     bool
	LimiterM       float64
	Monitor        model_problems.Monitor
	LogFrequency   int
	Time           float64
	steps          int
}

func NewBurgers(CFL, FinalTime, XMax float64, N, K int, ctype CaseType,
	opts ...DG1D.Option) (c *Burgers) {
	if XMax == 0 {
		XMax = 1
	}
	VX, EToV := DG1D.SimpleMesh1D(0, XMax, K)
	opts = append(opts, DG1D.WithBoundary(DG1D.Periodic))
	c = &Burgers{
		CFL:          CFL,
		FinalTime:    FinalTime,
		XMax:         XMax,
		El:           DG1D.NewElements1D(N, VX, EToV, opts...),
		Case:         ctype,
		UseLimiter:   ctype == SHOCK_FORMATION,
		LimiterM:     0,
		LogFrequency: 50,
	}
	c.U = c.El.ProjectFunction(c.InitialCondition)
	return
}

func (c *Burgers) InitialCondition(x float64) float64 {
	return 0.5 + 0.25*math.Sin(2*math.Pi*x/c.XMax)
}

// Exact follows the characteristics u = u0(x - u t) by fixed point
// iteration. Valid before shock formation; afterwards the iteration does not
// converge and the result is only indicative.
func (c *Burgers) Exact(x, t float64) (u float64) {
	u = c.InitialCondition(x)
	for i := 0; i < 100; i++ {
		un := c.InitialCondition(x - u*t)
		if math.Abs(un-u) < 1.e-14 {
			return un
		}
		u = un
	}
	return
}

func (c *Burgers) Run() (err error) {
	var (
		el   = c.El
		xmin = el.XMin()
	)
	fmt.Printf("Burgers Equation in 1 Dimension\nCase: %s\n", caseNames[c.Case])
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

func (c *Burgers) CalculateDT(xmin float64) (dt float64) {
	maxvel := math.Max(c.U.Copy().Apply(math.Abs).Max(), 1.e-12)
	dt = c.CFL * xmin / maxvel
	if dt+c.Time > c.FinalTime {
		dt = c.FinalTime - c.Time
	}
	return
}

func (c *Burgers) RHS(U utils.Matrix) (rhsU utils.Matrix) {
	var (
		el = c.El
	)
	F := U.Copy().Apply(func(u float64) float64 { return 0.5 * u * u })
	UM := el.FaceValues(U)
	UP := el.FaceGather(UM)
	// Rusanov: dF = nx.*(F_M - F_P)/2 - max(|u_M|,|u_P|)/2.*(U_M - U_P)
	dF := UM.Copy().Apply3(UP, el.NX, func(um, up, nx float64) (df float64) {
		lf := math.Max(math.Abs(um), math.Abs(up))
		df = 0.25*nx*(um*um-up*up) - 0.5*lf*(um-up)
		return
	})
	rhsU = el.Dr.Mul(F).ElMul(el.Rx).Scale(-1).Add(el.LIFT.Mul(dF.ElMul(el.FScale)))
	return
}

func (c *Burgers) postStage(U *utils.Matrix, dt float64) (err error) {
	if c.UseLimiter {
		*U = c.El.SlopeLimitN(*U, c.LimiterM)
	}
	if elem, ok := model_problems.ScanState(*U, false); !ok {
		err = &model_problems.InstabilityError{Time: c.Time + dt, Step: c.steps, Elem: elem, Field: "U"}
	}
	return
}

// Report compares the final state with the characteristic solution. Only
// meaningful before shock formation.
func (c *Burgers) Report() (d model_problems.ConvergenceDatum) {
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
