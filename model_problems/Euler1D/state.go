package Euler1D

import (
	"fmt"
	"math"

	"github.com/notargets/dg1d/utils"
)

// FieldState holds the derived flow quantities for the whole mesh, updated
// once per time step from the conserved variables.
type FieldState struct {
	Gamma            float64
	U, Q, Pres, CVel utils.Matrix
	LM               utils.Matrix // max characteristic speed |u| + c
}

func NewFieldState(gamma float64) (fs *FieldState) {
	return &FieldState{Gamma: gamma}
}

// Update recomputes the derived quantities from the conserved variables.
func (fs *FieldState) Update(Rho, RhoU, Ener utils.Matrix) {
	fs.U = RhoU.Copy().ElDiv(Rho) // Velocity
	fs.Q = fs.U.Copy().Apply2(Rho, func(u, rho float64) (q float64) {
		q = 0.5 * u * u * rho
		return
	})
	// (gamma-1)*(Ener - 0.5*(rhou)^2/rho)
	fs.Pres = Ener.Copy().Apply2(fs.Q, func(e, q float64) (p float64) {
		p = (e - q) * (fs.Gamma - 1)
		return
	})
	// sqrt(gamma*pres/rho)
	fs.CVel = fs.Pres.Copy().Apply2(Rho, func(p, rho float64) (cvel float64) {
		cvel = math.Sqrt(fs.Gamma * p / rho)
		return
	})
	// abs(rhou/rho) + cvel
	fs.LM = fs.U.Copy().Apply2(fs.CVel, func(u, cvel float64) (lm float64) {
		lm = math.Abs(u) + cvel
		return
	})
}

// Flux returns the physical flux of each conserved variable over the whole
// mesh.
func (fs *FieldState) Flux(Rho, RhoU, Ener utils.Matrix) (RhoF, RhoUF, EnerF utils.Matrix) {
	RhoF = RhoU.Copy()
	RhoUF = RhoU.Copy().Apply2(Rho, func(rhou, rho float64) float64 {
		return rhou * rhou / rho
	}).Apply3(Ener, Rho, func(rhou2, ener, rho float64) float64 {
		return rhou2 + (fs.Gamma-1)*(ener-0.5*rhou2)
	})
	EnerF = Ener.Copy().Apply3(Rho, RhoU, func(ener, rho, rhou float64) (enerf float64) {
		u := rhou / rho
		p := (fs.Gamma - 1) * (ener - 0.5*u*rhou)
		enerf = u * (ener + p)
		return
	})
	return
}

// NodeFlux evaluates the physical flux and derived quantities for a single
// conserved state.
func (fs *FieldState) NodeFlux(rho, rhou, ener float64) (f1, f2, f3, u, p, lm float64) {
	u = rhou / rho
	q := 0.5 * u * rhou
	p = (fs.Gamma - 1) * (ener - q)
	cvel := math.Sqrt(fs.Gamma * p / rho)
	lm = math.Abs(u) + cvel
	f1 = rhou
	f2 = 2*q + p
	f3 = u * (ener + p)
	return
}

// State is a single constant flow state with its fluxes, used for boundary
// and initial conditions.
type State struct {
	Gamma, Rho, RhoU, Ener float64
	RhoF, RhoUF, EnerF     float64
}

func NewState(gamma, rho, rhoU, ener float64) (s *State) {
	q := 0.5 * rhoU * rhoU / rho
	p := (ener - q) * (gamma - 1.)
	u := rhoU / rho
	return &State{
		Gamma: gamma,
		Rho:   rho,
		RhoU:  rhoU,
		Ener:  ener,
		RhoF:  rhoU,
		RhoUF: 2*q + p,
		EnerF: (ener + p) * u,
	}
}

// NewStateP builds a State from primitive pressure instead of total energy.
func NewStateP(gamma, rho, rhoU, p float64) *State {
	q := 0.5 * rhoU * rhoU / rho
	ener := p/(gamma-1.) + q
	return NewState(gamma, rho, rhoU, ener)
}

func (s *State) Print() (o string) {
	o = fmt.Sprintf("Rho = %v\nP = %v\nE = %v\nRhoU = %v\nRhoUF = %v\n",
		s.Rho, (s.Ener-0.5*s.RhoU*s.RhoU/s.Rho)*(s.Gamma-1.), s.Ener, s.RhoU, s.RhoUF)
	return
}
