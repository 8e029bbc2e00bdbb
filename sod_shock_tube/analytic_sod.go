package sod_shock_tube

import (
	"math"
)

/*
Analytic solution of Sod's shock tube problem: left state (1, 0, 1), right
state (0.125, 0, 0.1), diaphragm at the domain midpoint, gamma = 1.4.

The post-shock pressure comes from a secant iteration on the shock tube
function; the remaining states follow from the Rankine-Hugoniot and
isentropic relations.
*/

const (
	gamma        = 1.4
	rhoL, pL, vL = 1., 1., 0.
	rhoR, pR, vR = 0.125, 0.1, 0.
)

// Solution returns a sampler for the analytic state at time t on [0, xMax]
// with the diaphragm at xMax/2. The sampler returns (rho, u, p).
func Solution(t, xMax float64) func(x float64) (rho, u, p float64) {
	var (
		x0      = 0.5 * xMax
		mu      = math.Sqrt((gamma - 1) / (gamma + 1))
		mu2     = mu * mu
		cL      = math.Sqrt(gamma * pL / rhoL)
		pPost   = fzero(sodFunc, math.Pi)
		vPost   = 2 * (math.Sqrt(gamma) / (gamma - 1)) * (1 - math.Pow(pPost, (gamma-1)/(2*gamma)))
		rhoPost = rhoR * ((pPost/pR + mu2) / (1 + mu2*(pPost/pR)))
		vShock  = vPost * (rhoPost / rhoR) / ((rhoPost / rhoR) - 1.)
		rhoMid  = rhoL * math.Pow(pPost/pL, 1./gamma)
		x1      = x0 - cL*t
		x3      = x0 + vPost*t
		x4      = x0 + vShock*t
		c2      = cL - 0.5*(gamma-1.)*vPost
		x2      = x0 + t*(vPost-c2)
	)
	return func(x float64) (rho, u, p float64) {
		switch {
		case x < x1:
			rho, p, u = rhoL, pL, vL
		case x <= x2:
			c := mu2*((x0-x)/t) + (1.-mu2)*cL
			rho = rhoL * math.Pow(c/cL, 2/(gamma-1))
			p = pL * math.Pow(rho/rhoL, gamma)
			u = (1. - mu2) * ((-(x0 - x) / t) + cL)
		case x <= x3:
			rho, p, u = rhoMid, pPost, vPost
		case x <= x4:
			rho, p, u = rhoPost, pPost, vPost
		default:
			rho, p, u = rhoR, pR, vR
		}
		return
	}
}

// Energy closes the conserved total energy from the sampled primitives.
func Energy(rho, u, p float64) float64 {
	return p/(gamma-1.) + 0.5*rho*u*u
}

func fzero(f func(p float64) (y float64), start float64) float64 {
	var (
		tol = 0.0000001
		res float64
	)
	startOld := start / 2
	res = f(startOld)
	for math.Abs(res) > tol {
		resNew := f(start)
		deriv := (start - startOld) / (resNew - res)
		startNew := math.Abs(start - 0.01*f(start)/deriv)
		startOld = start
		start = startNew
		res = resNew
	}
	return start
}

func sodFunc(p float64) (y float64) {
	var (
		mu  = math.Sqrt((gamma - 1) / (gamma + 1))
		mu2 = mu * mu
	)
	y = (p-pR)*math.Sqrt((1-mu2)/(rhoR*(p+mu2*pR))) -
		2*(math.Sqrt(gamma)/(gamma-1))*(1-math.Pow(p, (gamma-1)/(2*gamma)))
	return
}
