package sod_shock_tube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSodSolution(t *testing.T) {
	sample := Solution(0.2, 1)

	// Undisturbed states outside the wave fan
	rho, u, p := sample(0.05)
	assert.InDelta(t, 1., rho, 1.e-10)
	assert.InDelta(t, 0., u, 1.e-10)
	assert.InDelta(t, 1., p, 1.e-10)
	rho, u, p = sample(0.95)
	assert.InDelta(t, 0.125, rho, 1.e-10)
	assert.InDelta(t, 0.1, p, 1.e-10)

	// Post shock plateau (between contact and shock), classical values
	rho, u, p = sample(0.75)
	assert.InDelta(t, 0.26557, rho, 1.e-3)
	assert.InDelta(t, 0.92745, u, 1.e-3)
	assert.InDelta(t, 0.30313, p, 1.e-3)

	// Between rarefaction tail and contact
	rho, u, p = sample(0.6)
	assert.InDelta(t, 0.42632, rho, 1.e-3)
	assert.InDelta(t, 0.92745, u, 1.e-3)
	assert.InDelta(t, 0.30313, p, 1.e-3)

	// Pressure and velocity are continuous across the contact
	rhoL2, uL2, pL2 := sample(0.68)
	rhoR2, uR2, pR2 := sample(0.70)
	assert.InDelta(t, uL2, uR2, 1.e-6)
	assert.InDelta(t, pL2, pR2, 1.e-6)
	assert.Greater(t, rhoL2, rhoR2)

	// The rarefaction fan interpolates monotonically in density
	var last float64 = 1
	for x := 0.28; x < 0.48; x += 0.02 {
		rho, _, _ = sample(x)
		assert.LessOrEqual(t, rho, last+1.e-12)
		last = rho
	}
}

func TestEnergy(t *testing.T) {
	assert.InDelta(t, 2.5, Energy(1, 0, 1), 1.e-12)
	assert.InDelta(t, 0.1/0.4, Energy(0.125, 0, 0.1), 1.e-12)
	assert.InDelta(t, 2.5+0.5*2*9, Energy(2, 3, 1), 1.e-12)
}
