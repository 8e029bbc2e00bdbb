package Burgers1D

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/dg1d/model_problems"
	"github.com/notargets/dg1d/utils"
)

func TestBurgersSmooth(t *testing.T) {
	// Before the shock forms the characteristic solution is exact. With
	// u0 = 0.5 + 0.25 sin(2 pi x), characteristics first cross at
	// t = 2/pi, so t = 0.3 is safely smooth.
	c := NewBurgers(0.2, 0.3, 0, 3, 32, SMOOTH_SINE)
	require.NoError(t, c.Run())
	d := c.Report()
	assert.Less(t, d.L2Error, 1.e-3)
	assert.InDelta(t, 0.3, c.Time, 1.e-12)
}

func TestBurgersShock(t *testing.T) {
	// Run through shock formation with the TVD limiter
	c := NewBurgers(0.2, 1.0, 0, 2, 64, SHOCK_FORMATION)
	assert.True(t, c.UseLimiter)
	total := func(U utils.Matrix) (sum float64) {
		var (
			el  = c.El
			avg = el.CellAverages(U)
			h   = el.ElementWidths()
		)
		for k := 0; k < el.K; k++ {
			sum += h.AtVec(k) * avg.AtVec(k)
		}
		return
	}
	before := total(c.U)
	require.NoError(t, c.Run())
	// The scheme is conservative and the limited solution stays within
	// the initial data range
	assert.InDelta(t, before, total(c.U), 1.e-8)
	assert.Greater(t, c.U.Min(), 0.2)
	assert.Less(t, c.U.Max(), 0.8)
}

func TestBurgersInstability(t *testing.T) {
	// A CFL far beyond the explicit stability limit must blow up and be
	// reported, not retried
	c := NewBurgers(10, 1.0, 0, 3, 32, SMOOTH_SINE)
	err := c.Run()
	require.Error(t, err)
	var ie *model_problems.InstabilityError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "U", ie.Field)
	assert.Contains(t, err.Error(), "numerical instability")
}

func TestBurgersExact(t *testing.T) {
	// At t=0 the characteristic solution is the initial condition
	c := NewBurgers(0.2, 0.3, 0, 3, 8, SMOOTH_SINE)
	for _, x := range []float64{0, 0.25, 0.5, 0.9} {
		assert.InDelta(t, c.InitialCondition(x), c.Exact(x, 0), 1.e-14)
	}
	// Characteristics translate values: u(x0 + u0*t, t) = u0(x0)
	x0, tt := 0.3, 0.2
	u0 := c.InitialCondition(x0)
	assert.InDelta(t, u0, c.Exact(x0+u0*tt, tt), 1.e-10)
}
