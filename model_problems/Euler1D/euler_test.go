package Euler1D

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/dg1d/model_problems"
	"github.com/notargets/dg1d/utils"
)

func TestState(t *testing.T) {
	// Stationary left Sod state: E = p/(gamma-1)
	{
		s := NewStateP(1.4, 1, 0, 1)
		assert.True(t, near(s.Ener, 2.5))
		assert.Equal(t, 0., s.RhoF)
		assert.True(t, near(s.RhoUF, 1)) // 2q + p = p for u = 0
		assert.Equal(t, 0., s.EnerF)
	}
	// Moving state round trips through NewState
	{
		s := NewStateP(1.4, 2, 1, 3)
		s2 := NewState(1.4, s.Rho, s.RhoU, s.Ener)
		assert.True(t, near(s2.RhoUF, s.RhoUF))
		assert.True(t, near(s2.EnerF, s.EnerF))
	}
	// NodeFlux against hand computed values
	{
		fs := NewFieldState(1.4)
		f1, f2, f3, u, p, lm := fs.NodeFlux(1, 0, 2.5)
		assert.Equal(t, 0., f1)
		assert.True(t, near(f2, 1))
		assert.Equal(t, 0., f3)
		assert.Equal(t, 0., u)
		assert.True(t, near(p, 1))
		assert.True(t, near(lm, math.Sqrt(1.4)))
	}
	// Field update agrees with the nodal path
	{
		fs := NewFieldState(1.4)
		Rho := utils.NewMatrix(1, 1).AddScalar(2)
		RhoU := utils.NewMatrix(1, 1).AddScalar(1)
		Ener := utils.NewMatrix(1, 1).AddScalar(3)
		fs.Update(Rho, RhoU, Ener)
		_, _, _, u, p, lm := fs.NodeFlux(2, 1, 3)
		assert.True(t, near(fs.U.At(0, 0), u))
		assert.True(t, near(fs.Pres.At(0, 0), p))
		assert.True(t, near(fs.LM.At(0, 0), lm))
	}
}

func TestFluxConsistency(t *testing.T) {
	// Both numerical fluxes reduce to the physical flux for equal states
	c := NewEuler(0.5, 0.1, 0, 2, 10, LAX_FLUX, FREESTREAM)
	u := [3]float64{1, 0.5, 2.625}
	f1, f2, f3, _, _, _ := c.State.NodeFlux(u[0], u[1], u[2])
	for _, nx := range []float64{-1, 1} {
		l1, l2, l3 := c.LaxFlux(u, u, nx)
		assert.True(t, near(l1, f1))
		assert.True(t, near(l2, f2))
		assert.True(t, near(l3, f3))
		r1, r2, r3 := c.RoeFlux(u, u, nx)
		assert.True(t, near(r1, f1))
		assert.True(t, near(r2, f2))
		assert.True(t, near(r3, f3))
	}
	// Fully supersonic interface: all eigenvalues positive, so the Roe flux
	// must upwind to the exact left-state flux
	{
		sL := NewStateP(1.4, 1, 3, 1)
		sR := NewStateP(1.4, 0.9, 2.79, 1.1)
		uL := [3]float64{sL.Rho, sL.RhoU, sL.Ener}
		uR := [3]float64{sR.Rho, sR.RhoU, sR.Ener}
		f1, f2, f3, _, _, _ := c.State.NodeFlux(uL[0], uL[1], uL[2])
		r1, r2, r3 := c.RoeFlux(uL, uR, 1)
		assert.True(t, near(r1, f1))
		assert.True(t, near(r2, f2))
		assert.True(t, near(r3, f3))
		// Mirrored orientation upwinds the same way
		r1, r2, r3 = c.RoeFlux(uR, uL, -1)
		assert.True(t, near(r1, f1))
		assert.True(t, near(r2, f2))
		assert.True(t, near(r3, f3))
	}
}

func TestGamma(t *testing.T) {
	// The ratio of specific heats threads through the state and the ICs
	c := NewEuler(0.5, 0.1, 0, 2, 8, LAX_FLUX, DENSITY_WAVE, WithGamma(5./3.))
	assert.True(t, near(c.Gamma, 5./3.))
	assert.True(t, near(c.State.Gamma, 5./3.))
	// Density wave closure: E = 1/(gamma-1) + rho/2 with p = 1, u = 1
	assert.True(t, near(c.Ener.At(0, 0), 1./(5./3.-1.)+0.5*c.Rho.At(0, 0)))
}

func TestFreestream(t *testing.T) {
	// A uniform flow field must stay uniform to rounding, which accumulates
	// over the run
	for _, flux := range []FluxType{LAX_FLUX, ROE_FLUX} {
		c := NewEuler(0.5, 0.1, 0, 2, 10, flux, FREESTREAM)
		require.NoError(t, c.Run())
		assert.Less(t, c.Rho.Copy().AddScalar(-1).Apply(math.Abs).Max(), 1.e-11)
		assert.Less(t, c.RhoU.Copy().Apply(math.Abs).Max(), 1.e-11)
		d := c.Report()
		assert.Less(t, d.L2Error, 1.e-11)
	}
}

func TestDensityWave(t *testing.T) {
	// Smooth periodic density transport against the exact translation
	for _, flux := range []FluxType{LAX_FLUX, ROE_FLUX} {
		c := NewEuler(0.3, 0.3, 0, 3, 32, flux, DENSITY_WAVE)
		require.NoError(t, c.Run())
		d := c.Report()
		assert.Less(t, d.L2Error, 1.e-3)
	}
}

func TestSodTube(t *testing.T) {
	for _, flux := range []FluxType{LAX_FLUX, ROE_FLUX} {
		c := NewEuler(0.5, 0.2, 0, 2, 100, flux, SOD_TUBE)
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
		mass0 := total(c.Rho)
		require.NoError(t, c.Run())
		// No mass enters before the waves reach the ends
		assert.InDelta(t, mass0, total(c.Rho), 1.e-8)
		// Density stays between the right and left states
		assert.Greater(t, c.Rho.Min(), 0.1)
		assert.Less(t, c.Rho.Max(), 1.05)
		d := c.Report()
		assert.Less(t, d.L2Error, 0.1)
	}
}

func TestPositivityScan(t *testing.T) {
	c := NewEuler(0.5, 0.1, 0, 2, 10, LAX_FLUX, FREESTREAM)
	c.Rho.Set(0, 3, -1)
	err := c.postStage(&c.Rho, &c.RhoU, &c.Ener, 0)
	require.Error(t, err)
	var ie *model_problems.InstabilityError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "Rho", ie.Field)
	assert.Equal(t, 3, ie.Elem)
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Abs(a) {
		l = true
	}
	return
}
