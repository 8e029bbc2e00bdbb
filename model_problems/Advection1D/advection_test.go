package Advection1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/dg1d/DG1D"
	"github.com/notargets/dg1d/utils"
)

func TestAdvectionRHS(t *testing.T) {
	// A constant state is an exact steady solution
	c := NewAdvection(1, 0.1, 1, 0, 2, 10, UPWIND, SINE_WAVE)
	c.U = utils.NewMatrix(c.El.Np, c.El.K).AddScalar(2)
	rhs := c.RHS(c.U)
	assert.Less(t, rhs.Apply(math.Abs).Max(), 1.e-12)
}

func TestAdvectionAccuracy(t *testing.T) {
	// u_t + u_x = 0 on [0,1], sine initial condition, N=2, K=20,
	// CFL=0.1, one full period
	{
		c := NewAdvection(1, 0.1, 1, 1, 2, 20, UPWIND, SINE_WAVE)
		require.NoError(t, c.Run())
		d := c.Report()
		assert.Equal(t, 20, d.NumCells)
		assert.Equal(t, 60, d.NumDofs)
		assert.Less(t, d.L2Error, 1.e-4)
		assert.Less(t, d.LinfError, 1.e-3)
	}
	// The central flux runs without upwind dissipation
	{
		c := NewAdvection(1, 0.1, 1, 1, 2, 20, CENTRAL, SINE_WAVE)
		require.NoError(t, c.Run())
		assert.Less(t, c.Report().L2Error, 1.e-2)
	}
	// Gauss interior nodes work through the same face extrapolation
	{
		c := NewAdvection(1, 0.1, 1, 1, 2, 20, UPWIND, SINE_WAVE,
			DG1D.WithNodeType(DG1D.Gauss))
		require.NoError(t, c.Run())
		assert.Less(t, c.Report().L2Error, 1.e-4)
	}
}

func TestAdvectionConvergence(t *testing.T) {
	// L2 errors should fall near order N+1 under h refinement at fixed
	// CFL. The minimum observed orders back off where the RK3 time error
	// starts to share the budget at higher degree.
	cases := []struct {
		N        int
		K        []int
		minOrder float64
	}{
		{1, []int{16, 32, 64}, 1.5},
		{2, []int{10, 20, 40}, 2.5},
		{3, []int{4, 8, 16}, 3.0},
	}
	for _, tc := range cases {
		var errs []float64
		for _, K := range tc.K {
			c := NewAdvection(1, 0.1, 1, 1, tc.N, K, UPWIND, SINE_WAVE)
			require.NoError(t, c.Run())
			errs = append(errs, c.Report().L2Error)
		}
		for i := 1; i < len(errs); i++ {
			order := math.Log2(errs[i-1] / errs[i])
			assert.Greater(t, order, tc.minOrder)
		}
	}
}

func TestAdvectionConservation(t *testing.T) {
	c := NewAdvection(1, 0.2, 0.5, 0, 3, 20, UPWIND, GAUSS_PULSE)
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
	assert.InDelta(t, before, total(c.U), 1.e-10)
}
