package DG1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinmod(t *testing.T) {
	assert.Equal(t, 1., minmod(1, 2, 3))
	assert.Equal(t, -1., minmod(-1, -2, -3))
	assert.Equal(t, 0., minmod(1, -1, 2))
	assert.Equal(t, 0., minmod(0, 1, 2))
	// TVB: small first argument passes through unlimited
	assert.Equal(t, 0.5, minmodB(10, 1, 0.5, -1, -1))
	assert.Equal(t, 0., minmodB(0, 1, 0.5, -1, -1))
}

func TestSlopeLimitN(t *testing.T) {
	// A step profile is limited without changing the cell averages
	{
		K := 8
		N := 3
		VX, EToV := SimpleMesh1D(0, 1, K)
		el := NewElements1D(N, VX, EToV)
		// Jump inside an element so the projection rings
		U := el.ProjectFunction(func(x float64) float64 {
			if x < 0.45 {
				return 1
			}
			return 0
		})
		avg0 := el.CellAverages(U)
		ULim := el.SlopeLimitN(U, 0)
		avg1 := el.CellAverages(ULim)
		for k := 0; k < K; k++ {
			assert.InDelta(t, avg0.AtVec(k), avg1.AtVec(k), 1.e-13)
		}
		// Strict TVD limiting removes the Gibbs overshoot
		assert.Greater(t, U.Max(), 1.001)
		assert.Less(t, ULim.Max(), 1.+1.e-10)
		assert.Greater(t, ULim.Min(), -1.e-10)
		// Elements away from the jump carry over bit for bit
		for i := 0; i < el.Np; i++ {
			assert.Equal(t, U.At(i, 0), ULim.At(i, 0))
			assert.Equal(t, U.At(i, K-1), ULim.At(i, K-1))
		}
	}
	// Interior linear data is untouched
	{
		K := 8
		N := 2
		VX, EToV := SimpleMesh1D(0, 1, K)
		el := NewElements1D(N, VX, EToV, WithBoundary(Physical))
		U := el.X.Copy().Scale(2).AddScalar(1)
		ULim := el.SlopeLimitN(U, 0)
		for k := 1; k < K-1; k++ {
			for i := 0; i < el.Np; i++ {
				assert.InDelta(t, U.At(i, k), ULim.At(i, k), 1.e-12)
			}
		}
	}
	// TVB threshold leaves a smooth extremum alone where TVD would clip it
	{
		K := 8
		N := 3
		VX, EToV := SimpleMesh1D(0, 2*math.Pi, K)
		el := NewElements1D(N, VX, EToV)
		U := el.ProjectFunction(math.Sin)
		ULim := el.SlopeLimitN(U, 50)
		diff := ULim.Subtract(U).Apply(math.Abs)
		assert.Less(t, diff.Max(), 1.e-12)
	}
}
