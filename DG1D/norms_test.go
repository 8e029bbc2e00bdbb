package DG1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/dg1d/utils"
)

func TestNorms(t *testing.T) {
	K := 4
	VX, EToV := SimpleMesh1D(0, 2, K)
	el := NewElements1D(3, VX, EToV)

	// L2 norm of a constant over [0,2] is c*sqrt(2)
	U := utils.NewMatrix(el.Np, el.K).AddScalar(3)
	Z := utils.NewMatrix(el.Np, el.K)
	assert.InDelta(t, 3*math.Sqrt(2), el.L2Norm(U, Z), 1.e-12)
	assert.InDelta(t, 3, el.LinfNorm(U, Z), 1.e-12)

	// Zero distance to itself
	S := el.ProjectFunction(math.Sin)
	assert.InDelta(t, 0, el.L2Norm(S, S.Copy()), 1.e-14)

	// L2 norm of x over [0,2] is sqrt(8/3)
	assert.InDelta(t, math.Sqrt(8./3.), el.L2Norm(el.X, Z), 1.e-12)
}
