package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var goodYAML = `
Title: "Sod at t=0.2"
Model: euler
Case: sod
FluxType: roe
NodeType: GLL
PolynomialOrder: 2
NumElements: 200
CFL: 0.75
FinalTime: 0.2
Limiter: true
LimiterM: 20
`

func TestParse(t *testing.T) {
	ip := &InputParameters1D{}
	require.NoError(t, ip.Parse([]byte(goodYAML)))
	assert.Equal(t, "euler", ip.Model)
	assert.Equal(t, "sod", ip.Case)
	assert.Equal(t, "roe", ip.FluxType)
	assert.Equal(t, 2, ip.PolynomialOrder)
	assert.Equal(t, 200, ip.NumElements)
	assert.Equal(t, 0.75, ip.CFL)
	assert.Equal(t, 0.2, ip.FinalTime)
	require.NotNil(t, ip.Limiter)
	assert.True(t, *ip.Limiter)
	assert.Equal(t, 20., ip.LimiterM)
	assert.NoError(t, ip.Validate(1))
}

func TestValidate(t *testing.T) {
	base := func() *InputParameters1D {
		ip := &InputParameters1D{}
		require.NoError(t, ip.Parse([]byte(goodYAML)))
		return ip
	}
	// All rejections happen before any time stepping
	{
		ip := base()
		ip.Model = "navier-stokes"
		err := ip.Validate(1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown model")
	}
	{
		ip := base()
		ip.Case = "vortex"
		err := ip.Validate(1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown case")
	}
	{
		ip := base()
		ip.FluxType = "hllc"
		err := ip.Validate(1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown flux type")
	}
	{
		ip := base()
		ip.NodeType = "chebyshev"
		err := ip.Validate(1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown node type")
	}
	{
		ip := base()
		ip.PolynomialOrder = 0
		assert.Error(t, ip.Validate(1))
	}
	{
		ip := base()
		ip.NumElements = 0
		assert.Error(t, ip.Validate(1))
	}
	{
		ip := base()
		ip.CFL = -0.5
		assert.Error(t, ip.Validate(1))
	}
	{
		ip := base()
		ip.CFL = 2
		err := ip.Validate(1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stability bound")
	}
	{
		ip := base()
		ip.FinalTime = -1
		assert.Error(t, ip.Validate(1))
	}
	{
		ip := base()
		ip.Gamma = 0.9
		err := ip.Validate(1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gamma must exceed 1")
	}
	// The shock tube reference is fixed at gamma 1.4
	{
		ip := base()
		ip.Gamma = 5. / 3.
		err := ip.Validate(1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires gamma 1.4")
	}
	{
		ip := base()
		ip.Case = "densitywave"
		ip.Gamma = 5. / 3.
		assert.NoError(t, ip.Validate(1))
	}
	// Omitted optional fields are accepted
	{
		ip := &InputParameters1D{
			Model:           "advection",
			PolynomialOrder: 3,
			NumElements:     20,
			CFL:             0.5,
			FinalTime:       1,
		}
		assert.NoError(t, ip.Validate(1))
	}
}
