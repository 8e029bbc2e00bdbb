package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/dg1d/model_problems/Advection1D"
	"github.com/notargets/dg1d/model_problems/Euler1D"
)

func TestLimitCFL(t *testing.T) {
	// An over-limit CFL is a configuration error, not a value to correct
	_, err := LimitCFL(M_1DBurgers, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stability bound")
	CFL, err := LimitCFL(M_1DBurgers, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 0.25, CFL)
	_, err = LimitCFL(ModelType1D(7), 0.25)
	require.Error(t, err)

	CFL, XMax, N, K, Case := Defaults(M_1DEuler)
	assert.Equal(t, def_CFL[M_1DEuler], CFL)
	assert.Equal(t, def_XMAX[M_1DEuler], XMax)
	assert.Equal(t, def_N[M_1DEuler], N)
	assert.Equal(t, def_K[M_1DEuler], K)
	assert.Equal(t, 0, Case)
}

func TestNewModel1D(t *testing.T) {
	// Model selection builds the matching solver
	m1d := &Model1D{
		K: 8, N: 2, ModelRun: M_1DAdvect,
		CFL: 0.5, FinalTime: 0.1, WaveSpeed: 1,
	}
	C, err := NewModel1D(m1d)
	require.NoError(t, err)
	_, ok := C.(*Advection1D.Advection)
	require.True(t, ok)

	m1d.ModelRun = M_1DEuler
	m1d.Case = int(Euler1D.FREESTREAM)
	C, err = NewModel1D(m1d)
	require.NoError(t, err)
	e, ok := C.(*Euler1D.Euler)
	require.True(t, ok)
	assert.False(t, e.UseLimiter)

	// Limiter settings from the input file override the case default
	on := true
	m1d.Limiter = &on
	m1d.LimiterM = 5
	C, err = NewModel1D(m1d)
	require.NoError(t, err)
	e = C.(*Euler1D.Euler)
	assert.True(t, e.UseLimiter)
	assert.Equal(t, 5., e.LimiterM)
}

func TestNewModel1DRejectsBadFlags(t *testing.T) {
	// Out of range case and flux indices are rejected before any setup
	m1d := &Model1D{
		K: 8, N: 2, ModelRun: M_1DAdvect,
		CFL: 0.5, FinalTime: 0.1, WaveSpeed: 1,
	}
	m1d.Case = 5
	_, err := NewModel1D(m1d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "case 5 out of range")

	m1d.Case = 0
	m1d.Flux = 3
	_, err = NewModel1D(m1d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flux 3 out of range")

	m1d.Flux = 0
	m1d.ModelRun = ModelType1D(7)
	_, err = NewModel1D(m1d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model")

	// Burgers carries a single built-in flux
	m1d.ModelRun = M_1DBurgers
	m1d.Flux = 1
	_, err = NewModel1D(m1d)
	require.Error(t, err)
}
