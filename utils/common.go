package utils

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	NODETOL = 1.e-12
)

type Index []int

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		return math.Pow(x, float64(pp))
	}
	if p < 0 {
		p = -pp
		flipped = true
	}
	y = 1
	for i := 0; i < p; i++ {
		y *= x
	}
	if flipped {
		y = 1. / y
	}
	return
}

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// NewSymTriDiagonal builds a symmetric tridiagonal matrix from the main
// diagonal d0 and first off-diagonal d1, len(d1) = len(d0)-1.
func NewSymTriDiagonal(d0, d1 []float64) (J *mat.SymDense) {
	var (
		n = len(d0)
	)
	J = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		J.SetSym(i, i, d0[i])
		if i < n-1 {
			J.SetSym(i, i+1, d1[i])
		}
	}
	return
}
