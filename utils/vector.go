package utils

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (v Vector) {
	if len(dataO) != 0 {
		v = Vector{mat.NewVecDense(n, dataO[0])}
	} else {
		v = Vector{mat.NewVecDense(n, make([]float64, n))}
	}
	return
}

func NewVectorConstant(n int, val float64) (v Vector) {
	data := make([]float64, n)
	for i := range data {
		data[i] = val
	}
	return NewVector(n, data)
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }

// Chainable methods

func (v Vector) Copy() Vector {
	data := make([]float64, v.Len())
	copy(data, v.RawVector().Data)
	return NewVector(v.Len(), data)
}

func (v Vector) Set(val float64) Vector {
	var (
		data = v.RawVector().Data
	)
	for i := range data {
		data[i] = val
	}
	return v
}

func (v Vector) Scale(a float64) Vector {
	var (
		data = v.RawVector().Data
	)
	for i := range data {
		data[i] *= a
	}
	return v
}

func (v Vector) AddScalar(a float64) Vector {
	var (
		data = v.RawVector().Data
	)
	for i := range data {
		data[i] += a
	}
	return v
}

func (v Vector) Add(a Vector) Vector {
	var (
		data  = v.RawVector().Data
		dataA = a.RawVector().Data
	)
	for i := range data {
		data[i] += dataA[i]
	}
	return v
}

func (v Vector) Subtract(a Vector) Vector {
	var (
		data  = v.RawVector().Data
		dataA = a.RawVector().Data
	)
	for i := range data {
		data[i] -= dataA[i]
	}
	return v
}

func (v Vector) Mul(a Vector) Vector {
	var (
		data  = v.RawVector().Data
		dataA = a.RawVector().Data
	)
	for i := range data {
		data[i] *= dataA[i]
	}
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector {
	var (
		data = v.RawVector().Data
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

func (v Vector) POW(p int) Vector {
	var (
		data = v.RawVector().Data
	)
	for i, val := range data {
		data[i] = POW(val, p)
	}
	return v
}

// Non chainable methods

func (v Vector) Outer(a Vector) (R Matrix) {
	var (
		nr, nc = v.Len(), a.Len()
	)
	R = NewMatrix(nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.M.Set(i, j, v.AtVec(i)*a.AtVec(j))
		}
	}
	return
}

func (v Vector) Min() (min float64) {
	var (
		data = v.RawVector().Data
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	var (
		data = v.RawVector().Data
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

func (v Vector) ToMatrix() (R Matrix) {
	// Np x 1 column matrix sharing no storage with the receiver
	R = NewMatrix(v.Len(), 1, v.Copy().RawVector().Data)
	return
}
