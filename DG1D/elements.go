package DG1D

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/notargets/dg1d/utils"
)

type NodeType uint8

const (
	// GaussLobatto includes the element endpoints in the nodal set
	GaussLobatto NodeType = iota
	// Gauss uses interior Gauss points; endpoint values are interpolated
	Gauss
)

func (nt NodeType) String() string {
	switch nt {
	case Gauss:
		return "Gauss-Legendre"
	default:
		return "Gauss-Lobatto-Legendre"
	}
}

type BCType uint8

const (
	Periodic BCType = iota
	Physical
)

/*
Elements1D carries the mesh, the nodal basis and the elemental operators for
a 1D domain split into K elements of degree N.

Solution storage convention: an Np x K matrix, one column per element, one
row per interior node. Face storage convention: a 2 x K matrix, row 0 holding
the left (r=-1) face of each element, row 1 the right (r=+1) face.
*/
type Elements1D struct {
	K, Np, Nfp, NFaces int
	VX                 utils.Vector // Vertex coordinates, K+1
	EToV               utils.Matrix // Element to vertex connectivity, K x 2
	EToE, EToF         utils.Matrix // Element to (element, face) connectivity, K x 2
	R, W               utils.Vector // Reference nodes and quadrature weights
	X                  utils.Matrix // Physical node coordinates, Np x K
	Dr, Rx             utils.Matrix // Derivative operator, geometric factor
	FScale, NX         utils.Matrix // Inverse face Jacobian, outward normals, 2 x K
	V, Vinv            utils.Matrix // Vandermonde matrix and inverse
	Vf                 utils.Matrix // Interpolation to the faces r = -1, +1, 2 x Np
	LIFT               utils.Matrix // Face-to-volume lift, Np x 2
	MassMatrix         utils.Matrix // Reference mass matrix (V Vt)^-1
	RG, WG             utils.Vector // Gauss rule for the L2 projection
	XG                 utils.Matrix // Physical Gauss point coordinates, Np x K
	Proj               utils.Matrix // L2 projection from Gauss point samples, Np x Np
	Nodes              NodeType
	BC                 BCType
}

type Option func(el *Elements1D)

func WithNodeType(nt NodeType) Option {
	return func(el *Elements1D) { el.Nodes = nt }
}

func WithBoundary(bc BCType) Option {
	return func(el *Elements1D) { el.BC = bc }
}

// SimpleMesh1D builds K equal-width elements covering [xmin, xmax].
func SimpleMesh1D(xmin, xmax float64, K int) (VX utils.Vector, EToV utils.Matrix) {
	VX = utils.NewVector(K + 1)
	vxD := VX.RawVector().Data
	for i := range vxD {
		vxD[i] = xmin + (xmax-xmin)*float64(i)/float64(K)
	}
	EToV = utils.NewMatrix(K, 2)
	for k := 0; k < K; k++ {
		EToV.Set(k, 0, float64(k))
		EToV.Set(k, 1, float64(k+1))
	}
	return
}

func NewElements1D(N int, VX utils.Vector, EToV utils.Matrix, opts ...Option) (el *Elements1D) {
	var (
		K, _ = EToV.Dims()
	)
	if N < 1 {
		panic(fmt.Errorf("polynomial degree must be at least 1, have %d", N))
	}
	if K < 1 {
		panic(fmt.Errorf("element count must be positive, have %d", K))
	}
	el = &Elements1D{
		K:      K,
		Np:     N + 1,
		Nfp:    1,
		NFaces: 2,
		VX:     VX,
		EToV:   EToV,
		Nodes:  GaussLobatto,
		BC:     Periodic,
	}
	for _, opt := range opts {
		opt(el)
	}
	el.Startup1D()
	return
}

func (el *Elements1D) Startup1D() {
	var (
		err error
		N   = el.Np - 1
	)
	switch el.Nodes {
	case Gauss:
		el.R, _ = JacobiGQ(0, 0, N)
	default:
		el.R = JacobiGL(0, 0, N)
	}
	el.V = Vandermonde1D(N, el.R)
	if el.Vinv, err = el.V.Inverse(); err != nil {
		panic("error inverting V")
	}
	Vr := GradVandermonde1D(el.R, N)
	el.Dr = Vr.Mul(el.Vinv)

	if el.MassMatrix, err = el.V.Mul(el.V.Transpose()).Inverse(); err != nil {
		panic("error inverting V*Vt")
	}
	// Quadrature weights are the lumped mass matrix: w_i = integral of the
	// i-th Lagrange interpolant, which the nodal rule integrates exactly
	el.W = el.MassMatrix.SumRows()

	// Boundary interpolation: modal values at r = -1, +1 through Vinv
	rEnds := utils.NewVector(2, []float64{-1, 1})
	el.Vf = Vandermonde1D(N, rEnds).Mul(el.Vinv)

	el.LIFT = el.V.Mul(el.V.Transpose()).Mul(el.Vf.Transpose())

	el.NX = utils.NewMatrix(2, el.K)
	for k := 0; k < el.K; k++ {
		el.NX.Set(0, k, -1)
		el.NX.Set(1, k, 1)
	}

	// x = VX(va) + 0.5*(r+1)*(VX(vb)-VX(va))
	el.X = utils.NewMatrix(el.Np, el.K)
	for k := 0; k < el.K; k++ {
		va := el.VX.AtVec(int(el.EToV.At(k, 0)))
		vb := el.VX.AtVec(int(el.EToV.At(k, 1)))
		for i := 0; i < el.Np; i++ {
			el.X.Set(i, k, va+0.5*(el.R.AtVec(i)+1)*(vb-va))
		}
	}

	J := el.Dr.Mul(el.X)
	el.Rx = J.Copy().POW(-1)
	el.FScale = el.Vf.Mul(J).POW(-1)

	// The projection quadrature must integrate degree 2N exactly, which the
	// lumped Lobatto rule (degree 2N-1) cannot: the Np point Gauss rule can
	el.RG, el.WG = JacobiGQ(0, 0, N)
	el.XG = utils.NewMatrix(el.Np, el.K)
	for k := 0; k < el.K; k++ {
		va := el.VX.AtVec(int(el.EToV.At(k, 0)))
		vb := el.VX.AtVec(int(el.EToV.At(k, 1)))
		for i := 0; i < el.Np; i++ {
			el.XG.Set(i, k, va+0.5*(el.RG.AtVec(i)+1)*(vb-va))
		}
	}
	wgDiag := utils.NewMatrix(el.Np, el.Np)
	for i := 0; i < el.Np; i++ {
		wgDiag.Set(i, i, el.WG.AtVec(i))
	}
	el.Proj = el.V.Mul(Vandermonde1D(N, el.RG).Transpose()).Mul(wgDiag)

	el.Connect1D()
	return
}

// Connect1D builds element-to-element and element-to-face connectivity from
// the shared vertices. Unmatched domain end faces self-connect, then the
// periodic option closes them across the domain.
func (el *Elements1D) Connect1D() {
	var (
		NFaces     = el.NFaces
		K          = el.K
		Nv         = K + 1
		TotalFaces = NFaces * K
	)
	SpFToVTmp := sparse.NewDOK(TotalFaces, Nv)
	var sk int
	for k := 0; k < K; k++ {
		for face := 0; face < NFaces; face++ {
			SpFToVTmp.Set(sk, int(el.EToV.At(k, face)), 1)
			sk++
		}
	}
	SpFToF := sparse.NewCSR(TotalFaces, TotalFaces, nil, nil, nil)
	SpFToV := SpFToVTmp.ToCSR()
	SpFToF.Mul(SpFToV, SpFToV.T())

	// Default self-connectivity, overwritten for interior faces
	el.EToE = utils.NewMatrix(K, NFaces)
	el.EToF = utils.NewMatrix(K, NFaces)
	for k := 0; k < K; k++ {
		for f := 0; f < NFaces; f++ {
			el.EToE.Set(k, f, float64(k))
			el.EToF.Set(k, f, float64(f))
		}
	}
	for i := 0; i < TotalFaces; i++ {
		for j := 0; j < TotalFaces; j++ {
			if i != j && SpFToF.At(i, j) == 1 {
				k1, f1 := i/NFaces, i%NFaces
				k2, f2 := j/NFaces, j%NFaces
				el.EToE.Set(k1, f1, float64(k2))
				el.EToF.Set(k1, f1, float64(f2))
			}
		}
	}
	if el.BC == Periodic {
		el.EToE.Set(0, 0, float64(K-1))
		el.EToF.Set(0, 0, 1)
		el.EToE.Set(K-1, 1, 0)
		el.EToF.Set(K-1, 1, 0)
	}
	return
}

// FaceValues extrapolates the nodal solution to the element faces, 2 x K.
// For Gauss-Lobatto nodes this picks out the endpoint values.
func (el *Elements1D) FaceValues(U utils.Matrix) utils.Matrix {
	return el.Vf.Mul(U)
}

// FaceGather forms the neighbor-side face values from the owner-side face
// values. At self-connected (physical boundary) faces the owner value is
// copied; solvers overwrite those entries with boundary states.
func (el *Elements1D) FaceGather(UM utils.Matrix) (UP utils.Matrix) {
	UP = utils.NewMatrix(2, el.K)
	for k := 0; k < el.K; k++ {
		for f := 0; f < 2; f++ {
			k2 := int(el.EToE.At(k, f))
			f2 := int(el.EToF.At(k, f))
			UP.Set(f, k, UM.At(f2, k2))
		}
	}
	return
}

// ProjectFunction maps a scalar function of x into the nodal representation
// by L2 projection, sampling f at the Gauss points of each element.
func (el *Elements1D) ProjectFunction(f func(x float64) float64) (U utils.Matrix) {
	U = el.Proj.Mul(el.XG.Copy().Apply(f))
	return
}

// CellAverages returns the per-element solution average, length K.
func (el *Elements1D) CellAverages(U utils.Matrix) (avg utils.Vector) {
	avg = utils.NewVector(el.K)
	avgD := avg.RawVector().Data
	for k := 0; k < el.K; k++ {
		var sum float64
		for i := 0; i < el.Np; i++ {
			sum += el.W.AtVec(i) * U.At(i, k)
		}
		avgD[k] = 0.5 * sum
	}
	return
}

// ElementWidths returns h_k per element, length K.
func (el *Elements1D) ElementWidths() (h utils.Vector) {
	h = utils.NewVector(el.K)
	hD := h.RawVector().Data
	for k := 0; k < el.K; k++ {
		va := el.VX.AtVec(int(el.EToV.At(k, 0)))
		vb := el.VX.AtVec(int(el.EToV.At(k, 1)))
		hD[k] = vb - va
	}
	return
}

// XMin returns the minimum distance between adjacent nodes, the length scale
// for the CFL time step.
func (el *Elements1D) XMin() (xmin float64) {
	xmin = el.X.At(1, 0) - el.X.At(0, 0)
	for k := 0; k < el.K; k++ {
		for i := 1; i < el.Np; i++ {
			if d := el.X.At(i, k) - el.X.At(i-1, k); d < xmin {
				xmin = d
			}
		}
	}
	return
}
