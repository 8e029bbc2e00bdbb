package DG1D

import (
	"math"

	"github.com/notargets/dg1d/utils"
)

// minmod returns the smallest-magnitude argument when all arguments share a
// sign, zero otherwise.
func minmod(vals ...float64) (r float64) {
	var (
		s float64
	)
	for _, val := range vals {
		s += sign(val)
	}
	s /= float64(len(vals))
	if math.Abs(s) != 1 {
		return 0
	}
	r = math.Abs(vals[0])
	for _, val := range vals[1:] {
		r = math.Min(r, math.Abs(val))
	}
	return s * r
}

// minmodB is the TVB-corrected minmod: the first argument passes through
// unlimited when it is below the M*h^2 threshold (Cockburn-Shu).
func minmodB(M, h float64, vals ...float64) float64 {
	if math.Abs(vals[0]) <= M*h*h {
		return vals[0]
	}
	return minmod(vals...)
}

func sign(a float64) float64 {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	}
	return 0
}

/*
SlopeLimitN applies TVB minmod slope limiting to the solution field U.

Elements whose boundary-extrapolated values deviate from the minmod
reconstruction built on neighbor cell averages are rebuilt as a limited
linear polynomial. The rebuild happens in modal space: mode 0 is carried
over untouched, so the cell average is preserved bit for bit; mode 1 is set
from the limited slope and all higher modes are zeroed.

M is the TVB threshold constant; M = 0 recovers strict TVD minmod.
*/
func (el *Elements1D) SlopeLimitN(U utils.Matrix, M float64) (ULim utils.Matrix) {
	var (
		eps0 = 1.0e-8
		K    = el.K
		h    = el.ElementWidths()
	)
	// Linear truncation of the modal expansion
	Uh := el.Vinv.Mul(U)
	Ul := Uh.Copy()
	for m := 2; m < el.Np; m++ {
		for k := 0; k < K; k++ {
			Ul.Set(m, k, 0)
		}
	}

	v := el.CellAverages(U)
	vkm1, vkp1 := el.neighborAverages(v)

	// Boundary-extrapolated end values of each element
	UF := el.FaceValues(U)

	var flagged utils.Index
	for k := 0; k < K; k++ {
		var (
			vk       = v.AtVec(k)
			ue1, ue2 = UF.At(0, k), UF.At(1, k)
			dm       = vk - vkm1.AtVec(k)
			dp       = vkp1.AtVec(k) - vk
			hk       = h.AtVec(k)
		)
		ve1 := vk - minmodB(M, hk, vk-ue1, dm, dp)
		ve2 := vk + minmodB(M, hk, ue2-vk, dm, dp)
		if math.Abs(ve1-ue1) > eps0 || math.Abs(ve2-ue2) > eps0 {
			flagged = append(flagged, k)
			continue
		}
		// Interior ringing can leave the endpoint reconstructions clean, so
		// also flag nodal values outside the local cell average bounds
		lo := math.Min(vk, math.Min(vkm1.AtVec(k), vkp1.AtVec(k)))
		hi := math.Max(vk, math.Max(vkm1.AtVec(k), vkp1.AtVec(k)))
		tol := M*hk*hk + eps0
		for i := 0; i < el.Np; i++ {
			if u := U.At(i, k); u < lo-tol || u > hi+tol {
				flagged = append(flagged, k)
				break
			}
		}
	}
	if len(flagged) == 0 {
		ULim = U.Copy()
		return
	}

	// Slope of the linear part in physical space, constant per element
	Dl := el.Dr.Mul(el.V.Mul(Ul)).ElMul(el.Rx)

	// Mode 1 coefficient for a linear with unit physical slope on element k
	// is h/2 * sqrt(2/3) for the orthonormal Legendre basis
	modal := Uh.Copy()
	for _, k := range flagged {
		var (
			hk = h.AtVec(k)
			sk = Dl.At(0, k)
			dm = (v.AtVec(k) - vkm1.AtVec(k)) / hk
			dp = (vkp1.AtVec(k) - v.AtVec(k)) / hk
		)
		sl := minmodB(M, hk, sk, dm, dp)
		modal.Set(1, k, sl*hk*0.5*math.Sqrt(2./3.))
		for m := 2; m < el.Np; m++ {
			modal.Set(m, k, 0)
		}
	}
	// Only flagged columns are rebuilt; the rest carry over untouched
	ULim = U.Copy()
	rebuilt := el.V.Mul(modal)
	for _, k := range flagged {
		for i := 0; i < el.Np; i++ {
			ULim.Set(i, k, rebuilt.At(i, k))
		}
	}
	return
}

// neighborAverages returns the left and right neighbor cell averages for
// every element, wrapping under periodic closure and clamping at physical
// boundaries.
func (el *Elements1D) neighborAverages(v utils.Vector) (vkm1, vkp1 utils.Vector) {
	var (
		K = el.K
	)
	vkm1, vkp1 = utils.NewVector(K), utils.NewVector(K)
	for k := 0; k < K; k++ {
		km, kp := k-1, k+1
		if el.BC == Periodic {
			km, kp = (k-1+K)%K, (k+1)%K
		} else {
			if km < 0 {
				km = 0
			}
			if kp > K-1 {
				kp = K - 1
			}
		}
		vkm1.V.SetVec(k, v.AtVec(km))
		vkp1.V.SetVec(k, v.AtVec(kp))
	}
	return
}
