package DG1D

import (
	"math"

	"github.com/notargets/dg1d/utils"
)

// L2Norm computes the discrete L2 norm of (U - Uex) over the whole mesh.
// The elemental integral is evaluated through the modal expansion of the
// difference, which integrates polynomials of the solution space exactly.
func (el *Elements1D) L2Norm(U, Uex utils.Matrix) (norm float64) {
	var (
		h  = el.ElementWidths()
		Eh = el.Vinv.Mul(U.Copy().Subtract(Uex))
	)
	for k := 0; k < el.K; k++ {
		var sum float64
		for m := 0; m < el.Np; m++ {
			c := Eh.At(m, k)
			sum += c * c
		}
		norm += 0.5 * h.AtVec(k) * sum
	}
	norm = math.Sqrt(norm)
	return
}

// LinfNorm computes the maximum nodal deviation of U from Uex.
func (el *Elements1D) LinfNorm(U, Uex utils.Matrix) (norm float64) {
	return U.Copy().Subtract(Uex).Apply(math.Abs).Max()
}
