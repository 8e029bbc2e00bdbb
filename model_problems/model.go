package model_problems

import (
	"fmt"
	"math"

	"github.com/notargets/dg1d/utils"
)

// InstabilityError reports a blown-up explicit run: where and when the state
// first failed. Explicit schemes diverging indicate a CFL or modeling error,
// so the run is never retried.
type InstabilityError struct {
	Time  float64
	Step  int
	Elem  int
	Field string
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("numerical instability in field %s at time %g, step %d, element %d",
		e.Field, e.Time, e.Step, e.Elem)
}

// ConvergenceDatum is one row of a convergence study: mesh size, degrees of
// freedom and error norms against the exact solution. Formatting into a
// table is the caller's concern.
type ConvergenceDatum struct {
	NumCells  int
	NumDofs   int
	L2Error   float64
	LinfError float64
}

// ScanState returns the smallest element index holding a NaN or Inf value,
// or, when positive is set, a non-positive value. ok is false on a hit.
func ScanState(U utils.Matrix, positive bool) (elem int, ok bool) {
	var (
		nr, nc = U.Dims()
	)
	for k := 0; k < nc; k++ {
		for i := 0; i < nr; i++ {
			val := U.At(i, k)
			if math.IsNaN(val) || math.IsInf(val, 0) || (positive && val <= 0) {
				return k, false
			}
		}
	}
	return 0, true
}

// Monitor receives the element-wise state at reporting intervals. The core
// has no dependency on how the fields are written out.
type Monitor func(time float64, fields map[string]utils.Matrix)
