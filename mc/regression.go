package mc

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Degree of the continuation-value polynomial basis.
const polyDegree = 5

// polyfit returns the least-squares coefficients, in ascending powers, of a
// degree-deg polynomial of y on x, solved through the QR path of gonum's
// SolveVec. The raw power basis runs hot: a cross section of prices near 100
// already carries condition numbers past gonum's tolerance, so a finite
// mat.Condition warning keeps the computed solution. The fit fails only when
// no usable solution exists.
func polyfit(x, y []float64, deg int) ([]float64, error) {
	a := mat.NewDense(len(x), deg+1, nil)
	for i, v := range x {
		w := 1.0
		for j := 0; j <= deg; j++ {
			a.Set(i, j, w)
			w *= v
		}
	}
	var c mat.VecDense
	if err := c.SolveVec(a, mat.NewVecDense(len(y), y)); err != nil {
		// An infinite condition number means a rank deficient cross
		// section and no solution worth reading
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 0) {
			return nil, fmt.Errorf("%w: %v", ErrSingularFit, err)
		}
	}
	out := make([]float64, deg+1)
	for j := range out {
		out[j] = c.AtVec(j)
		if math.IsNaN(out[j]) || math.IsInf(out[j], 0) {
			return nil, fmt.Errorf("%w: non-finite coefficients", ErrSingularFit)
		}
	}
	return out, nil
}

// polyval evaluates coefficients in ascending power order at s.
func polyval(coef []float64, s float64) float64 {
	v := 0.0
	for j := len(coef) - 1; j >= 0; j-- {
		v = v*s + coef[j]
	}
	return v
}
