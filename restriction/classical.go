// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package restriction

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/strategist922/midasr/linalg"
)

// ClassicalTest computes the hAh statistic under homoskedastic, serially
// uncorrelated errors:
//
//	h0ᵗ (I - P Delta0 Pᵗ) h0 / σ²,  σ² = RSS_unrestricted / (n - dk)
//
// The statistic is asymptotically χ² with dk - len(θ) degrees of freedom.
func ClassicalTest(model FittedModel, opts Options) (Result, error) {
	prep, err := Prepare(model, opts)
	if err != nil {
		return Result{}, err
	}

	u := model.Unrestricted().Residuals()
	if len(u) != prep.N {
		return Result{}, fmt.Errorf("%w: %d unrestricted residuals, %d observations", ErrDimensionMismatch, len(u), prep.N)
	}
	if !linalg.AllFinite(mat.NewVecDense(len(u), u)) {
		return Result{}, fmt.Errorf("%w: unrestricted residuals", ErrNonFinite)
	}
	resDF := prep.N - prep.Dk
	if resDF <= 0 {
		return Result{}, fmt.Errorf("%w: %d observations for %d unrestricted coefficients", ErrNoDegreesOfFreedom, prep.N, prep.Dk)
	}
	se2 := floats.Dot(u, u) / float64(resDF)

	// I - P Delta0 P'
	var pd mat.Dense
	pd.Mul(prep.P, prep.Delta0)
	A := linalg.Identity(prep.Dk)
	var proj mat.Dense
	proj.Mul(&pd, prep.P.T())
	A.Sub(A, &proj)

	num := snapRoundoff(linalg.QuadForm(prep.H0, A), mat.Dot(prep.H0, prep.H0), opts.PinvTolerance)

	var stat float64
	switch {
	case se2 > 0:
		stat = num / se2
	case math.Abs(num) <= opts.PinvTolerance:
		// Perfect unrestricted fit and no gap: nothing to reject.
		stat = 0
	default:
		stat = math.Inf(1)
	}
	res := newResult(MethodClassical, stat, prep.DF)
	res.Inverse = prep.Pinv
	return res, nil
}
