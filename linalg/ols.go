// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LeastSquares fits y ≈ X b by ordinary least squares (no intercept is added).
// X: n x k design matrix
// y: length n response
// Returns: coefficients b (length k), residuals y - X b (length n), and whether
// the SVD fallback had to be used because X'X could not be inverted.
func LeastSquares(X mat.Matrix, y []float64) (b, resid []float64, usedSVD bool, err error) {
	n, k := X.Dims()
	if len(y) != n {
		return nil, nil, false, fmt.Errorf("response has %d rows, design has %d", len(y), n)
	}
	if k == 0 {
		return nil, nil, false, fmt.Errorf("design matrix has no columns")
	}

	yVec := mat.NewVecDense(n, append([]float64(nil), y...))
	beta := mat.NewVecDense(k, nil)

	// First try: normal equations b = (X'X)^(-1) X'y
	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var xtxInv mat.Dense
	xtxError := xtxInv.Inverse(&xtx)

	if xtxError == nil {
		var xty mat.VecDense
		xty.MulVec(X.T(), yVec)
		beta.MulVec(&xtxInv, &xty)
	} else {
		// Fallback: X'X is singular or badly conditioned.
		// Use SVD-based least squares for the minimum-norm solution.
		usedSVD = true
		var svd mat.SVD
		if ok := svd.Factorize(X, mat.SVDThin); !ok {
			return nil, nil, true, fmt.Errorf("OLS failed: X'X singular and SVD factorization failed: %v", xtxError)
		}

		rank := svd.Rank(1e-12)

		// rank 0 means X is numerically zero, the minimum-norm solution is b = 0
		if rank > 0 {
			svd.SolveVecTo(beta, yVec, rank)
		}
	}

	var fitted mat.VecDense
	fitted.MulVec(X, beta)

	resid = make([]float64, n)
	for i := 0; i < n; i++ {
		resid[i] = y[i] - fitted.AtVec(i)
	}

	b = make([]float64, k)
	for i := 0; i < k; i++ {
		b[i] = beta.AtVec(i)
	}
	return b, resid, usedSVD, nil
}
