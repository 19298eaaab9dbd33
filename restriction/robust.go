// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package restriction

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/strategist922/midasr/hac"
	"github.com/strategist922/midasr/internal/logger"
	"github.com/strategist922/midasr/linalg"
)

// RobustTest computes the heteroskedasticity and autocorrelation robust hAh
// statistic h0ᵗ A0 h0 with
//
//	A0 = ( n (Pᵗ)⁺ II meat IIᵗ P⁺ )⁺,  II = I - XtX Delta0
//
// meat is the dk×dk covariance of the unrestricted scores x_t u_t scaled by
// 1/n. A nil meat is estimated with hac.Meat on the unrestricted residuals
// using opts.HAC. A meat with NaN or infinite entries returns ErrNonFinite.
func RobustTest(model FittedModel, meat *mat.SymDense, opts Options) (Result, error) {
	log := logger.ForComponent(logger.Restriction)

	prep, err := Prepare(model, opts)
	if err != nil {
		return Result{}, err
	}

	// The regressor count taken from the model matrix must agree with the
	// Jacobian-derived dimension.
	_, c := model.ModelMatrix().Dims()
	nkx := c - 1
	if nkx != prep.Dk {
		return Result{}, fmt.Errorf("%w: model matrix has %d regressors, restriction has %d", ErrDimensionMismatch, nkx, prep.Dk)
	}

	if meat == nil {
		u := model.Unrestricted().Residuals()
		meat, err = hac.Meat(prep.X, u, opts.HAC)
		if err != nil {
			return Result{}, fmt.Errorf("estimate meat matrix: %w", err)
		}
	}
	if meat.SymmetricDim() != nkx {
		return Result{}, fmt.Errorf("%w: meat matrix is %d×%d, want %d×%d",
			ErrDimensionMismatch, meat.SymmetricDim(), meat.SymmetricDim(), nkx, nkx)
	}
	if !linalg.AllFinite(meat) {
		return Result{}, fmt.Errorf("%w: meat matrix", ErrNonFinite)
	}

	// II = I - XtX Delta0
	II := linalg.Identity(nkx)
	var xd mat.Dense
	xd.Mul(prep.XtX, prep.Delta0)
	II.Sub(II, &xd)

	pInv, pDiag, err := linalg.Pinv(prep.P, opts.PinvTolerance)
	if err != nil {
		return Result{}, fmt.Errorf("invert cholesky factor: %w", err)
	}
	ptInv, _, err := linalg.Pinv(prep.P.T(), opts.PinvTolerance)
	if err != nil {
		return Result{}, fmt.Errorf("invert cholesky factor: %w", err)
	}
	if pDiag.Deficient() {
		log.Debug("cholesky factor is rank deficient", "rank", pDiag.Rank, "dim", pDiag.Dim, "cond", pDiag.Cond)
	}

	// n (P')^+ II meat II' P^+
	var left, mid, right, sand mat.Dense
	left.Mul(ptInv, II)
	mid.Mul(&left, meat)
	right.Mul(&mid, II.T())
	sand.Mul(&right, pInv)
	sand.Scale(float64(prep.N), &sand)

	A0, diag, err := linalg.Pinv(&sand, opts.PinvTolerance)
	if err != nil {
		return Result{}, fmt.Errorf("invert robust covariance: %w", err)
	}
	if diag.Deficient() {
		log.Debug("robust covariance is rank deficient", "rank", diag.Rank, "dim", diag.Dim, "cond", diag.Cond)
	}

	scale := mat.Dot(prep.H0, prep.H0) * mat.Norm(A0, 2)
	stat := snapRoundoff(linalg.QuadForm(prep.H0, A0), scale, opts.PinvTolerance)

	res := newResult(MethodRobust, stat, prep.DF)
	res.Inverse = diag
	return res, nil
}
