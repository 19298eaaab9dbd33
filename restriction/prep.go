// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package restriction

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/strategist922/midasr/internal/logger"
	"github.com/strategist922/midasr/linalg"
)

// Prep bundles the quantities shared by the hAh tests. A Prep is built per
// call and never cached.
type Prep struct {
	P      *mat.TriDense // upper Cholesky factor, PᵗP = XtX
	XtX    *mat.SymDense // dk×dk cross-product of the regressors
	X      *mat.Dense    // n×dk regressors (view of the model matrix)
	Dk     int           // number of unrestricted coefficients
	N      int           // observations
	DF     int           // dk - len(θ)
	Delta0 *mat.Dense    // D0 (D0ᵗ XtX D0)⁺ D0ᵗ
	H0     *mat.VecDense // P (β̂ - f(θ̂))
	Pinv   linalg.Diagnostics
}

// Prepare computes the Cholesky factor, the Jacobian projection Delta0 and
// the whitened coefficient gap h0 for model.
func Prepare(model FittedModel, opts Options) (*Prep, error) {
	unrestricted := model.Unrestricted()
	if unrestricted == nil {
		return nil, ErrMissingUnrestricted
	}

	theta := model.Coefficients()

	// 1. Jacobian of the restriction at θ̂
	D0, err := model.Jacobian(theta)
	if err != nil {
		return nil, fmt.Errorf("evaluate restriction gradient: %w", err)
	}

	// 2. Regressors, response column excluded
	mm := model.ModelMatrix()
	n, c := mm.Dims()
	if c < 2 {
		return nil, fmt.Errorf("%w: model matrix has %d columns, need response plus regressors", ErrDimensionMismatch, c)
	}
	if !linalg.AllFinite(mm) {
		return nil, fmt.Errorf("%w: model matrix", ErrNonFinite)
	}
	_, X := splitModelMatrix(mm)
	XtX := linalg.CrossProd(X)

	// 3. dk and the bookkeeping checks
	dk := XtX.SymmetricDim()
	dr, dc := D0.Dims()
	if dr != dk {
		return nil, fmt.Errorf("%w: %d rows, %d unrestricted coefficients", ErrJacobianDimension, dr, dk)
	}
	if dc != len(theta) {
		return nil, fmt.Errorf("%w: %d columns, %d restricted coefficients", ErrJacobianDimension, dc, len(theta))
	}
	if !linalg.AllFinite(D0) {
		return nil, fmt.Errorf("%w: restriction gradient", ErrNonFinite)
	}
	df := dk - len(theta)
	if df <= 0 {
		return nil, fmt.Errorf("%w: %d unrestricted vs %d restricted coefficients", ErrNoDegreesOfFreedom, dk, len(theta))
	}

	beta := unrestricted.Coefficients()
	expanded := model.ExpandedCoefficients()
	if len(beta) != dk || len(expanded) != dk {
		return nil, fmt.Errorf("%w: unrestricted has %d coefficients, restricted expands to %d, design has %d columns",
			ErrDimensionMismatch, len(beta), len(expanded), dk)
	}

	// 4. P'P = X'X
	P, err := linalg.UpperCholesky(XtX)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingularDesign, err)
	}

	// 5. h0 = P (β̂ - f(θ̂))
	gap := mat.NewVecDense(dk, nil)
	for i := 0; i < dk; i++ {
		gap.SetVec(i, beta[i]-expanded[i])
	}
	h0 := mat.NewVecDense(dk, nil)
	h0.MulVec(P, gap)
	if !linalg.AllFinite(h0) {
		return nil, fmt.Errorf("%w: coefficient gap", ErrNonFinite)
	}

	// 6. Delta0 = D0 (D0' X'X D0)^+ D0', with D0' X'X D0 = (P D0)'(P D0)
	var PD0 mat.Dense
	PD0.Mul(P, D0)
	var inner mat.Dense
	inner.Mul(PD0.T(), &PD0)
	innerInv, diag, err := linalg.Pinv(&inner, opts.PinvTolerance)
	if err != nil {
		return nil, fmt.Errorf("invert restriction gradient cross-product: %w", err)
	}
	if diag.Deficient() {
		logger.ForComponent(logger.Restriction).Debug("restriction gradient is rank deficient",
			"rank", diag.Rank, "params", len(theta), "cond", diag.Cond)
	}

	var tmp mat.Dense
	tmp.Mul(D0, innerInv)
	Delta0 := mat.NewDense(dk, dk, nil)
	Delta0.Mul(&tmp, D0.T())

	return &Prep{
		P:      P,
		XtX:    XtX,
		X:      X,
		Dk:     dk,
		N:      n,
		DF:     df,
		Delta0: Delta0,
		H0:     h0,
		Pinv:   diag,
	}, nil
}
