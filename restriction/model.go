// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package restriction

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strategist922/midasr/weights"
)

// TermInfo describes one regression term of a restricted model.
type TermInfo struct {
	// Name of the regressor, e.g. "x".
	Name string
	// Shape family of the lag weights used for this term.
	Shape weights.Tag
	// Columns of the design matrix (response excluded, 0-based) that belong to
	// the term. They need not be contiguous.
	Columns []int
	// Params are the positions of the term's hyperparameters in the
	// restricted coefficient vector.
	Params []int
}

// UnrestrictedModel is the companion fit with every lag coefficient free.
type UnrestrictedModel interface {
	// Coefficients returns β̂, one per design-matrix column.
	Coefficients() []float64
	Residuals() []float64
}

// FittedModel is the read-only view of a restricted fit the tests need.
// Implementations must not change the returned data between calls.
type FittedModel interface {
	// Coefficients returns the restricted hyperparameters θ.
	Coefficients() []float64
	// ExpandedCoefficients returns the restriction map evaluated at θ, one
	// coefficient per design-matrix column.
	ExpandedCoefficients() []float64
	// Residuals of the restricted fit.
	Residuals() []float64
	// ModelMatrix is n×(dk+1), the response in column 0.
	ModelMatrix() mat.Matrix
	// Jacobian of the restriction map at theta, dk×len(theta).
	Jacobian(theta []float64) (*mat.Dense, error)
	// Unrestricted returns nil when no unrestricted fit could be estimated.
	Unrestricted() UnrestrictedModel
	Terms() []TermInfo
}

// splitModelMatrix returns the response column and a view of the regressors.
func splitModelMatrix(mm mat.Matrix) ([]float64, *mat.Dense) {
	n, c := mm.Dims()
	var d *mat.Dense
	if dense, ok := mm.(*mat.Dense); ok {
		d = dense
	} else {
		d = mat.DenseCopyOf(mm)
	}
	y := make([]float64, n)
	mat.Col(y, 0, d)
	x := d.Slice(0, n, 1, c).(*mat.Dense)
	return y, x
}
