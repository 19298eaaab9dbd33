// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package restriction

import (
	"errors"

	"github.com/strategist922/midasr/linalg"
)

var (
	// ErrMissingUnrestricted: the unrestricted companion fit is absent, usually
	// because there were fewer observations than lag coefficients.
	ErrMissingUnrestricted = errors.New("unrestricted model could not be estimated, restriction test is not possible")
	// ErrJacobianDimension: the restriction Jacobian does not have one row per
	// unrestricted coefficient and one column per hyperparameter.
	ErrJacobianDimension = errors.New("restriction gradient dimensions are incorrect")
	// ErrSingularDesign: X'X is not positive definite.
	ErrSingularDesign = errors.New("design cross-product matrix is singular")
	// ErrUnsupportedWeightShape: the LM test found no exponential Almon term.
	ErrUnsupportedWeightShape = errors.New("only models with normalized exponential Almon weights are supported")
	// ErrNoDegreesOfFreedom: the restriction leaves nothing to test.
	ErrNoDegreesOfFreedom = errors.New("restriction test has no degrees of freedom")
	// ErrDimensionMismatch: model data is internally inconsistent.
	ErrDimensionMismatch = errors.New("model dimensions are inconsistent")
	// ErrNonFinite: model data, the meat matrix or an intermediate quantity
	// holds NaN or infinite entries. Same value as linalg.ErrNonFinite.
	ErrNonFinite = linalg.ErrNonFinite
)
