// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

// Package midas fits mixed-frequency distributed lag regressions. A restricted
// fit maps a few hyperparameters to the lag coefficients through a weight
// shape, and carries the unrestricted OLS fit it is tested against.
package midas

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShape: inputs have incompatible lengths or an invalid lag spec.
	ErrShape = errors.New("midas: invalid dimensions")
	// ErrInsufficientData: fewer observations than coefficients.
	ErrInsufficientData = errors.New("midas: not enough observations")
	// ErrNoConvergence: the optimizer did not reach a finite optimum.
	ErrNoConvergence = errors.New("midas: nonlinear least squares failed")
)

// FmlsOffset is the number of leading low-frequency periods dropped by Fmls
// because some of their k high-frequency lags fall before the sample.
func FmlsOffset(k, m int) int {
	return k / m
}

// Fmls builds the full high-frequency lag matrix of x for lags 0..k with m
// high-frequency observations per low-frequency period.
//
// len(x) must be a multiple of m. Row r corresponds to low-frequency period
// t = FmlsOffset(k, m) + r and holds x[(t+1)m-1-j] in column j.
func Fmls(x []float64, k, m int) (*mat.Dense, error) {
	if m < 1 || k < 0 {
		return nil, fmt.Errorf("%w: lags %d, frequency %d", ErrShape, k, m)
	}
	if len(x)%m != 0 {
		return nil, fmt.Errorf("%w: %d high-frequency values is not a multiple of frequency %d", ErrShape, len(x), m)
	}

	nLow := len(x) / m
	start := FmlsOffset(k, m)
	rows := nLow - start
	if rows <= 0 {
		return nil, fmt.Errorf("%w: %d periods leave no complete row for %d lags", ErrInsufficientData, nLow, k)
	}

	out := mat.NewDense(rows, k+1, nil)
	for r := 0; r < rows; r++ {
		t := start + r
		last := (t+1)*m - 1
		for j := 0; j <= k; j++ {
			out.Set(r, j, x[last-j])
		}
	}
	return out, nil
}
