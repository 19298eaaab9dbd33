// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package restriction

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/strategist922/midasr/internal/logger"
	"github.com/strategist922/midasr/linalg"
	"github.com/strategist922/midasr/weights"
)

// ExpAlmonLMTest is the Andreou, Ghysels and Kourtellos LM test of the
// hypothesis that the normalized exponential Almon weights of the model are
// flat. Each exponential Almon block of the design is replaced by its row
// mean, the response is regressed on the collapsed design without intercept,
// and the statistic is (S_LS - S_M) / S_LS where S_LS is the auxiliary RSS and
// S_M the RSS of the restricted fit. The degrees of freedom are the number of
// hyperparameters of the exponential Almon terms.
func ExpAlmonLMTest(model FittedModel, opts Options) (Result, error) {
	terms := model.Terms()
	df := 0
	found := 0
	for _, t := range terms {
		if t.Shape.Kind == weights.KindExponentialAlmon {
			found++
			df += len(t.Params)
		}
	}
	if found == 0 {
		return Result{}, ErrUnsupportedWeightShape
	}
	if df <= 0 {
		return Result{}, fmt.Errorf("%w: exponential Almon terms carry no hyperparameters", ErrNoDegreesOfFreedom)
	}

	mm := model.ModelMatrix()
	if !linalg.AllFinite(mm) {
		return Result{}, fmt.Errorf("%w: model matrix", ErrNonFinite)
	}
	y, X := splitModelMatrix(mm)
	n, dk := X.Dims()

	Xa, err := collapseAlmonBlocks(X, terms)
	if err != nil {
		return Result{}, err
	}
	_, ka := Xa.Dims()

	_, uStar, usedSVD, err := linalg.LeastSquares(Xa, y)
	if err != nil {
		return Result{}, fmt.Errorf("auxiliary regression: %w", err)
	}
	if usedSVD {
		logger.ForComponent(logger.Restriction).Debug("auxiliary regression is rank deficient", "columns", ka)
	}

	u := model.Residuals()
	if len(u) != n {
		return Result{}, fmt.Errorf("%w: %d restricted residuals, %d observations", ErrDimensionMismatch, len(u), n)
	}
	if !linalg.AllFinite(mat.NewVecDense(n, u)) {
		return Result{}, fmt.Errorf("%w: restricted residuals", ErrNonFinite)
	}

	sLS := floats.Dot(uStar, uStar)
	sM := floats.Dot(u, u)

	logger.ForComponent(logger.Restriction).Debug("agk auxiliary fit",
		"regressors", dk, "collapsed", ka, "s_ls", sLS, "s_m", sM)

	// Negative when the collapsed regression fits better than the restricted
	// model; reported as is.
	stat := 0.0
	if sLS > 0 {
		stat = (sLS - sM) / sLS
	}
	return newResult(MethodLM, stat, df), nil
}

// collapseAlmonBlocks builds the auxiliary design. Exponential Almon blocks
// become a single row-mean column, every other column is kept in order.
// Columns that belong to no term are appended after the term blocks.
func collapseAlmonBlocks(X *mat.Dense, terms []TermInfo) (*mat.Dense, error) {
	n, dk := X.Dims()
	used := make([]bool, dk)
	var cols [][]float64

	for _, t := range terms {
		if len(t.Columns) == 0 {
			continue
		}
		for _, j := range t.Columns {
			if j < 0 || j >= dk {
				return nil, fmt.Errorf("%w: term %q refers to column %d of %d", ErrDimensionMismatch, t.Name, j, dk)
			}
			if used[j] {
				return nil, fmt.Errorf("%w: column %d belongs to more than one term", ErrDimensionMismatch, j)
			}
			used[j] = true
		}

		if t.Shape.Kind != weights.KindExponentialAlmon {
			for _, j := range t.Columns {
				cols = append(cols, mat.Col(nil, j, X))
			}
			continue
		}

		avg := make([]float64, n)
		for i := 0; i < n; i++ {
			s := 0.0
			for _, j := range t.Columns {
				s += X.At(i, j)
			}
			avg[i] = s / float64(len(t.Columns))
		}
		cols = append(cols, avg)
	}
	for j := 0; j < dk; j++ {
		if !used[j] {
			cols = append(cols, mat.Col(nil, j, X))
		}
	}

	out := mat.NewDense(n, len(cols), nil)
	for j, c := range cols {
		out.SetCol(j, c)
	}
	return out, nil
}
