// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package midas

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/strategist922/midasr/restriction"
	"github.com/strategist922/midasr/weights"
)

// simulated returns y (low frequency, length n) and x (length n*m) with
// y_t = Σ w_j x_{(t+1)m-1-j} + noise. The first periods of y have incomplete
// lags and are filled with noise only.
func simulated(seed int64, n, k, m int, shape weights.Shape, theta []float64, noise float64) ([]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, n*m)
	for i := range x {
		x[i] = rng.NormFloat64()
	}
	w := shape.Weights(theta, k+1)
	y := make([]float64, n)
	for t := 0; t < n; t++ {
		last := (t+1)*m - 1
		for j := 0; j <= k; j++ {
			if last-j >= 0 {
				y[t] += w[j] * x[last-j]
			}
		}
		y[t] += noise * rng.NormFloat64()
	}
	return y, x
}

func TestFmls(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	got, err := Fmls(x, 2, 3)
	require.NoError(t, err)
	want := mat.NewDense(4, 3, []float64{
		3, 2, 1,
		6, 5, 4,
		9, 8, 7,
		12, 11, 10,
	})
	assert.True(t, mat.Equal(want, got))

	got, err = Fmls(x, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, FmlsOffset(4, 3))
	r, c := got.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 5, c)
	assert.Equal(t, []float64{6, 5, 4, 3, 2}, mat.Row(nil, 0, got))

	_, err = Fmls(x, 2, 5)
	assert.ErrorIs(t, err, ErrShape)
	_, err = Fmls(x, 20, 3)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSingleRegressor(t *testing.T) {
	y, x := simulated(1, 20, 5, 3, weights.NEAlmon{}, []float64{1, 0.1}, 0.1)
	spec, err := SingleRegressor(y, x, "x", 5, 3, weights.NEAlmon{}, []float64{1, 0}, true)
	require.NoError(t, err)
	assert.Len(t, spec.Response, 19)
	require.Len(t, spec.Terms, 2)
	assert.Equal(t, "(Intercept)", spec.Terms[0].Name)

	mm, err := spec.ModelMatrix()
	require.NoError(t, err)
	r, c := mm.Dims()
	assert.Equal(t, 19, r)
	assert.Equal(t, 1+1+6, c)
	assert.Equal(t, y[1], mm.At(0, 0))
	assert.Equal(t, 1.0, mm.At(0, 1))

	_, err = SingleRegressor(y, x[:10], "x", 5, 3, weights.NEAlmon{}, []float64{1, 0}, false)
	assert.ErrorIs(t, err, ErrShape)
}

func TestSpecValidation(t *testing.T) {
	_, err := Spec{Response: []float64{1, 2}}.ModelMatrix()
	assert.ErrorIs(t, err, ErrShape)

	bad := Spec{
		Response: []float64{1, 2, 3},
		Terms:    []Term{{Name: "x", Data: mat.NewDense(2, 2, nil), Shape: weights.Free{}, Start: []float64{0, 0}}},
	}
	_, err = bad.ModelMatrix()
	assert.ErrorIs(t, err, ErrShape)

	free := Spec{
		Response: []float64{1, 2, 3},
		Terms:    []Term{{Name: "x", Data: mat.NewDense(3, 2, nil), Shape: weights.Free{}, Start: []float64{0}}},
	}
	_, err = free.ModelMatrix()
	assert.ErrorIs(t, err, ErrShape)

	exp := Spec{
		Response: []float64{1, 2, 3},
		Terms:    []Term{{Name: "x", Data: mat.NewDense(3, 2, nil), Shape: weights.ExpAlmon{}, Start: []float64{0}}},
	}
	_, err = exp.ModelMatrix()
	assert.ErrorIs(t, err, ErrShape)
}

func TestFitUnrestrictedNeedsDegreesOfFreedom(t *testing.T) {
	_, err := FitUnrestricted(mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}), []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFitRecoversNEAlmon(t *testing.T) {
	theta := []float64{1, 0.2, -0.05}
	y, x := simulated(7, 250, 11, 3, weights.NEAlmon{}, theta, 0.01)
	spec, err := SingleRegressor(y, x, "x", 11, 3, weights.NEAlmon{}, []float64{0.5, 0, 0}, false)
	require.NoError(t, err)

	m, err := Fit(spec, DefaultFitOptions())
	require.NoError(t, err)

	assert.InDeltaSlice(t, theta, m.Coefficients(), 2e-2)
	assert.Len(t, m.ExpandedCoefficients(), 12)
	assert.Len(t, m.Residuals(), m.NObs())
	assert.InDeltaSlice(t, weights.NEAlmon{}.Weights(theta, 12), m.TermWeights(0), 5e-3)
	require.NotNil(t, m.Unrestricted())
	assert.Len(t, m.Unrestricted().Coefficients(), 12)
	assert.Less(t, m.Objective(), 1e-3)

	terms := m.Terms()
	require.Len(t, terms, 1)
	assert.Equal(t, weights.KindExponentialAlmon, terms[0].Shape.Kind)
	assert.Equal(t, []int{0, 1, 2}, terms[0].Params)
	assert.Len(t, terms[0].Columns, 12)

	res, err := restriction.ClassicalTest(m, restriction.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 9, res.DF)
}

func TestFitWithoutUnrestricted(t *testing.T) {
	y, x := simulated(8, 10, 11, 3, weights.NEAlmon{}, []float64{1, 0.1}, 0.05)
	spec, err := SingleRegressor(y, x, "x", 11, 3, weights.NEAlmon{}, []float64{1, 0}, false)
	require.NoError(t, err)
	// 7 observations, 12 lag coefficients, 2 hyperparameters
	m, err := Fit(spec, DefaultFitOptions())
	require.NoError(t, err)
	assert.Nil(t, m.Unrestricted())

	_, err = restriction.ClassicalTest(m, restriction.DefaultOptions())
	assert.ErrorIs(t, err, restriction.ErrMissingUnrestricted)
}

func TestJacobianBlocks(t *testing.T) {
	y, x := simulated(9, 60, 5, 3, weights.NEAlmon{}, []float64{1, 0.1}, 0.1)
	spec, err := SingleRegressor(y, x, "x", 5, 3, weights.NBeta{}, []float64{1, 2, 3}, true)
	require.NoError(t, err)
	lay, err := spec.layout()
	require.NoError(t, err)

	theta := []float64{0.3, 1, 2, 3}
	J, err := lay.jacobian(spec.Terms, theta)
	require.NoError(t, err)
	r, c := J.Dims()
	assert.Equal(t, 7, r)
	assert.Equal(t, 4, c)

	// intercept block is the identity, off-diagonal blocks are zero
	assert.Equal(t, 1.0, J.At(0, 0))
	for j := 1; j < 4; j++ {
		assert.Equal(t, 0.0, J.At(0, j))
	}
	for i := 1; i < 7; i++ {
		assert.Equal(t, 0.0, J.At(i, 0))
	}

	// the nbeta block comes from finite differences
	beta := NumericJacobian(func(p []float64) []float64 { return weights.NBeta{}.Weights(p, 6) }, []float64{1, 2, 3}, 6)
	assert.True(t, mat.EqualApprox(beta, J.Slice(1, 7, 1, 4), 1e-12))

	_, err = lay.jacobian(spec.Terms, theta[:2])
	assert.ErrorIs(t, err, ErrShape)
}

func TestNumericJacobianMatchesAnalytic(t *testing.T) {
	p := []float64{1.5, 0.3, -0.04}
	analytic := weights.NEAlmon{}.Gradient(p, 9)
	numeric := NumericJacobian(func(q []float64) []float64 { return weights.NEAlmon{}.Weights(q, 9) }, p, 9)
	assert.True(t, mat.EqualApprox(analytic, numeric, 1e-4))
}

func TestGradientProviderOverrides(t *testing.T) {
	y, x := simulated(10, 80, 5, 3, weights.NEAlmon{}, []float64{1, 0.1}, 0.05)
	spec, err := SingleRegressor(y, x, "x", 5, 3, weights.NEAlmon{}, []float64{1, 0}, false)
	require.NoError(t, err)

	calls := 0
	opts := DefaultFitOptions()
	opts.Gradient = func(theta []float64) (*mat.Dense, error) {
		calls++
		return weights.NEAlmon{}.Gradient(theta, 6), nil
	}
	m, err := Fit(spec, opts)
	require.NoError(t, err)
	assert.Greater(t, calls, 0)

	boom := errors.New("boom")
	m.gradient = func([]float64) (*mat.Dense, error) { return nil, boom }
	_, err = m.Jacobian(m.Coefficients())
	assert.ErrorIs(t, err, boom)
}
