// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package midas

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/strategist922/midasr/internal/logger"
)

// FitOptions control the restricted nonlinear least squares fit.
type FitOptions struct {
	// MaxIterations caps the BFGS major iterations. 0 means no cap.
	MaxIterations int
	// GradientThreshold stops the optimizer once the gradient's infinity norm
	// falls below it.
	GradientThreshold float64
	// Gradient replaces the shapes' own gradients when set.
	Gradient JacobianProvider
}

func DefaultFitOptions() FitOptions {
	return FitOptions{
		MaxIterations:     1000,
		GradientThreshold: 1e-10,
	}
}

// Fit estimates θ by minimising ‖y - X f(θ)‖² / (2n) with BFGS starting from
// the terms' Start values, and fits the unrestricted companion by OLS. When
// the sample is too short for OLS the model is returned without an
// unrestricted fit.
func Fit(spec Spec, opts FitOptions) (*Model, error) {
	log := logger.ForComponent(logger.MIDAS)

	lay, err := spec.layout()
	if err != nil {
		return nil, err
	}
	mm := spec.modelMatrix(lay)
	n := len(spec.Response)
	if n <= lay.np {
		return nil, fmt.Errorf("%w: %d observations for %d parameters", ErrInsufficientData, n, lay.np)
	}
	X := mm.Slice(0, n, 1, lay.dk+1).(*mat.Dense)
	y := spec.Response

	m := &Model{
		spec:     spec,
		lay:      lay,
		mm:       mm,
		x:        X,
		gradient: opts.Gradient,
	}

	unres, err := FitUnrestricted(X, y)
	switch {
	case errors.Is(err, ErrInsufficientData):
		log.Debug("unrestricted model not estimated", "obs", n, "coefficients", lay.dk)
	case err != nil:
		return nil, err
	default:
		m.unrestricted = unres
	}

	problem := optimize.Problem{
		Func: func(theta []float64) float64 {
			r := m.residualsAt(theta)
			return floats.Dot(r, r) / (2 * float64(n))
		},
		Grad: func(grad, theta []float64) {
			r := m.residualsAt(theta)
			J, err := m.Jacobian(theta)
			if err != nil {
				for i := range grad {
					grad[i] = math.NaN()
				}
				return
			}
			// -J' X' r / n
			var xtr, g mat.VecDense
			xtr.MulVec(X.T(), mat.NewVecDense(n, r))
			g.MulVec(J.T(), &xtr)
			for i := range grad {
				grad[i] = -g.AtVec(i) / float64(n)
			}
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   opts.MaxIterations,
		GradientThreshold: opts.GradientThreshold,
	}

	res, err := optimize.Minimize(problem, spec.start(), settings, &optimize.BFGS{})
	if res == nil {
		return nil, fmt.Errorf("%w: %w", ErrNoConvergence, err)
	}
	if math.IsNaN(res.F) || math.IsInf(res.F, 0) {
		return nil, fmt.Errorf("%w: objective %v, status %v", ErrNoConvergence, res.F, res.Status)
	}
	if err != nil {
		// Line search failures near the optimum still leave the best location.
		log.Debug("optimizer stopped early", "status", res.Status.String(), "err", err)
	}

	m.theta = append([]float64(nil), res.X...)
	m.expanded = lay.expand(spec.Terms, m.theta)
	m.resid = m.residualsAt(m.theta)
	m.objective = res.F
	m.status = res.Status

	log.Debug("restricted model fitted",
		"obs", n, "params", lay.np, "coefficients", lay.dk,
		"objective", res.F, "status", res.Status.String(), "iterations", res.Stats.MajorIterations)
	return m, nil
}

// residualsAt returns y - X f(theta).
func (m *Model) residualsAt(theta []float64) []float64 {
	w := m.lay.expand(m.spec.Terms, theta)
	n := len(m.spec.Response)
	r := make([]float64, n)
	var fitted mat.VecDense
	fitted.MulVec(m.x, mat.NewVecDense(len(w), w))
	for i := 0; i < n; i++ {
		r[i] = m.spec.Response[i] - fitted.AtVec(i)
	}
	return r
}
