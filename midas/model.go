// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package midas

import (
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/strategist922/midasr/linalg"
	"github.com/strategist922/midasr/restriction"
	"github.com/strategist922/midasr/weights"
)

// JacobianProvider returns the dk×len(theta) Jacobian of the restriction.
type JacobianProvider func(theta []float64) (*mat.Dense, error)

// Unrestricted is the OLS fit with every lag coefficient free.
type Unrestricted struct {
	coef  []float64
	resid []float64
	// UsedSVD is set when X'X was singular and the pseudo-inverse solution
	// was returned.
	UsedSVD bool
}

func (u *Unrestricted) Coefficients() []float64 { return u.coef }
func (u *Unrestricted) Residuals() []float64    { return u.resid }

// FitUnrestricted regresses y on X by OLS. It returns ErrInsufficientData
// when there are no residual degrees of freedom.
func FitUnrestricted(X mat.Matrix, y []float64) (*Unrestricted, error) {
	n, dk := X.Dims()
	if n <= dk {
		return nil, fmt.Errorf("%w: %d observations for %d unrestricted coefficients", ErrInsufficientData, n, dk)
	}
	b, r, usedSVD, err := linalg.LeastSquares(X, y)
	if err != nil {
		return nil, fmt.Errorf("unrestricted fit: %w", err)
	}
	return &Unrestricted{coef: b, resid: r, UsedSVD: usedSVD}, nil
}

// Model is a fitted restricted MIDAS regression. It implements
// restriction.FittedModel. All returned slices are owned by the Model and
// must not be modified.
type Model struct {
	spec Spec
	lay  *layout
	mm   *mat.Dense
	x    *mat.Dense

	theta    []float64
	expanded []float64
	resid    []float64

	unrestricted *Unrestricted
	gradient     JacobianProvider

	objective float64
	status    optimize.Status
}

var _ restriction.FittedModel = (*Model)(nil)

func (m *Model) Coefficients() []float64         { return m.theta }
func (m *Model) ExpandedCoefficients() []float64 { return m.expanded }
func (m *Model) Residuals() []float64            { return m.resid }
func (m *Model) ModelMatrix() mat.Matrix         { return m.mm }

// Unrestricted returns nil when the sample was too short for OLS.
func (m *Model) Unrestricted() restriction.UnrestrictedModel {
	if m.unrestricted == nil {
		return nil
	}
	return m.unrestricted
}

// Jacobian uses the user-supplied provider when present, otherwise the
// shapes' analytic gradients, falling back to finite differences per term.
func (m *Model) Jacobian(theta []float64) (*mat.Dense, error) {
	if m.gradient != nil {
		return m.gradient(theta)
	}
	return m.lay.jacobian(m.spec.Terms, theta)
}

func (m *Model) Terms() []restriction.TermInfo {
	out := make([]restriction.TermInfo, len(m.spec.Terms))
	for i, t := range m.spec.Terms {
		out[i] = restriction.TermInfo{
			Name:    t.Name,
			Shape:   t.Shape.Tag(),
			Columns: append([]int(nil), m.lay.cols[i]...),
			Params:  append([]int(nil), m.lay.params[i]...),
		}
	}
	return out
}

// Objective is the minimised ‖y - X f(θ)‖² / (2n).
func (m *Model) Objective() float64 { return m.objective }

// Status is the optimizer's termination status.
func (m *Model) Status() optimize.Status { return m.status }

// NObs is the number of low-frequency observations used in the fit.
func (m *Model) NObs() int { return len(m.spec.Response) }

// TermWeights returns the fitted lag coefficients of term i.
func (m *Model) TermWeights(i int) []float64 {
	out := make([]float64, len(m.lay.cols[i]))
	for j, c := range m.lay.cols[i] {
		out[j] = m.expanded[c]
	}
	return out
}

// expand evaluates every term's shape at its slice of theta.
func (lay *layout) expand(terms []Term, theta []float64) []float64 {
	out := make([]float64, lay.dk)
	for ti, t := range terms {
		w := t.Shape.Weights(lay.sub(ti, theta), lay.lags[ti])
		for j, c := range lay.cols[ti] {
			out[c] = w[j]
		}
	}
	return out
}

func (lay *layout) sub(ti int, theta []float64) []float64 {
	p := make([]float64, len(lay.params[ti]))
	for j, k := range lay.params[ti] {
		p[j] = theta[k]
	}
	return p
}

// jacobian is block diagonal, one block per term.
func (lay *layout) jacobian(terms []Term, theta []float64) (*mat.Dense, error) {
	if len(theta) != lay.np {
		return nil, fmt.Errorf("%w: %d parameters, model has %d", ErrShape, len(theta), lay.np)
	}
	out := mat.NewDense(lay.dk, lay.np, nil)
	for ti, t := range terms {
		p := lay.sub(ti, theta)
		d := lay.lags[ti]

		var g *mat.Dense
		if gr, ok := t.Shape.(weights.Gradienter); ok {
			g = gr.Gradient(p, d)
		} else {
			shape := t.Shape
			g = NumericJacobian(func(q []float64) []float64 { return shape.Weights(q, d) }, p, d)
		}
		for i, c := range lay.cols[ti] {
			for j, k := range lay.params[ti] {
				out.Set(c, k, g.At(i, j))
			}
		}
	}
	return out, nil
}

// NumericJacobian approximates the m×len(theta) Jacobian of f at theta with
// central differences.
func NumericJacobian(f func(theta []float64) []float64, theta []float64, m int) *mat.Dense {
	dst := mat.NewDense(m, len(theta), nil)
	fd.Jacobian(dst, func(y, x []float64) {
		copy(y, f(x))
	}, theta, &fd.JacobianSettings{Formula: fd.Central})
	return dst
}
