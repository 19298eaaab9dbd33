// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package midas

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/strategist922/midasr/weights"
)

// Term is one block of regressors sharing a weight shape.
type Term struct {
	// Name of the regressor, used in reports.
	Name string
	// Data is the n×d block of lagged values.
	Data *mat.Dense
	// Shape maps the term's hyperparameters to d coefficients.
	Shape weights.Shape
	// Start is the optimizer's starting point for this term.
	Start []float64
}

// Spec is a MIDAS regression without intercept unless one of the terms is a
// constant column.
type Spec struct {
	Response []float64
	Terms    []Term
}

// layout records where each term lives in the design and in θ.
type layout struct {
	dk     int
	np     int
	lags   []int
	cols   [][]int
	params [][]int
}

func (s Spec) layout() (*layout, error) {
	if len(s.Terms) == 0 {
		return nil, fmt.Errorf("%w: no regression terms", ErrShape)
	}
	n := len(s.Response)
	lay := &layout{}
	for _, t := range s.Terms {
		if t.Shape == nil || t.Data == nil {
			return nil, fmt.Errorf("%w: term %q has no data or shape", ErrShape, t.Name)
		}
		r, d := t.Data.Dims()
		if r != n {
			return nil, fmt.Errorf("%w: term %q has %d rows, response has %d", ErrShape, t.Name, r, n)
		}
		if err := weights.CheckParams(t.Shape, t.Start); err != nil {
			return nil, fmt.Errorf("%w: term %q: %w", ErrShape, t.Name, err)
		}
		if t.Shape.Tag().Kind == weights.KindFree && len(t.Start) != d {
			return nil, fmt.Errorf("%w: free term %q needs %d starting values, got %d", ErrShape, t.Name, d, len(t.Start))
		}

		cols := make([]int, d)
		for j := range cols {
			cols[j] = lay.dk + j
		}
		params := make([]int, len(t.Start))
		for j := range params {
			params[j] = lay.np + j
		}
		lay.lags = append(lay.lags, d)
		lay.cols = append(lay.cols, cols)
		lay.params = append(lay.params, params)
		lay.dk += d
		lay.np += len(t.Start)
	}
	return lay, nil
}

// modelMatrix returns [y | X].
func (s Spec) modelMatrix(lay *layout) *mat.Dense {
	n := len(s.Response)
	mm := mat.NewDense(n, lay.dk+1, nil)
	mm.SetCol(0, s.Response)
	for ti, t := range s.Terms {
		for j, c := range lay.cols[ti] {
			mm.SetCol(c+1, mat.Col(nil, j, t.Data))
		}
	}
	return mm
}

// ModelMatrix returns the n×(dk+1) matrix with the response in column 0.
func (s Spec) ModelMatrix() (*mat.Dense, error) {
	lay, err := s.layout()
	if err != nil {
		return nil, err
	}
	return s.modelMatrix(lay), nil
}

// start concatenates the starting values of every term.
func (s Spec) start() []float64 {
	var out []float64
	for _, t := range s.Terms {
		out = append(out, t.Start...)
	}
	return out
}

// Constant is an intercept term for n observations.
func Constant(n int) Term {
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	return Term{
		Name:  "(Intercept)",
		Data:  mat.NewDense(n, 1, ones),
		Shape: weights.Free{},
		Start: []float64{0},
	}
}

// SingleRegressor builds y_t = [c +] Σ_{j=0..k} w_j(θ) x_{(t+1)m-1-j} + e_t.
// len(x) must equal len(y)*m. The leading periods without a full set of lags
// are dropped from y.
func SingleRegressor(y, x []float64, name string, k, m int, shape weights.Shape, start []float64, intercept bool) (Spec, error) {
	if m < 1 || len(x) != len(y)*m {
		return Spec{}, fmt.Errorf("%w: %d low-frequency and %d high-frequency observations with frequency %d",
			ErrShape, len(y), len(x), m)
	}
	lags, err := Fmls(x, k, m)
	if err != nil {
		return Spec{}, err
	}
	resp := append([]float64(nil), y[FmlsOffset(k, m):]...)

	var terms []Term
	if intercept {
		terms = append(terms, Constant(len(resp)))
	}
	terms = append(terms, Term{Name: name, Data: lags, Shape: shape, Start: start})
	return Spec{Response: resp, Terms: terms}, nil
}
