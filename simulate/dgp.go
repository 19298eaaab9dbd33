// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

// Package simulate generates mixed-frequency regressions with a known lag
// shape and studies the size of the restriction tests by Monte Carlo.
package simulate

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/strategist922/midasr/weights"
)

// DGP describes the data generating process
//
//	x_τ = AR x_{τ-1} + v_τ,                    v_τ ~ N(0, 1)   (high frequency)
//	y_t = Σ_{j=0..Lags} w_j(Params) x_{(t+1)m-1-j} + ε_t,  ε_t ~ N(0, NoiseSD²)
type DGP struct {
	// Low-frequency observations returned, after the burn-in.
	Observations int
	// High-frequency periods per low-frequency period (m).
	Frequency int
	// Highest high-frequency lag (k); the shape spans k+1 coefficients.
	Lags int
	// Shape and Params define the true lag weights.
	Shape  weights.Shape
	Params []float64
	// AR coefficient of the high-frequency predictor, |AR| < 1.
	AR float64
	// Standard deviation of the low-frequency error.
	NoiseSD float64
	// Low-frequency periods discarded before the sample starts.
	BurnIn int
}

// DefaultDGP is a monthly-to-quarterly design with smooth exponential Almon
// weights over a year of lags.
func DefaultDGP() DGP {
	return DGP{
		Observations: 250,
		Frequency:    3,
		Lags:         11,
		Shape:        weights.ExpAlmon{},
		Params:       []float64{-0.1, 0.1, -0.1, -0.001},
		AR:           0.5,
		NoiseSD:      1,
		BurnIn:       50,
	}
}

// Validate checks the DGP before any data is drawn.
func (d DGP) Validate() error {
	if d.Observations <= 0 {
		return fmt.Errorf("observations must be positive, got %d", d.Observations)
	}
	if d.Frequency < 1 {
		return fmt.Errorf("frequency must be at least 1, got %d", d.Frequency)
	}
	if d.Lags < 0 {
		return fmt.Errorf("lags must be non-negative, got %d", d.Lags)
	}
	if d.Shape == nil {
		return fmt.Errorf("no weight shape")
	}
	if err := weights.CheckParams(d.Shape, d.Params); err != nil {
		return err
	}
	if d.AR <= -1 || d.AR >= 1 {
		return fmt.Errorf("AR coefficient %v is not stationary", d.AR)
	}
	if d.NoiseSD < 0 {
		return fmt.Errorf("noise standard deviation must be non-negative, got %v", d.NoiseSD)
	}
	if d.BurnIn < 0 {
		return fmt.Errorf("burn-in must be non-negative, got %d", d.BurnIn)
	}
	return nil
}

// Weights returns the true lag coefficients.
func (d DGP) Weights() []float64 {
	return d.Shape.Weights(d.Params, d.Lags+1)
}

// Generate draws y (length Observations) and x (length Observations*Frequency)
// from src. The burn-in guarantees every y_t has its full set of lags.
func (d DGP) Generate(src rand.Source) (y, x []float64, err error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}

	m := d.Frequency
	// enough burn-in periods to cover the lag window
	burn := max(d.BurnIn, d.Lags/m+1)
	total := d.Observations + burn

	innov := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	eps := distuv.Normal{Mu: 0, Sigma: d.NoiseSD, Src: src}

	xAll := make([]float64, total*m)
	prev := 0.0
	for i := range xAll {
		prev = d.AR*prev + innov.Rand()
		xAll[i] = prev
	}

	w := d.Weights()
	y = make([]float64, d.Observations)
	for t := 0; t < d.Observations; t++ {
		last := (burn+t+1)*m - 1
		val := 0.0
		for j, wj := range w {
			val += wj * xAll[last-j]
		}
		if d.NoiseSD > 0 {
			val += eps.Rand()
		}
		y[t] = val
	}
	x = xAll[burn*m:]
	return y, x, nil
}
