// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package weights

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// NEAlmon is the normalized exponential Almon lag.
//
//	w_i = p_0 * exp(sum_{j>=1} p_j i^j) / sum_k exp(sum_{j>=1} p_j k^j),  i = 1..d
//
// With every curvature parameter p_1.. at zero the weights collapse to the
// simple average p_0/d.
type NEAlmon struct{}

func (NEAlmon) Tag() Tag       { return Tag{Kind: KindExponentialAlmon, Name: "nealmon"} }
func (NEAlmon) NumParams() int { return -1 }

// shares returns exp(poly_i)/sum(exp(poly)) for i = 1..d, shifted by the max
// exponent so large curvature does not overflow.
func (NEAlmon) shares(p []float64, d int) []float64 {
	poly := make([]float64, d)
	top := math.Inf(-1)
	for i := 0; i < d; i++ {
		x := float64(i + 1)
		pw := x
		for j := 1; j < len(p); j++ {
			poly[i] += p[j] * pw
			pw *= x
		}
		top = math.Max(top, poly[i])
	}
	sum := 0.0
	for i := range poly {
		poly[i] = math.Exp(poly[i] - top)
		sum += poly[i]
	}
	for i := range poly {
		poly[i] /= sum
	}
	return poly
}

func (s NEAlmon) Weights(p []float64, d int) []float64 {
	w := s.shares(p, d)
	for i := range w {
		w[i] *= p[0]
	}
	return w
}

func (s NEAlmon) Gradient(p []float64, d int) *mat.Dense {
	sh := s.shares(p, d)
	g := mat.NewDense(d, len(p), nil)

	// mean of i^j under the share distribution
	moment := make([]float64, len(p))
	for i := 0; i < d; i++ {
		x := float64(i + 1)
		pw := x
		for j := 1; j < len(p); j++ {
			moment[j] += sh[i] * pw
			pw *= x
		}
	}

	for i := 0; i < d; i++ {
		g.Set(i, 0, sh[i])
		x := float64(i + 1)
		pw := x
		for j := 1; j < len(p); j++ {
			g.Set(i, j, p[0]*sh[i]*(pw-moment[j]))
			pw *= x
		}
	}
	return g
}

// AlmonP is the raw Almon polynomial lag, w_i = sum_j p_j i^j with i = 1..d.
type AlmonP struct{}

func (AlmonP) Tag() Tag       { return Tag{Kind: KindPolynomial, Name: "almonp"} }
func (AlmonP) NumParams() int { return -1 }

func (AlmonP) Weights(p []float64, d int) []float64 {
	w := make([]float64, d)
	for i := 0; i < d; i++ {
		x := float64(i + 1)
		pw := 1.0
		for _, c := range p {
			w[i] += c * pw
			pw *= x
		}
	}
	return w
}

func (AlmonP) Gradient(p []float64, d int) *mat.Dense {
	g := mat.NewDense(d, len(p), nil)
	for i := 0; i < d; i++ {
		x := float64(i + 1)
		pw := 1.0
		for j := range p {
			g.Set(i, j, pw)
			pw *= x
		}
	}
	return g
}

// ExpAlmon is the linearly scaled exponential Almon lag
//
//	w_i = (p_0 + p_1 i) exp(p_2 i + p_3 i^2),  i = 0..d-1
//
// It is not normalized, so it does not reduce to an average and is tagged as
// a custom shape.
type ExpAlmon struct{}

func (ExpAlmon) Tag() Tag       { return Tag{Kind: KindCustom, Name: "expalmon"} }
func (ExpAlmon) NumParams() int { return 4 }

func (ExpAlmon) Weights(p []float64, d int) []float64 {
	w := make([]float64, d)
	for i := 0; i < d; i++ {
		x := float64(i)
		w[i] = (p[0] + p[1]*x) * math.Exp(p[2]*x+p[3]*x*x)
	}
	return w
}

func (ExpAlmon) Gradient(p []float64, d int) *mat.Dense {
	g := mat.NewDense(d, 4, nil)
	for i := 0; i < d; i++ {
		x := float64(i)
		e := math.Exp(p[2]*x + p[3]*x*x)
		w := (p[0] + p[1]*x) * e
		g.Set(i, 0, e)
		g.Set(i, 1, x*e)
		g.Set(i, 2, x*w)
		g.Set(i, 3, x*x*w)
	}
	return g
}
