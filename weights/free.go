// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package weights

import "gonum.org/v1/gonum/mat"

// Free leaves a lag block unrestricted: w = p, so len(p) must equal d.
type Free struct{}

func (Free) Tag() Tag       { return Tag{Kind: KindFree, Name: "free"} }
func (Free) NumParams() int { return -1 }

func (Free) Weights(p []float64, d int) []float64 {
	w := make([]float64, d)
	copy(w, p)
	return w
}

func (Free) Gradient(p []float64, d int) *mat.Dense {
	g := mat.NewDense(d, len(p), nil)
	for i := 0; i < min(d, len(p)); i++ {
		g.Set(i, i, 1)
	}
	return g
}
