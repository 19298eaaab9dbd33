// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package weights

import "math"

// NBeta is the normalized Beta density lag with parameters (scale, a, b).
// The density is evaluated on an equally spaced grid over [0, 1] nudged one
// machine epsilon inside the end points. NBeta has no closed-form gradient.
type NBeta struct{}

func (NBeta) Tag() Tag       { return Tag{Kind: KindCustom, Name: "nbeta"} }
func (NBeta) NumParams() int { return 3 }

func (NBeta) Weights(p []float64, d int) []float64 {
	w := make([]float64, d)
	if d == 1 {
		w[0] = p[0]
		return w
	}
	sum := 0.0
	for i := 0; i < d; i++ {
		x := float64(i) / float64(d-1)
		switch i {
		case 0:
			x += eps
		case d - 1:
			x -= eps
		}
		w[i] = math.Pow(x, p[1]-1) * math.Pow(1-x, p[2]-1)
		sum += w[i]
	}
	if sum < eps || math.IsInf(sum, 0) || math.IsNaN(sum) {
		for i := range w {
			w[i] = p[0] / float64(d)
		}
		return w
	}
	for i := range w {
		w[i] = p[0] * w[i] / sum
	}
	return w
}

var eps = math.Nextafter(1, 2) - 1
