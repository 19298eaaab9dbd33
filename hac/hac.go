// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

// Package hac estimates the long-run covariance ("meat") of regression
// scores x_t u_t with kernel weighted autocovariances (Newey-West).
package hac

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/strategist922/midasr/internal/logger"
)

var (
	ErrNoObservations = errors.New("hac: no observations")
	ErrShape          = errors.New("hac: residuals do not match design rows")
)

// Kernel selects the lag window.
type Kernel int

const (
	Bartlett Kernel = iota
	Parzen
)

func (k Kernel) String() string {
	switch k {
	case Bartlett:
		return "bartlett"
	case Parzen:
		return "parzen"
	}
	return fmt.Sprintf("Kernel(%d)", int(k))
}

// ParseKernel maps a kernel name to a Kernel.
func ParseKernel(s string) (Kernel, error) {
	switch strings.ToLower(s) {
	case "", "bartlett", "newey-west":
		return Bartlett, nil
	case "parzen":
		return Parzen, nil
	}
	return Bartlett, fmt.Errorf("hac: unknown kernel %q", s)
}

// Options for Meat.
type Options struct {
	Kernel Kernel
	// Lag is the truncation lag L. Negative picks floor(4 (n/100)^(2/9)).
	Lag int
}

// DefaultOptions is a Bartlett kernel with automatic lag.
func DefaultOptions() Options {
	return Options{Kernel: Bartlett, Lag: -1}
}

// AutoLag is the Newey-West rule of thumb floor(4 (n/100)^(2/9)).
func AutoLag(n int) int {
	return int(math.Floor(4 * math.Pow(float64(n)/100, 2.0/9.0)))
}

// weight returns the kernel weight for lag j with truncation L.
func (k Kernel) weight(j, L int) float64 {
	z := float64(j) / float64(L+1)
	switch k {
	case Parzen:
		if z <= 0.5 {
			return 1 - 6*z*z + 6*z*z*z
		}
		return 2 * math.Pow(1-z, 3)
	default:
		return 1 - z
	}
}

// Meat returns (1/n) [Γ_0 + sum_{j=1..L} w_j (Γ_j + Γ_jᵗ)] where
// Γ_j = sum_t ψ_t ψ_{t-j}ᵗ and ψ_t = x_t u_t.
// x: n x k regressors
// u: length n residuals
func Meat(x mat.Matrix, u []float64, opts Options) (*mat.SymDense, error) {
	n, k := x.Dims()
	if n == 0 {
		return nil, ErrNoObservations
	}
	if len(u) != n {
		return nil, fmt.Errorf("%w: %d residuals, %d rows", ErrShape, len(u), n)
	}

	L := opts.Lag
	if L < 0 {
		L = AutoLag(n)
	}
	if L > n-1 {
		L = n - 1
	}
	logger.ForComponent(logger.HAC).Debug("meat bandwidth", "kernel", opts.Kernel, "lag", L, "n", n)

	// scores psi (n x k)
	psi := mat.NewDense(n, k, nil)
	for t := 0; t < n; t++ {
		for j := 0; j < k; j++ {
			psi.Set(t, j, x.At(t, j)*u[t])
		}
	}

	acc := mat.NewDense(k, k, nil)
	acc.Mul(psi.T(), psi)

	for lag := 1; lag <= L; lag++ {
		w := opts.Kernel.weight(lag, L)
		if w == 0 {
			continue
		}
		// Γ_lag = psi[lag:]ᵗ psi[:n-lag]
		var gamma mat.Dense
		gamma.Mul(psi.Slice(lag, n, 0, k).T(), psi.Slice(0, n-lag, 0, k))

		var both mat.Dense
		both.Add(&gamma, gamma.T())
		both.Scale(w, &both)
		acc.Add(acc, &both)
	}

	out := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			// average the two triangles so tiny asymmetries from roundoff vanish
			out.SetSym(i, j, 0.5*(acc.At(i, j)+acc.At(j, i))/float64(n))
		}
	}
	return out, nil
}
