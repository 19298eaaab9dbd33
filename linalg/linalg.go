// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

// Package linalg holds the dense linear algebra shared by the estimators and
// the restriction tests: a Moore-Penrose pseudo-inverse built on the SVD and
// an upper Cholesky factor wrapper.
package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotPositiveDefinite is returned when a Cholesky factorization fails.
	ErrNotPositiveDefinite = errors.New("matrix is not positive definite")
	// ErrNonFinite is returned for input holding NaN or infinite entries.
	ErrNonFinite = errors.New("matrix has NaN or infinite entries")
	// ErrSVD is returned when the singular value decomposition fails.
	ErrSVD = errors.New("singular value decomposition failed")
)

// Diagnostics reports how well-conditioned a pseudo-inverted matrix was.
type Diagnostics struct {
	Rank int     // number of singular values kept
	Dim  int     // min(rows, cols)
	Cond float64 // largest / smallest singular value, +Inf when singular
	Tol  float64 // relative tolerance actually used
}

// Deficient reports whether singular values were discarded.
func (d Diagnostics) Deficient() bool { return d.Rank < d.Dim }

// DefaultTolerance returns the tolerance used by Pinv when none is given,
// max(r, c) times machine epsilon.
func DefaultTolerance(r, c int) float64 {
	return float64(max(r, c)) * eps
}

var eps = math.Nextafter(1, 2) - 1

// Pinv computes the Moore-Penrose generalized inverse of a.
// Singular values s_i <= tol*s_max are treated as zero. A tol <= 0 selects
// DefaultTolerance. The result is c×r for an r×c input. Rank deficiency is
// not an error; inspect the returned Diagnostics instead. Non-finite input
// returns ErrNonFinite.
func Pinv(a mat.Matrix, tol float64) (*mat.Dense, Diagnostics, error) {
	r, c := a.Dims()
	if tol <= 0 {
		tol = DefaultTolerance(r, c)
	}
	diag := Diagnostics{Dim: min(r, c), Tol: tol, Cond: math.Inf(1)}

	if !AllFinite(a) {
		return nil, diag, fmt.Errorf("pinv of %d×%d matrix: %w", r, c, ErrNonFinite)
	}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, diag, fmt.Errorf("pinv of %d×%d matrix: %w", r, c, ErrSVD)
	}

	s := svd.Values(nil)
	rank := svd.Rank(tol)
	diag.Rank = rank
	if rank == diag.Dim && s[len(s)-1] > 0 {
		diag.Cond = s[0] / s[len(s)-1]
	}
	if rank == 0 {
		return mat.NewDense(c, r, nil), diag, nil
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// A+ = V_k S_k^{-1} U_k^T using the leading k singular triplets.
	vk := mat.DenseCopyOf(v.Slice(0, c, 0, rank))
	for j := 0; j < rank; j++ {
		inv := 1 / s[j]
		for i := 0; i < c; i++ {
			vk.Set(i, j, vk.At(i, j)*inv)
		}
	}
	out := mat.NewDense(c, r, nil)
	out.Mul(vk, u.Slice(0, r, 0, rank).T())
	return out, diag, nil
}

// AllFinite reports whether every entry of a is neither NaN nor infinite.
func AllFinite(a mat.Matrix) bool {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// UpperCholesky returns the upper triangular P with PᵗP = a.
func UpperCholesky(a mat.Symmetric) (*mat.TriDense, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		return nil, fmt.Errorf("cholesky of %d×%d matrix: %w", a.SymmetricDim(), a.SymmetricDim(), ErrNotPositiveDefinite)
	}
	n := a.SymmetricDim()
	p := mat.NewTriDense(n, mat.Upper, nil)
	chol.UTo(p)
	return p, nil
}

// CrossProd returns XᵗX as a symmetric matrix.
func CrossProd(x mat.Matrix) *mat.SymDense {
	_, c := x.Dims()
	out := mat.NewSymDense(c, nil)
	out.SymOuterK(1, x.T())
	return out
}

// Identity returns the n×n identity matrix.
func Identity(n int) *mat.Dense {
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out
}

// QuadForm returns xᵗ A x.
func QuadForm(x mat.Vector, a mat.Matrix) float64 {
	var ax mat.VecDense
	ax.MulVec(a, x)
	return mat.Dot(x, &ax)
}
