// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package linalg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randomDense(rng *rand.Rand, r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(r, c, data)
}

func TestPinvMatchesInverseForFullRank(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 5, 9} {
		m := randomDense(rng, n, n)
		// push it away from singular
		for i := 0; i < n; i++ {
			m.Set(i, i, m.At(i, i)+float64(n))
		}

		var inv mat.Dense
		require.NoError(t, inv.Inverse(m))

		pinv, diag, err := Pinv(m, 0)
		require.NoError(t, err)
		assert.Equal(t, n, diag.Rank)
		assert.False(t, diag.Deficient())
		assert.True(t, mat.EqualApprox(&inv, pinv, 1e-10), "n=%d", n)
	}
}

func TestPinvDefiningPropertyRankDeficient(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	// 6×4 matrix of rank 2
	a := randomDense(rng, 6, 2)
	b := randomDense(rng, 2, 4)
	var m mat.Dense
	m.Mul(a, b)

	pinv, diag, err := Pinv(&m, 1e-10)
	require.NoError(t, err)
	r, c := pinv.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 6, c)
	assert.Equal(t, 2, diag.Rank)
	assert.True(t, diag.Deficient())
	assert.True(t, math.IsInf(diag.Cond, 1))

	// M M+ M == M
	var mpm, tmp mat.Dense
	tmp.Mul(&m, pinv)
	mpm.Mul(&tmp, &m)
	assert.True(t, mat.EqualApprox(&mpm, &m, 1e-10))

	// M+ M M+ == M+
	var pmp mat.Dense
	tmp.Reset()
	tmp.Mul(pinv, &m)
	pmp.Mul(&tmp, pinv)
	assert.True(t, mat.EqualApprox(&pmp, pinv, 1e-10))
}

func TestPinvZeroMatrix(t *testing.T) {
	pinv, diag, err := Pinv(mat.NewDense(3, 2, nil), 0)
	require.NoError(t, err)
	r, c := pinv.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 0, diag.Rank)
	assert.Equal(t, 0.0, mat.Norm(pinv, 1))
}

func TestPinvToleranceControlsRank(t *testing.T) {
	m := mat.NewDiagDense(3, []float64{1, 1e-3, 1e-9})

	_, loose, err := Pinv(m, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 2, loose.Rank)

	pinv, tight, err := Pinv(m, 1e-12)
	require.NoError(t, err)
	assert.Equal(t, 3, tight.Rank)
	assert.InDelta(t, 1e9, pinv.At(2, 2), 1)
	assert.InEpsilon(t, 1e9, tight.Cond, 1e-9)
}

func TestPinvRejectsNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		m := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
		m.Set(1, 0, bad)
		assert.False(t, AllFinite(m))

		pinv, _, err := Pinv(m, 0)
		assert.ErrorIs(t, err, ErrNonFinite)
		assert.Nil(t, pinv)
	}
	assert.True(t, AllFinite(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
}

func TestUpperCholesky(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	x := randomDense(rng, 20, 4)
	xtx := CrossProd(x)

	p, err := UpperCholesky(xtx)
	require.NoError(t, err)

	// lower triangle must be zero
	for i := 0; i < 4; i++ {
		for j := 0; j < i; j++ {
			assert.Equal(t, 0.0, p.At(i, j))
		}
	}

	var ptp mat.Dense
	ptp.Mul(p.T(), p)
	assert.True(t, mat.EqualApprox(&ptp, xtx, 1e-10))
}

func TestUpperCholeskySingular(t *testing.T) {
	// two identical columns
	x := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	_, err := UpperCholesky(CrossProd(x))
	require.ErrorIs(t, err, ErrNotPositiveDefinite)
}

func TestCrossProdAndQuadForm(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
	})
	xtx := CrossProd(x)
	assert.Equal(t, 35.0, xtx.At(0, 0))
	assert.Equal(t, 44.0, xtx.At(0, 1))
	assert.Equal(t, 56.0, xtx.At(1, 1))

	v := mat.NewVecDense(2, []float64{1, -1})
	// 35 - 2*44 + 56
	assert.Equal(t, 3.0, QuadForm(v, xtx))

	id := Identity(3)
	assert.Equal(t, 3.0, mat.Trace(id))
}

func TestLeastSquaresExactFit(t *testing.T) {
	// y = 1 + 2 x
	X := mat.NewDense(4, 2, []float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
	})
	y := []float64{1, 3, 5, 7}

	b, resid, usedSVD, err := LeastSquares(X, y)
	require.NoError(t, err)
	assert.False(t, usedSVD)
	assert.InDelta(t, 1, b[0], 1e-12)
	assert.InDelta(t, 2, b[1], 1e-12)
	for _, r := range resid {
		assert.InDelta(t, 0, r, 1e-12)
	}
}

func TestLeastSquaresCollinearFallsBackToSVD(t *testing.T) {
	// second column duplicates the first, minimum-norm solution splits the slope
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	y := []float64{2, 4, 6, 8}

	b, resid, usedSVD, err := LeastSquares(X, y)
	require.NoError(t, err)
	assert.True(t, usedSVD)
	assert.InDelta(t, 1, b[0], 1e-9)
	assert.InDelta(t, 1, b[1], 1e-9)
	for _, r := range resid {
		assert.InDelta(t, 0, r, 1e-9)
	}
}

func TestLeastSquaresBadInput(t *testing.T) {
	_, _, _, err := LeastSquares(mat.NewDense(3, 1, []float64{1, 2, 3}), []float64{1, 2})
	assert.Error(t, err)
}
