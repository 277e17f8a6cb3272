// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/infomax/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMul_KnownProduct(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := MustFrom(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})
	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireClose(t, MustFrom(t, [][]float64{{58, 64}, {139, 154}}), got)
}

func TestMul_DimensionMismatch(t *testing.T) {
	a := MustDense(t, 2, 3)
	b := MustDense(t, 2, 3)
	_, err := matrix.Mul(a, b)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Mul(nil, b)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul_FallbackMatchesDense(t *testing.T) {
	a := MustDense(t, 4, 5)
	b := MustDense(t, 5, 3)
	fillDenseRand(t, a, 11)
	fillDenseRand(t, b, 12)

	fast, err := matrix.Mul(a, b)
	require.NoError(t, err)
	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	requireClose(t, fast, slow)
}

func TestMul_PropagatesNaN(t *testing.T) {
	// Zero entries must not short-circuit NaN propagation.
	a := MustFrom(t, [][]float64{{0, 1}})
	b := MustDense(t, 2, 1)
	b2, err := matrix.Apply(b, func(float64) float64 { return math.NaN() })
	require.NoError(t, err)
	got, err := matrix.Mul(a, b2)
	require.NoError(t, err)
	v, _ := got.At(0, 0)
	assert.True(t, math.IsNaN(v))
}

func TestMulTransB_EqualsMulTranspose(t *testing.T) {
	a := MustDense(t, 3, 6)
	b := MustDense(t, 4, 6)
	fillDenseRand(t, a, 21)
	fillDenseRand(t, b, 22)

	bt, err := matrix.Transpose(b)
	require.NoError(t, err)
	want, err := matrix.Mul(a, bt)
	require.NoError(t, err)
	got, err := matrix.MulTransB(a, b)
	require.NoError(t, err)
	requireClose(t, want, got)

	_, err = matrix.MulTransB(a, MustDense(t, 4, 5))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTranspose(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	got, err := matrix.Transpose(m)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, got.RowsCopy())

	_, err = matrix.Transpose(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestAddSubScaleHadamard(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	b := MustFrom(t, [][]float64{{5, 6}, {7, 8}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{6, 8}, {10, 12}}, sum.RowsCopy())

	diff, err := matrix.Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-4, -4}, {-4, -4}}, diff.RowsCopy())

	sc, err := matrix.Scale(hide{a}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.5, 1}, {1.5, 2}}, sc.RowsCopy())

	had, err := matrix.Hadamard(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5, 12}, {21, 32}}, had.RowsCopy())

	_, err = matrix.Add(a, MustDense(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Hadamard(a, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	// Operands are untouched.
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, a.RowsCopy())
}

func TestAddDiagonal(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	got, err := matrix.AddDiagonal(a, 10)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{11, 2}, {3, 14}}, got.RowsCopy())
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, a.RowsCopy())

	_, err = matrix.AddDiagonal(MustDense(t, 2, 3), 1)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
