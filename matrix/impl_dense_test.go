// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/infomax/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	for _, tc := range []struct{ r, c int }{{0, 1}, {1, 0}, {-1, 3}, {0, 0}} {
		_, err := matrix.NewDense(tc.r, tc.c)
		assert.ErrorIs(t, err, matrix.ErrInvalidDimensions, "NewDense(%d,%d)", tc.r, tc.c)
	}
}

func TestDense_AtSetBounds(t *testing.T) {
	m := MustDense(t, 2, 3)
	require.NoError(t, m.Set(1, 2, 7.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
}

func TestDense_SetRejectsNonFinite(t *testing.T) {
	m := MustDense(t, 1, 1)
	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf)
}

func TestNewDenseFrom(t *testing.T) {
	rows := [][]float64{{1, 2, 3}, {4, 5, 6}}
	m := MustFrom(t, rows)
	r, c := m.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)

	// The constructor copies; mutating the source must not leak in.
	rows[0][0] = 99
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
}

func TestNewDenseFrom_Errors(t *testing.T) {
	_, err := matrix.NewDenseFrom(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFrom([][]float64{{}})
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrRagged)

	_, err = matrix.NewDenseFrom([][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestDense_RowAndSetRow(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, row)

	row[0] = -1 // copy, not a view
	v, _ := m.At(1, 0)
	assert.Equal(t, 3.0, v)

	require.NoError(t, m.SetRow(0, []float64{9, 8}))
	assert.Equal(t, [][]float64{{9, 8}, {3, 4}}, m.RowsCopy())

	_, err = m.Row(2)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.SetRow(0, []float64{1}), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, m.SetRow(0, []float64{1, math.Inf(1)}), matrix.ErrNaNInf)
}

func TestDense_CloneIndependent(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2}})
	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, 5))
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
}

func TestDense_String(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2.5}, {-3, 0}})
	assert.Equal(t, "[1, 2.5]\n[-3, 0]\n", m.String())
}
