// SPDX-License-Identifier: MIT
// Package matrix — constructors & row/column utilities.
//
// Purpose:
//   - Provide thin, well-documented entry points for building matrices with
//     explicit shape (zeros, identity, seeded random) and for slicing signal
//     matrices (HeadCols, Stack, SelectRows).
//
// Determinism & Policy:
//   - NewRandom draws from a caller-supplied *rand.Rand; there is no package-level RNG.

package matrix

import (
	"fmt"
	"math/rand"
)

const (
	opNewRandom  = "NewRandom"
	opHeadCols   = "HeadCols"
	opStack      = "Stack"
	opSelectRows = "SelectRows"
	opCloneDense = "CloneDense"
)

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// CloneDense returns an independent *Dense copy of any Matrix.
// Use it to take ownership of a caller's matrix before mutating iterations.
func CloneDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opCloneDense, err)
	}
	if d, ok := m.(*Dense); ok {
		return d.clone(), nil
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opCloneDense, err)
	}

	return d, nil
}

// NewRandom returns a rows×cols matrix with entries scale·U[0,1), drawn from rng
// in row-major order. The same seed always yields the same matrix.
//
// Errors:
//   - ErrInvalidDimensions; ErrNilMatrix when rng is nil; ErrNaNInf for a non-finite scale.
func NewRandom(rows, cols int, rng *rand.Rand, scale float64) (*Dense, error) {
	if rng == nil {
		return nil, matrixErrorf(opNewRandom, fmt.Errorf("nil rng: %w", ErrNilMatrix))
	}
	if err := ValidateFiniteScalar(scale); err != nil {
		return nil, matrixErrorf(opNewRandom, err)
	}
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opNewRandom, err)
	}
	for idx := range m.data {
		m.data[idx] = scale * rng.Float64()
	}

	return m, nil
}

// HeadCols returns a copy of the first n columns of m (n is clamped to Cols()).
// Used to window long signals, e.g. the first 40 samples for plotting.
func HeadCols(m Matrix, n int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opHeadCols, err)
	}
	if n <= 0 {
		return nil, matrixErrorf(opHeadCols, ErrInvalidDimensions)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opHeadCols, err)
	}
	if n > d.c {
		n = d.c
	}
	out, err := NewDense(d.r, n)
	if err != nil {
		return nil, matrixErrorf(opHeadCols, err)
	}
	for i := 0; i < d.r; i++ {
		copy(out.data[i*n:(i+1)*n], d.data[i*d.c:i*d.c+n])
	}

	return out, nil
}

// SelectRows returns a new matrix made of rows idx[0], idx[1], ... of m.
// Indices may repeat; each must be in range.
func SelectRows(m Matrix, idx []int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSelectRows, err)
	}
	if len(idx) == 0 {
		return nil, matrixErrorf(opSelectRows, ErrInvalidDimensions)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opSelectRows, err)
	}
	out, err := NewDense(len(idx), d.c)
	if err != nil {
		return nil, matrixErrorf(opSelectRows, err)
	}
	for k, i := range idx {
		if i < 0 || i >= d.r {
			return nil, matrixErrorf(opSelectRows, denseErrorf(ctxRow, i, 0, ErrOutOfRange))
		}
		copy(out.data[k*d.c:(k+1)*d.c], d.data[i*d.c:(i+1)*d.c])
	}

	return out, nil
}

// Stack concatenates matrices vertically (all must share Cols()).
func Stack(ms ...Matrix) (*Dense, error) {
	if len(ms) == 0 {
		return nil, matrixErrorf(opStack, ErrInvalidDimensions)
	}
	rows := 0
	for _, m := range ms {
		if err := ValidateNotNil(m); err != nil {
			return nil, matrixErrorf(opStack, err)
		}
		if m.Cols() != ms[0].Cols() {
			return nil, matrixErrorf(opStack, ErrDimensionMismatch)
		}
		rows += m.Rows()
	}
	cols := ms[0].Cols()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opStack, err)
	}
	off := 0
	for _, m := range ms {
		d, err := asDense(m)
		if err != nil {
			return nil, matrixErrorf(opStack, err)
		}
		off += copy(out.data[off:], d.data)
	}

	return out, nil
}
