// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Canonical dense kernels: Add, Sub, Mul, MulTransB, Transpose, Scale,
//     Hadamard, AddDiagonal.
//   - Every kernel allocates a fresh *Dense result; operands are never mutated.
//
// Determinism & Performance:
//   - Fixed i→k→j (Mul) and i→j→k (MulTransB) loop orders; results are
//     bit-identical across runs for identical inputs.
//   - *Dense operands are read straight from their flat buffers; any other
//     Matrix implementation is materialized once via At (asDense).
//   - Result buffers are written directly; the numeric policy of Set is not
//     consulted, so NaN/Inf produced by the arithmetic propagate unchanged.
//
// AI-Hints:
//   - Use MulTransB(a, b) for a·bᵀ instead of Mul(a, Transpose(b)); it saves
//     an allocation and walks both operands row-wise.

package matrix

import "fmt"

// Operation name constants for unified error wrapping.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opMul         = "Mul"
	opMulTransB   = "MulTransB"
	opTranspose   = "Transpose"
	opScale       = "Scale"
	opHadamard    = "Hadamard"
	opAddDiagonal = "AddDiagonal"
)

// matrixErrorf wraps err with an operation tag: "<tag>: <err>".
// Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`;
// wrapping nil would yield a non-nil error around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it is *Dense, otherwise a Dense copy built through At.
// The fallback keeps kernels single-pathed while still honoring foreign Matrix implementations.
// Complexity: O(1) for *Dense, O(r*c) otherwise.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// asDensePair converts both operands with asDense, stopping on the first failure.
func asDensePair(a, b Matrix) (*Dense, *Dense, error) {
	da, err := asDense(a)
	if err != nil {
		return nil, nil, err
	}
	db, err := asDense(b)
	if err != nil {
		return nil, nil, err
	}

	return da, db, nil
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (from ValidateBinarySameShape).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, db, err := asDensePair(a, b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	// Single flat loop over the row-major buffers.
	for idx := range res.data {
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add returns a + b (elementwise). Shapes must match.
// Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a − b (elementwise). Shapes must match.
// Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul returns the matrix product C = A·B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b) (a.Cols == b.Rows).
//   - Stage 2: i→k→j loop over flat buffers; B rows are streamed contiguously.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed loop order; every product is accumulated, zeros included, so
//     NaN/Inf in either operand always reaches the result.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, db, err := asDensePair(a, b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	// da.data layout: i*aCols + k; db.data layout: k*bCols + j.
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// MulTransB returns C = A·Bᵀ without materializing Bᵀ.
// Requires a.Cols == b.Cols; the result is a.Rows × b.Rows.
//
// Implementation:
//   - C[i,j] = Σ_k A[i,k]·B[j,k], accumulated in k order (dot product of two rows).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r_a*r_b*c), Space O(r_a*r_b).
func MulTransB(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMulTransB, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMulTransB, err)
	}
	if a.Cols() != b.Cols() {
		return nil, matrixErrorf(opMulTransB, ErrDimensionMismatch)
	}
	da, db, err := asDensePair(a, b)
	if err != nil {
		return nil, matrixErrorf(opMulTransB, err)
	}
	res, err := NewDense(da.r, db.r)
	if err != nil {
		return nil, matrixErrorf(opMulTransB, err)
	}

	inner := da.c
	var sum float64
	for i := 0; i < da.r; i++ {
		rowA := da.data[i*inner : (i+1)*inner]
		for j := 0; j < db.r; j++ {
			rowB := db.data[j*inner : (j+1)*inner]
			sum = ZeroSum
			for k := 0; k < inner; k++ {
				sum += rowA[k] * rowB[k]
			}
			res.data[i*db.r+j] = sum
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The original matrix is never mutated.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	for i := 0; i < d.r; i++ {
		base := i * d.c
		for j := 0; j < d.c; j++ {
			res.data[j*d.r+i] = d.data[base+j]
		}
	}

	return res, nil
}

// Scale returns alpha·m. alpha is applied as-is (NaN/Inf included).
// Complexity: Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(d.r, d.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range d.data {
		res.data[idx] = alpha * v
	}

	return res, nil
}

// Hadamard returns the elementwise product a∘b. Shapes must match.
// Complexity: Time O(r*c), Space O(r*c).
func Hadamard(a, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	da, db, err := asDensePair(a, b)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	for idx := range res.data {
		res.data[idx] = da.data[idx] * db.data[idx]
	}

	return res, nil
}

// AddDiagonal returns m + alpha·I for a square m.
// Equivalent to Add(m, Scale(I, alpha)) with a single allocation.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
//
// Complexity:
//   - Time O(n²) copy + O(n) diagonal writes.
func AddDiagonal(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opAddDiagonal, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opAddDiagonal, err)
	}
	res := d.clone()
	for i := 0; i < res.r; i++ {
		res.data[i*res.c+i] += alpha
	}

	return res, nil
}
