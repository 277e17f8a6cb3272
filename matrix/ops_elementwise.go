// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Elementwise kernels over a single matrix: Apply, Logistic, ReplaceInfNaN.
//   - Diagnostics: FindNonFinite, MinMax, AllClose.
//
// Determinism:
//   - Single flat loop 0..r*c−1 in row-major order.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opApply         = "Apply"
	opLogistic      = "Logistic"
	opReplaceInfNaN = "ReplaceInfNaN"
	opFindNonFinite = "FindNonFinite"
	opMinMax        = "MinMax"
	opAllClose      = "AllClose"
)

// Apply returns a new matrix with fn applied to every element.
// fn is called exactly once per element in row-major order.
// Complexity: Time O(r*c), Space O(r*c).
func Apply(m Matrix, fn func(float64) float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opApply, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opApply, err)
	}
	res, err := NewDense(d.r, d.c)
	if err != nil {
		return nil, matrixErrorf(opApply, err)
	}
	for idx, v := range d.data {
		res.data[idx] = fn(v)
	}

	return res, nil
}

// Sigmoid is the logistic function 1 / (1 + e^(−x)).
// Large negative x gives exp overflow to +Inf and a result of exactly 0; NaN stays NaN.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Logistic returns the elementwise logistic sigmoid of m.
// No clamping is applied to the argument of exp.
// Complexity: Time O(r*c), Space O(r*c).
func Logistic(m Matrix) (*Dense, error) {
	res, err := Apply(m, Sigmoid)
	if err != nil {
		return nil, matrixErrorf(opLogistic, err)
	}

	return res, nil
}

// ReplaceInfNaN copies m replacing any {±Inf, NaN} by val (val must be finite).
// Complexity: Time O(r*c), Space O(r*c).
func ReplaceInfNaN(m Matrix, val float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opReplaceInfNaN, err)
	}
	if err := ValidateFiniteScalar(val); err != nil {
		return nil, matrixErrorf(opReplaceInfNaN, err)
	}
	res, err := Apply(m, func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return val
		}
		return v
	})
	if err != nil {
		return nil, matrixErrorf(opReplaceInfNaN, err)
	}

	return res, nil
}

// FindNonFinite scans m in row-major order and reports the first NaN/±Inf cell.
// found=false means every element is finite.
//
// AI-Hints:
//   - This is a read-only diagnostic; it never modifies m.
func FindNonFinite(m Matrix) (row, col int, found bool, err error) {
	if err = ValidateNotNil(m); err != nil {
		return 0, 0, false, matrixErrorf(opFindNonFinite, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, 0, false, matrixErrorf(opFindNonFinite, err)
	}
	for idx, v := range d.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return idx / d.c, idx % d.c, true, nil
		}
	}

	return 0, 0, false, nil
}

// MinMax returns the global minimum and maximum over all elements.
// NaN elements are skipped; an all-NaN matrix yields (NaN, NaN).
func MinMax(m Matrix) (lo, hi float64, err error) {
	if err = ValidateNotNil(m); err != nil {
		return 0, 0, matrixErrorf(opMinMax, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, 0, matrixErrorf(opMinMax, err)
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	seen := false
	for _, v := range d.data {
		if math.IsNaN(v) {
			continue
		}
		seen = true
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if !seen {
		return math.NaN(), math.NaN(), nil
	}

	return lo, hi, nil
}

// AllClose checks elementwise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol must be finite; negative values are normalized to |rtol|, |atol|.
//   - Any NaN element makes the pair not close.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateFiniteScalar(rtol); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateFiniteScalar(atol); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, db, err := asDensePair(a, b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for idx, av := range da.data {
		bv := db.data[idx]
		if av == bv {
			continue // covers equal infinities
		}
		if !(math.Abs(av-bv) <= atol+rtol*math.Abs(bv)) {
			return false, nil
		}
	}

	return true, nil
}
