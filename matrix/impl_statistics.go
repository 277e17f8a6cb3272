// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row-oriented statistics for channel-major signal matrices (one signal per row).
//
// Exposed API:
//   - RowMeans(X)  -> means           // per-row arithmetic mean
//   - CenterRows(X) -> (Xc, means)    // subtract per-row mean

package matrix

const (
	opRowMeans   = "RowMeans"
	opCenterRows = "CenterRows"
)

// RowMeans returns Σ_j X[i,j] / c for every row i.
// Complexity: Time O(r*c), Space O(r).
func RowMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opRowMeans, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf(opRowMeans, err)
	}
	means := make([]float64, d.r)
	var s float64
	for i := 0; i < d.r; i++ {
		s = ZeroSum
		base := i * d.c
		for j := 0; j < d.c; j++ {
			s += d.data[base+j]
		}
		means[i] = s / float64(d.c)
	}

	return means, nil
}

// CenterRows subtracts the per-row mean from every element (row-wise centering).
//
// Implementation:
//   - Stage 1: RowMeans(X).
//   - Stage 2: broadcast-subtract into a fresh copy.
//
// Returns:
//   - *Dense: centered copy (r×c).
//   - []float64: row means (len=r), reusable to un-center later.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func CenterRows(X Matrix) (*Dense, []float64, error) {
	means, err := RowMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}
	out := d.clone()
	for i := 0; i < out.r; i++ {
		base := i * out.c
		for j := 0; j < out.c; j++ {
			out.data[base+j] -= means[i]
		}
	}

	return out, means, nil
}
