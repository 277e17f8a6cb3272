package score

import (
	"fmt"

	"github.com/katalvlaran/infomax/matrix"
)

// AmariIndex measures how far the global system P = W·A is from a scaled
// permutation, using the energies p_ij²:
//
//	Σ_i (Σ_j p_ij² / max_j p_ij² − 1) + Σ_j (Σ_i p_ij² / max_i p_ij² − 1)
//
// normalized by 2n(n−1) into [0, 1]. 0 means perfect separation.
// P must be square; a 1×1 system always scores 0.
func AmariIndex(W, A matrix.Matrix) (float64, error) {
	P, err := matrix.Mul(W, A)
	if err != nil {
		return 0, fmt.Errorf("amari: %w", err)
	}
	n := P.Rows()
	if n != P.Cols() {
		return 0, fmt.Errorf("amari: W·A is %d×%d: %w", n, P.Cols(), matrix.ErrDimensionMismatch)
	}
	if n < 2 {
		return 0, nil
	}
	E, err := matrix.Hadamard(P, P)
	if err != nil {
		return 0, fmt.Errorf("amari: %w", err)
	}
	Et, err := matrix.Transpose(E)
	if err != nil {
		return 0, fmt.Errorf("amari: %w", err)
	}

	return (rowSpread(E) + rowSpread(Et)) / float64(2*n*(n-1)), nil
}

// rowSpread sums Σ_j e_ij / max_j e_ij − 1 over rows. An all-zero row
// counts as fully spread (n−1).
func rowSpread(E *matrix.Dense) float64 {
	var total float64
	for _, row := range E.RowsCopy() {
		var sum, hi float64
		for _, v := range row {
			sum += v
			if v > hi {
				hi = v
			}
		}
		if hi == 0 {
			total += float64(len(row) - 1)
			continue
		}
		total += sum/hi - 1
	}

	return total
}
