package score

import (
	"fmt"
	"math"

	"github.com/katalvlaran/infomax/matrix"
	"gonum.org/v1/gonum/stat"
)

// Correlation returns the Pearson correlation of a and b:
//
//	mean((a−ā)(b−b̄)) / (σ_a·σ_b)
//
// If either series is constant the result is 0 with a nil error; this is a
// defined edge case, not a failure. The result is clamped to [−1, 1] to
// absorb rounding in the normalization.
//
// Errors:
//   - ErrEmpty          — either series has no samples.
//   - ErrLengthMismatch — len(a) != len(b).
func Correlation(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmpty
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("correlation: %d vs %d samples: %w", len(a), len(b), ErrLengthMismatch)
	}
	if isConstant(a) || isConstant(b) {
		return 0, nil
	}
	c := stat.Correlation(a, b, nil)
	if math.IsNaN(c) {
		// Variance underflow on near-constant input.
		return 0, nil
	}

	return math.Max(-1, math.Min(1, c)), nil
}

// CorrelationCoefficient is Correlation without the error: malformed input
// (empty or mismatched lengths) also yields 0.
func CorrelationCoefficient(a, b []float64) float64 {
	c, err := Correlation(a, b)
	if err != nil {
		return 0
	}

	return c
}

// isConstant reports whether every sample equals the first one.
// Exact comparison avoids the rounding noise a computed variance would carry.
func isConstant(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return false
		}
	}

	return true
}

// CorrelationTable returns C with C[i,j] = Correlation(U row i, R row j).
// U holds ground-truth sources, R recovered signals; both must share Cols().
func CorrelationTable(U, R matrix.Matrix) (*matrix.Dense, error) {
	uRows, rRows, err := rowsOf(U, R)
	if err != nil {
		return nil, fmt.Errorf("correlation table: %w", err)
	}
	out, err := matrix.NewDense(len(uRows), len(rRows))
	if err != nil {
		return nil, fmt.Errorf("correlation table: %w", err)
	}
	for i, u := range uRows {
		for j, r := range rRows {
			c, err := Correlation(u, r)
			if err != nil {
				return nil, fmt.Errorf("correlation table (%d,%d): %w", i, j, err)
			}
			if err = out.Set(i, j, c); err != nil {
				return nil, fmt.Errorf("correlation table (%d,%d): %w", i, j, err)
			}
		}
	}

	return out, nil
}

// ExcessKurtosis returns the excess kurtosis of every row of R.
// Positive values indicate super-Gaussian rows, which the logistic rule
// is designed to recover.
func ExcessKurtosis(R matrix.Matrix) ([]float64, error) {
	d, err := matrix.CloneDense(R)
	if err != nil {
		return nil, fmt.Errorf("kurtosis: %w", err)
	}
	rows := d.RowsCopy()
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = stat.ExKurtosis(r, nil)
	}

	return out, nil
}

// rowsOf validates U and R for row-wise comparison and exports their rows.
func rowsOf(U, R matrix.Matrix) ([][]float64, [][]float64, error) {
	if err := matrix.ValidateNotNil(U); err != nil {
		return nil, nil, err
	}
	if err := matrix.ValidateNotNil(R); err != nil {
		return nil, nil, err
	}
	if U.Cols() != R.Cols() {
		return nil, nil, fmt.Errorf("%d vs %d samples: %w", U.Cols(), R.Cols(), ErrLengthMismatch)
	}
	ud, err := matrix.CloneDense(U)
	if err != nil {
		return nil, nil, err
	}
	rd, err := matrix.CloneDense(R)
	if err != nil {
		return nil, nil, err
	}

	return ud.RowsCopy(), rd.RowsCopy(), nil
}
