package ica

import (
	"fmt"

	"github.com/katalvlaran/infomax/matrix"
	"gonum.org/v1/gonum/mat"
)

// Mixing estimates the mixing matrix from an unmixing matrix W (n×m, n <= m)
// as its minimum-norm right inverse Â (m×n), so that W·Â = I_n.
// The columns of Â are the recovered sources' channel footprints, up to the
// scale and order ambiguity of W.
//
// Errors:
//   - ErrShapeMismatch      — nil W or more rows than columns.
//   - ErrNumericInstability — W holds NaN or ±Inf.
//   - ErrSingular           — W is rank deficient or too ill-conditioned.
func Mixing(W matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(W); err != nil {
		return nil, fmt.Errorf("Mixing: %v: %w", err, ErrShapeMismatch)
	}
	n, m := W.Rows(), W.Cols()
	if n > m {
		return nil, fmt.Errorf("Mixing: W is %d×%d: %w", n, m, ErrShapeMismatch)
	}
	if err := CheckFinite(W); err != nil {
		return nil, fmt.Errorf("Mixing: %w", err)
	}
	g, err := matrix.ToGonum(W)
	if err != nil {
		return nil, fmt.Errorf("Mixing: %w", err)
	}
	I, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, fmt.Errorf("Mixing: %w", err)
	}
	eye, err := matrix.ToGonum(I)
	if err != nil {
		return nil, fmt.Errorf("Mixing: %w", err)
	}

	var inv mat.Dense
	if err = inv.Solve(g, eye); err != nil {
		return nil, fmt.Errorf("Mixing: %v: %w", err, ErrSingular)
	}

	return matrix.FromGonum(&inv)
}
