// Package matrix provides the dense linear-algebra layer used by the infomax
// ICA solver and its experiment harness.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with safe At/Set/Row accessors that
//     return sentinel errors instead of panicking.
//   - Kernels: Mul, MulTransB (A·Bᵀ), Transpose, Add, Sub, Scale, Hadamard,
//     AddDiagonal. Each allocates a fresh result and never mutates operands.
//   - Elementwise helpers: Apply, Logistic, ReplaceInfNaN.
//   - Diagnostics: FindNonFinite, MinMax, AllClose.
//   - Row statistics: RowMeans, CenterRows.
//   - Interop with gonum (ToGonum, FromGonum) for SVD-backed metrics.
//
// Numeric policy:
//
//	Set, SetRow and NewDenseFrom reject NaN/±Inf (DefaultValidateNaNInf).
//	Kernels write results directly and do NOT reject non-finite values, so a
//	diverging iterative computation produces NaN-filled output instead of an
//	error. Use FindNonFinite to detect that after the fact.
//
// Errors:
//
//	ErrInvalidDimensions, ErrOutOfRange, ErrDimensionMismatch, ErrNaNInf,
//	ErrNilMatrix, ErrRagged. Always match with errors.Is.
//
// Quick example:
//
//	X, _ := matrix.NewDenseFrom([][]float64{{1, 2, 3}, {4, 5, 6}})
//	W, _ := matrix.NewIdentity(2)
//	Y, _ := matrix.Mul(W, X) // Y == X
package matrix
