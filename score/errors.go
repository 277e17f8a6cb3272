package score

import "errors"

var (
	// ErrEmpty indicates a series with no samples.
	ErrEmpty = errors.New("score: empty series")

	// ErrLengthMismatch indicates series (or matrix rows) of different lengths.
	ErrLengthMismatch = errors.New("score: length mismatch")

	// ErrFactorization indicates the SVD behind SpectralNormError did not converge.
	ErrFactorization = errors.New("score: SVD factorization failed")
)
