package ica

import "errors"

var (
	// ErrShapeMismatch indicates W (n×m) and X (m×t) cannot be multiplied,
	// or that one of them is missing. Reported before any iteration runs.
	ErrShapeMismatch = errors.New("ica: shape mismatch")

	// ErrBadLearningRate indicates a negative, NaN or infinite learning rate.
	ErrBadLearningRate = errors.New("ica: learning rate must be finite and >= 0")

	// ErrBadIterations indicates maxIter <= 0.
	ErrBadIterations = errors.New("ica: iteration count must be > 0")

	// ErrNumericInstability is returned by CheckFinite when W holds NaN or ±Inf.
	// The solver itself never returns it.
	ErrNumericInstability = errors.New("ica: non-finite unmixing matrix")

	// ErrSingular is returned by Mixing when W lacks full row rank.
	ErrSingular = errors.New("ica: singular unmixing matrix")
)
