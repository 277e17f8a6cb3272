package ica

import (
	"fmt"
	"math"

	"github.com/katalvlaran/infomax/matrix"
)

// Solve learns an unmixing matrix with the infomax (logistic) rule.
//
// Description:
//
//	Given an observed mixture X (m channels × t samples) and an initial guess
//	Winit (n sources × m channels), Solve applies the update
//
//	  Y  = W·X
//	  Z  = 1 / (1 + exp(−Y))
//	  ΔW = eta · [ t·I_n + (1 − 2Z)·Yᵀ ] · W
//	  W  = W + ΔW
//
//	exactly maxIter times and returns the final W. There is no convergence
//	test and no early exit.
//
// Ownership:
//
//	Winit is copied on entry and never modified; X is only read.
//
// Numeric behavior:
//
//	Nothing is clamped. A learning rate that is too large for the data scale
//	(the step grows with t) overflows exp and fills W with NaN/Inf; Solve
//	still returns nil error in that case. Use CheckFinite on the result, or
//	SolveWithStats with WithFiniteCheck, to detect divergence.
//
// Errors:
//   - ErrShapeMismatch   — nil input or Winit.Cols() != X.Rows().
//   - ErrBadLearningRate — eta < 0, NaN or ±Inf. eta == 0 is accepted and
//     returns a copy of Winit.
//   - ErrBadIterations   — maxIter <= 0.
//
// Complexity:
//
//	Time O(maxIter · n·t·(m+n)), Space O(n·t) per iteration.
func Solve(X, Winit matrix.Matrix, eta float64, maxIter int, opts ...Option) (*matrix.Dense, error) {
	W, _, err := SolveWithStats(X, Winit, eta, maxIter, opts...)

	return W, err
}

// SolveWithStats is Solve plus a Stats summary of the run.
func SolveWithStats(X, Winit matrix.Matrix, eta float64, maxIter int, opts ...Option) (*matrix.Dense, Stats, error) {
	if err := validate(X, Winit, eta); err != nil {
		return nil, Stats{}, err
	}
	if maxIter <= 0 {
		return nil, Stats{}, fmt.Errorf("Solve: maxIter=%d: %w", maxIter, ErrBadIterations)
	}
	o := gatherOptions(opts...)

	// Copy-on-entry: the accumulator is owned by this call.
	W, err := matrix.CloneDense(Winit)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("Solve: %w", err)
	}
	// X is read every iteration; materialize foreign implementations once.
	if _, ok := X.(*matrix.Dense); !ok {
		if X, err = matrix.CloneDense(X); err != nil {
			return nil, Stats{}, fmt.Errorf("Solve: %w", err)
		}
	}

	stats := Stats{}
	for iter := 1; iter <= maxIter; iter++ {
		if W, err = step(X, W, eta); err != nil {
			return nil, stats, fmt.Errorf("Solve: iteration %d: %w", iter, err)
		}
		stats.Iterations = iter

		if o.finiteCheckEvery > 0 && stats.DivergedAt == 0 && iter%o.finiteCheckEvery == 0 {
			if _, _, found, _ := matrix.FindNonFinite(W); found {
				stats.DivergedAt = iter
			}
		}
		if o.observer != nil {
			o.observer(iter, W.Clone().(*matrix.Dense))
		}
	}

	return W, stats, nil
}

// Step applies a single infomax update and returns the new W.
// W is not modified. Same validation as Solve (maxIter aside).
func Step(X, W matrix.Matrix, eta float64) (*matrix.Dense, error) {
	if err := validate(X, W, eta); err != nil {
		return nil, err
	}

	return step(X, W, eta)
}

// step is the pure update W → W + ΔW. Inputs are assumed validated.
func step(X, W matrix.Matrix, eta float64) (*matrix.Dense, error) {
	t := float64(X.Cols())

	// Y = W·X (n×t)
	Y, err := matrix.Mul(W, X)
	if err != nil {
		return nil, err
	}
	// Z = σ(Y) (n×t)
	Z, err := matrix.Logistic(Y)
	if err != nil {
		return nil, err
	}
	// G = 1 − 2Z (n×t)
	G, err := matrix.Apply(Z, func(z float64) float64 { return 1 - 2*z })
	if err != nil {
		return nil, err
	}
	// C = t·I_n + G·Yᵀ (n×n)
	GY, err := matrix.MulTransB(G, Y)
	if err != nil {
		return nil, err
	}
	C, err := matrix.AddDiagonal(GY, t)
	if err != nil {
		return nil, err
	}
	// ΔW = eta · C·W (n×m)
	CW, err := matrix.Mul(C, W)
	if err != nil {
		return nil, err
	}
	dW, err := matrix.Scale(CW, eta)
	if err != nil {
		return nil, err
	}

	return matrix.Add(W, dW)
}

// Unmix returns the recovered signals Y = W·X (n×t).
func Unmix(W, X matrix.Matrix) (*matrix.Dense, error) {
	if err := validateShapes(X, W); err != nil {
		return nil, err
	}

	return matrix.Mul(W, X)
}

// CheckFinite reports ErrNumericInstability (with the first offending cell)
// when W contains NaN or ±Inf. It is a read-only post-hoc diagnostic.
func CheckFinite(W matrix.Matrix) error {
	r, c, found, err := matrix.FindNonFinite(W)
	if err != nil {
		return fmt.Errorf("CheckFinite: %w", err)
	}
	if found {
		return fmt.Errorf("CheckFinite: W[%d,%d]: %w", r, c, ErrNumericInstability)
	}

	return nil
}

// validate runs the entry checks shared by Solve and Step.
func validate(X, W matrix.Matrix, eta float64) error {
	if err := validateShapes(X, W); err != nil {
		return err
	}
	if eta < 0 || math.IsNaN(eta) || math.IsInf(eta, 0) {
		return fmt.Errorf("Solve: eta=%g: %w", eta, ErrBadLearningRate)
	}

	return nil
}

// validateShapes enforces W (n×m) · X (m×t) compatibility.
func validateShapes(X, W matrix.Matrix) error {
	if matrix.ValidateNotNil(X) != nil {
		return fmt.Errorf("X is nil: %w", ErrShapeMismatch)
	}
	if matrix.ValidateNotNil(W) != nil {
		return fmt.Errorf("W is nil: %w", ErrShapeMismatch)
	}
	if W.Cols() != X.Rows() {
		return fmt.Errorf("W is %dx%d, X is %dx%d: %w", W.Rows(), W.Cols(), X.Rows(), X.Cols(), ErrShapeMismatch)
	}

	return nil
}
