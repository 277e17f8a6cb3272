// Package ica implements blind source separation by infomax Independent
// Component Analysis with the logistic nonlinearity.
//
// What it does:
//
//	Given m observed channels X (m×t) that are linear mixtures of n unknown,
//	statistically independent, super-Gaussian sources, Solve iteratively
//	learns an unmixing matrix W (n×m) such that Y = W·X approximates the
//	sources up to row permutation, scale and sign.
//
// Update rule (one iteration):
//
//	Y  = W·X
//	Z  = σ(Y) = 1 / (1 + e^(−Y))          elementwise
//	ΔW = η · [ t·I_n + (1 − 2Z)·Yᵀ ] · W
//	W  ← W + ΔW
//
// The identity term is scaled by the sample count t rather than averaging
// the gradient over samples, so the effective step is η·t. Typical η lies
// between 1e-6 and 1e-2 depending on t and the data amplitude.
//
// Guarantees:
//   - Exactly maxIter iterations run; there is no convergence test.
//   - Deterministic: no randomness inside the solver; identical inputs give
//     bit-identical outputs.
//   - Composable: Solve(X, Solve(X, W, η, k), η, k) equals Solve(X, W, η, 2k).
//   - Winit is never modified (copy-on-entry).
//
// Known limitation:
//
//	Too large an η (or too many iterations at a marginal η) overflows and
//	fills W with NaN/Inf. This is NOT caught and NOT clamped; Solve returns
//	the corrupted matrix with a nil error. Call CheckFinite on the result or
//	use SolveWithStats(..., WithFiniteCheck(k)) to detect divergence.
//
// Mixing turns a learned W back into an estimate of the mixing matrix.
//
// Concurrency:
//
//	Solve is synchronous and keeps no shared state; independent calls may
//	run on separate goroutines.
package ica
