// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults (single source of truth).
//
// Notes:
//   - validateNaNInf controls whether Set() and row-based ingestion reject
//     NaN/±Inf. Kernels that write results (Mul, Apply, ...) write straight
//     into the flat buffer and never consult the policy, so a diverging
//     computation propagates NaN instead of failing half-way.
package matrix

// Numeric policy.
const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultRTol is the relative tolerance used by AllClose helpers in callers and tests.
	DefaultRTol = 1e-9

	// DefaultATol is the absolute tolerance used by AllClose helpers in callers and tests.
	DefaultATol = 1e-12
)

// ZeroSum is the neutral accumulator for dot products.
const ZeroSum = 0.0
