// Package experiment is the separation harness around package ica.
//
// A Runner builds a Problem (ground-truth sources U, mixing matrix A,
// mixture X = A·U and a random initial guess), solves it, and scores the
// recovery against U: correlation table, permutation and sign matching,
// and the spectral-norm error of the aligned recovery. Sweeps repeat the
// solve over iteration counts or channel counts. Runs are configured by a
// YAML Config and identified by a random UUID; timings and outcomes go to
// the Runner's logger.
package experiment
