// Package signals generates deterministic source signals and linear
// mixtures for exercising the ICA solver.
//
// A Generator is seeded once; its noise generators draw from one stream, so
// the order of calls fixes the output. Sources stacks several waveforms into
// a source matrix U, RandomMixing draws an m×n mixing matrix A, and Mix
// forms the observed channels X = A·U.
package signals
