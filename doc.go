// Package infomax is blind source separation with infomax ICA.
//
// Given m recordings of n independent signals, each recording a different
// linear blend, ICA learns an unmixing matrix W that turns the recordings
// back into the signals, up to order, sign and scale.
//
// What's inside:
//
//	ica/        — the infomax (logistic) solver: Solve, Step, Unmix, CheckFinite
//	matrix/     — dense row-major matrices, validators and kernels the solver runs on
//	signals/    — deterministic test sources and mixing helpers
//	score/      — correlation, permutation/sign matching, spectral-norm error
//	dataset/    — named matrix archives (YAML) and WAV loading
//	waveplot/   — stacked waveform plots
//	experiment/ — config-driven runs and parameter sweeps
//	cmd/icasep  — command-line front end for experiment
//
// The update rule, repeated a fixed number of times:
//
//	Y  = W·X
//	Z  = 1 / (1 + e^(−Y))
//	ΔW = eta · [ t·I + (1 − 2Z)·Yᵀ ] · W
//	W  = W + ΔW
//
// The logistic nonlinearity suits super-Gaussian (peaky, heavy-tailed)
// sources such as speech.
//
//	go get github.com/katalvlaran/infomax
package infomax
