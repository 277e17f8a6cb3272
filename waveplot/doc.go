// Package waveplot draws the rows of a signal matrix as stacked traces.
//
// Every row is rescaled with the matrix-wide minimum and maximum, then
// lifted by spacing·i so row i sits above row i−1. Only the first few
// samples are drawn by default, which is enough to eyeball whether a
// recovered source looks like its original.
package waveplot
