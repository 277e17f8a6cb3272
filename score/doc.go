// Package score measures how well recovered signals match ground truth.
//
// CorrelationCoefficient is the Pearson correlation of two equal-length
// series and returns 0 when either series is constant. CorrelationTable,
// Match and Assignment.Apply resolve the permutation and sign ambiguity of
// ICA output, and SpectralNormError gives the matrix 2-norm of the
// reconstruction error.
package score
