package score

import (
	"fmt"
	"math"

	"github.com/katalvlaran/infomax/matrix"
	"gonum.org/v1/gonum/mat"
)

// Assignment pairs each ground-truth source with one recovered row.
// Index i refers to source row i; Recovered[i] is -1 when more sources than
// recovered rows exist and source i was left unmatched.
type Assignment struct {
	Recovered []int     // recovered row index per source
	Sign      []float64 // +1 or −1: multiply the recovered row by this to align it
	Corr      []float64 // signed correlation before the sign flip
}

// MinAbsCorr returns the weakest |correlation| over matched pairs (0 if none matched).
func (a Assignment) MinAbsCorr() float64 {
	lo := math.Inf(1)
	for i, r := range a.Recovered {
		if r < 0 {
			continue
		}
		lo = math.Min(lo, math.Abs(a.Corr[i]))
	}
	if math.IsInf(lo, 1) {
		return 0
	}

	return lo
}

// Match resolves the permutation and sign ambiguity of ICA output.
// It greedily pairs the (source, recovered) couple with the largest
// |correlation|, removes both, and repeats until one side is exhausted.
// Ties are broken by lowest source index, then lowest recovered index.
func Match(U, R matrix.Matrix) (Assignment, error) {
	C, err := CorrelationTable(U, R)
	if err != nil {
		return Assignment{}, fmt.Errorf("match: %w", err)
	}
	nU, nR := C.Rows(), C.Cols()
	a := Assignment{
		Recovered: make([]int, nU),
		Sign:      make([]float64, nU),
		Corr:      make([]float64, nU),
	}
	for i := range a.Recovered {
		a.Recovered[i] = -1
		a.Sign[i] = 1
	}
	usedU := make([]bool, nU)
	usedR := make([]bool, nR)
	pairs := nU
	if nR < pairs {
		pairs = nR
	}
	for p := 0; p < pairs; p++ {
		bi, bj, best := -1, -1, -1.0
		for i := 0; i < nU; i++ {
			if usedU[i] {
				continue
			}
			for j := 0; j < nR; j++ {
				if usedR[j] {
					continue
				}
				v, _ := C.At(i, j)
				if math.Abs(v) > best {
					bi, bj, best = i, j, math.Abs(v)
				}
			}
		}
		usedU[bi], usedR[bj] = true, true
		c, _ := C.At(bi, bj)
		a.Recovered[bi] = bj
		a.Corr[bi] = c
		if c < 0 {
			a.Sign[bi] = -1
		}
	}

	return a, nil
}

// Apply reorders and sign-flips R so row i lines up with source i.
// Unmatched sources are skipped, so the result has one row per matched pair.
func (a Assignment) Apply(R matrix.Matrix) (*matrix.Dense, error) {
	idx := make([]int, 0, len(a.Recovered))
	signs := make([]float64, 0, len(a.Recovered))
	for i, r := range a.Recovered {
		if r >= 0 {
			idx = append(idx, r)
			signs = append(signs, a.Sign[i])
		}
	}
	out, err := matrix.SelectRows(R, idx)
	if err != nil {
		return nil, fmt.Errorf("assignment: %w", err)
	}
	for i, s := range signs {
		if s > 0 {
			continue
		}
		row, err := out.Row(i)
		if err != nil {
			return nil, fmt.Errorf("assignment: %w", err)
		}
		for k := range row {
			row[k] = -row[k]
		}
		if err = out.SetRow(i, row); err != nil {
			return nil, fmt.Errorf("assignment: %w", err)
		}
	}

	return out, nil
}

// SpectralNormError returns ‖A − B‖₂, the largest singular value of the
// difference, as the harness's reconstruction error metric.
func SpectralNormError(A, B matrix.Matrix) (float64, error) {
	D, err := matrix.Sub(A, B)
	if err != nil {
		return 0, fmt.Errorf("spectral norm: %w", err)
	}
	g, err := matrix.ToGonum(D)
	if err != nil {
		return 0, fmt.Errorf("spectral norm: %w", err)
	}
	var svd mat.SVD
	if ok := svd.Factorize(g, mat.SVDNone); !ok {
		return 0, fmt.Errorf("spectral norm: %w", ErrFactorization)
	}

	return svd.Values(nil)[0], nil
}
