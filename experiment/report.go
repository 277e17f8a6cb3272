package experiment

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/katalvlaran/infomax/ica"
	"github.com/katalvlaran/infomax/matrix"
	"github.com/katalvlaran/infomax/score"
)

// Report is the outcome of one solve. Score fields are zero when the run
// diverged.
type Report struct {
	RunID      string
	Channels   int
	Iterations int
	Eta        float64
	Elapsed    time.Duration
	// DivergedAt is the iteration at which W was first seen non-finite (0: never).
	DivergedAt int

	W         *matrix.Dense
	Recovered *matrix.Dense // Y = W·X, in solver order
	Aligned   *matrix.Dense // Recovered reordered and sign-flipped to match U

	Assignment   score.Assignment
	Correlations *matrix.Dense // U rows × Recovered rows
	Kurtosis     []float64     // excess kurtosis per recovered row
	// Error is ‖Aligned − U‖₂ over the matched source rows.
	Error float64
	// Amari is the Amari index of W·A (0: perfect separation).
	Amari float64
	// Mixing estimates A from W; nil when W has more rows than columns
	// or is singular.
	Mixing *matrix.Dense
}

// Diverged reports whether the solver produced a non-finite W.
func (rep *Report) Diverged() bool { return rep.DivergedAt > 0 }

// score fills the recovery and scoring fields from p.
func (rep *Report) score(p *Problem) error {
	var err error
	if rep.Recovered, err = ica.Unmix(rep.W, p.X); err != nil {
		return err
	}
	if rep.Correlations, err = score.CorrelationTable(p.U, rep.Recovered); err != nil {
		return err
	}
	if rep.Assignment, err = score.Match(p.U, rep.Recovered); err != nil {
		return err
	}
	if rep.Aligned, err = rep.Assignment.Apply(rep.Recovered); err != nil {
		return err
	}
	if rep.Kurtosis, err = score.ExcessKurtosis(rep.Recovered); err != nil {
		return err
	}
	if rep.Amari, err = score.AmariIndex(rep.W, p.A); err != nil {
		return err
	}
	if rep.W.Rows() <= rep.W.Cols() {
		rep.Mixing, err = ica.Mixing(rep.W)
		if err != nil && !errors.Is(err, ica.ErrSingular) {
			return err
		}
	}

	truth := p.U
	if rep.Aligned.Rows() != p.U.Rows() {
		idx := make([]int, 0, rep.Aligned.Rows())
		for i, r := range rep.Assignment.Recovered {
			if r >= 0 {
				idx = append(idx, i)
			}
		}
		if truth, err = matrix.SelectRows(p.U, idx); err != nil {
			return err
		}
	}
	rep.Error, err = score.SpectralNormError(rep.Aligned, truth)

	return err
}

// WriteCorrelations prints the source × aligned-recovery correlation grid,
// the layout the original harness printed after reordering.
func (rep *Report) WriteCorrelations(w io.Writer) error {
	if rep.Diverged() {
		_, err := fmt.Fprintf(w, "run %s diverged at iteration %d\n", rep.RunID, rep.DivergedAt)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "source\t")
	for j := range rep.Assignment.Recovered {
		fmt.Fprintf(tw, "rec%d\t", j)
	}
	fmt.Fprintln(tw)
	for i := range rep.Assignment.Recovered {
		fmt.Fprintf(tw, "%d\t", i)
		for j, r := range rep.Assignment.Recovered {
			if r < 0 {
				fmt.Fprint(tw, "-\t")
				continue
			}
			c, err := rep.Correlations.At(i, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%.4f\t", c*rep.Assignment.Sign[j])
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// WriteSummary prints one line per report: channels, iterations, elapsed,
// weakest matched correlation, spectral-norm error and Amari index.
func WriteSummary(w io.Writer, reps []*Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "run\tm\titers\telapsed\tmin|corr|\terror\tamari\tdiverged")
	for _, rep := range reps {
		div := "-"
		if rep.Diverged() {
			div = fmt.Sprint(rep.DivergedAt)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%.4f\t%.4g\t%.4f\t%s\n",
			shortID(rep.RunID), rep.Channels, rep.Iterations,
			rep.Elapsed.Round(time.Millisecond), rep.Assignment.MinAbsCorr(), rep.Error, rep.Amari, div)
	}

	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}
