package waveplot

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/katalvlaran/infomax/matrix"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrBadSpacing indicates a negative or non-finite spacing passed to Normalize.
var ErrBadSpacing = errors.New("waveplot: spacing must be finite and >= 0")

// Normalize maps A into [0, 1] using the global min and max, then adds
// spacing·i to row i. A constant matrix maps to zeros before the offset.
// Non-finite entries are rejected with matrix.ErrNaNInf.
func Normalize(A matrix.Matrix, spacing float64) (*matrix.Dense, error) {
	if spacing < 0 || math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		return nil, fmt.Errorf("normalize: %g: %w", spacing, ErrBadSpacing)
	}
	r, c, found, err := matrix.FindNonFinite(A)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	if found {
		return nil, fmt.Errorf("normalize: A[%d,%d]: %w", r, c, matrix.ErrNaNInf)
	}
	lo, hi, err := matrix.MinMax(A)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	out, err := matrix.CloneDense(A)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	span := hi - lo
	for i, row := range out.RowsCopy() {
		off := spacing * float64(i)
		for j, v := range row {
			if span > 0 {
				row[j] = (v-lo)/span + off
			} else {
				row[j] = off
			}
		}
		if err = out.SetRow(i, row); err != nil {
			return nil, fmt.Errorf("normalize: %w", err)
		}
	}

	return out, nil
}

// Render normalizes all of A (see Normalize) and draws the first MaxSamples
// columns of every row as stacked line traces. The Y axis carries no meaning after the
// offset and is hidden; the X axis counts samples.
func Render(A matrix.Matrix, opts ...Option) (*plot.Plot, error) {
	o := gatherOptions(opts...)

	full, err := Normalize(A, o.Spacing)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	N, err := matrix.HeadCols(full, o.MaxSamples)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = "sample"
	p.HideY()

	for i, row := range N.RowsCopy() {
		pts := make(plotter.XYs, len(row))
		for j, v := range row {
			pts[j].X = float64(j)
			pts[j].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("render: row %d: %w", i, err)
		}
		line.Color = o.Palette[i%len(o.Palette)]
		line.Width = vg.Points(1)
		p.Add(line)
	}

	return p, nil
}

// Save writes p to path; the format follows the extension (.png, .svg, .pdf, ...).
// Parent directories are created as needed.
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create plot directory: %w", err)
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}

	return nil
}
