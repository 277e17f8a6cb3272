package waveplot_test

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/infomax/matrix"
	"github.com/katalvlaran/infomax/waveplot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func TestNormalize(t *testing.T) {
	A, err := matrix.NewDenseFrom([][]float64{
		{-2, 0, 2},
		{1, 1, 1},
	})
	require.NoError(t, err)

	N, err := waveplot.Normalize(A, 1.5)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{
		{0, 0.5, 1},
		{2.25, 2.25, 2.25},
	}, N.RowsCopy())

	// Input untouched.
	assert.Equal(t, [][]float64{{-2, 0, 2}, {1, 1, 1}}, A.RowsCopy())
}

func TestNormalize_ConstantAndErrors(t *testing.T) {
	C, err := matrix.NewDenseFrom([][]float64{{3, 3}, {3, 3}})
	require.NoError(t, err)
	N, err := waveplot.Normalize(C, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {2, 2}}, N.RowsCopy())

	_, err = waveplot.Normalize(C, -1)
	assert.ErrorIs(t, err, waveplot.ErrBadSpacing)
	_, err = waveplot.Normalize(C, math.NaN())
	assert.ErrorIs(t, err, waveplot.ErrBadSpacing)
	_, err = waveplot.Normalize(nil, 1)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestRender(t *testing.T) {
	A, err := matrix.NewDenseFrom([][]float64{
		{0, 1, 0, -1, 0, 1},
		{1, 1, -1, -1, 1, 1},
		{0, 0.5, 1, 0, 0.5, 1},
	})
	require.NoError(t, err)

	p, err := waveplot.Render(A,
		waveplot.WithTitle("sources"),
		waveplot.WithSpacing(1.5),
		waveplot.WithMaxSamples(4),
		waveplot.WithPalette(color.Black),
	)
	require.NoError(t, err)
	assert.Equal(t, "sources", p.Title.Text)
	// Three traces stacked: Y range covers the top row offset.
	assert.GreaterOrEqual(t, p.Y.Max, 2*1.5)
	assert.Equal(t, 3.0, p.X.Max)
}

func TestRender_DefaultsOverlapRows(t *testing.T) {
	A, err := matrix.NewDenseFrom([][]float64{
		{-1, 0, 1},
		{1, 0, -1},
	})
	require.NoError(t, err)

	p, err := waveplot.Render(A)
	require.NoError(t, err)
	assert.Equal(t, 0.0, waveplot.DefaultSpacing)
	assert.InDelta(t, 0, p.Y.Min, 1e-12)
	assert.InDelta(t, 1, p.Y.Max, 1e-12)
}

// The range used for scaling comes from every sample, not only the drawn ones.
func TestRender_ScalesByFullRange(t *testing.T) {
	row := make([]float64, 80)
	for j := 0; j < 40; j += 2 {
		row[j] = 1
	}
	row[60] = 10
	A, err := matrix.NewDenseFrom([][]float64{row})
	require.NoError(t, err)

	p, err := waveplot.Render(A, waveplot.WithMaxSamples(40))
	require.NoError(t, err)
	assert.Equal(t, 39.0, p.X.Max)
	assert.InDelta(t, 0, p.Y.Min, 1e-12)
	assert.InDelta(t, 0.1, p.Y.Max, 1e-12)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { waveplot.WithSpacing(-1) })
	assert.Panics(t, func() { waveplot.WithMaxSamples(0) })
	assert.NotPanics(t, func() { waveplot.WithPalette() })
}

func TestSave(t *testing.T) {
	A, err := matrix.NewDenseFrom([][]float64{{0, 1, 0}, {1, 0, 1}})
	require.NoError(t, err)
	p, err := waveplot.Render(A)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "plot.svg")
	require.NoError(t, waveplot.Save(p, path, 4*vg.Inch, 3*vg.Inch))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
