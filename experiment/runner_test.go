package experiment_test

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/katalvlaran/infomax/dataset"
	"github.com/katalvlaran/infomax/experiment"
	"github.com/katalvlaran/infomax/matrix"
	"github.com/katalvlaran/infomax/signals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallConfig is a fast two-source synthetic setup.
func smallConfig() *experiment.Config {
	cfg := experiment.Default()
	cfg.Solver.Eta = 1e-4
	cfg.Solver.MaxIter = 200
	cfg.Solver.InitScale = 0.1
	cfg.Signals.Samples = 500
	cfg.Signals.Sources = []signals.Spec{
		{Kind: signals.KindLaplace, Amplitude: 1},
		{Kind: signals.KindLaplace, Amplitude: 1},
	}

	return cfg
}

func TestNewRunner(t *testing.T) {
	r, err := experiment.NewRunner(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, experiment.Default(), r.Config())

	cfg := experiment.Default()
	cfg.Solver.MaxIter = 0
	_, err = experiment.NewRunner(cfg, nil)
	assert.ErrorIs(t, err, experiment.ErrInvalidConfig)
}

func TestRunner_Problem(t *testing.T) {
	cfg := smallConfig()
	cfg.Signals.Channels = 3
	r, err := experiment.NewRunner(cfg, nil)
	require.NoError(t, err)

	p, err := r.Problem()
	require.NoError(t, err)
	assert.Equal(t, 2, p.U.Rows())
	assert.Equal(t, 500, p.U.Cols())
	assert.Equal(t, 3, p.A.Rows())
	assert.Equal(t, 2, p.A.Cols())
	assert.Equal(t, 3, p.X.Rows())
	assert.Equal(t, 2, p.Winit.Rows())
	assert.Equal(t, 3, p.Winit.Cols())

	// Same seed, same problem.
	q, err := r.Problem()
	require.NoError(t, err)
	assert.Equal(t, p.X.RowsCopy(), q.X.RowsCopy())
	assert.Equal(t, p.Winit.RowsCopy(), q.Winit.RowsCopy())
}

func TestRunner_Separate(t *testing.T) {
	var logs bytes.Buffer
	cfg := smallConfig()
	cfg.Plot.Dir = t.TempDir()
	cfg.Plot.Format = "svg"
	r, err := experiment.NewRunner(cfg, log.New(&logs, "", 0))
	require.NoError(t, err)

	rep, err := r.Separate(context.Background())
	require.NoError(t, err)
	_, err = uuid.Parse(rep.RunID)
	require.NoError(t, err)
	assert.False(t, rep.Diverged())
	assert.Equal(t, 200, rep.Iterations)
	assert.Equal(t, 2, rep.Channels)
	assert.Equal(t, 2, rep.Recovered.Rows())
	assert.Equal(t, 500, rep.Recovered.Cols())
	assert.Equal(t, 2, rep.Aligned.Rows())
	assert.Len(t, rep.Kurtosis, 2)
	assert.GreaterOrEqual(t, rep.Error, 0.0)
	assert.ElementsMatch(t, []int{0, 1}, rep.Assignment.Recovered)
	assert.GreaterOrEqual(t, rep.Amari, 0.0)
	assert.LessOrEqual(t, rep.Amari, 1.0)
	require.NotNil(t, rep.Mixing)
	assert.Equal(t, 2, rep.Mixing.Rows())
	assert.Equal(t, 2, rep.Mixing.Cols())

	for _, name := range []string{"sources", "mixture", "recovered"} {
		_, err := os.Stat(filepath.Join(cfg.Plot.Dir, rep.RunID, name+".svg"))
		assert.NoError(t, err, name)
	}
	assert.Contains(t, logs.String(), "run "+rep.RunID+": completed in")

	var table bytes.Buffer
	require.NoError(t, rep.WriteCorrelations(&table))
	assert.Contains(t, table.String(), "rec1")
}

func TestRunner_SeparateFromArchive(t *testing.T) {
	if testing.Short() {
		t.Skip("long-running separation run")
	}
	g := signals.NewGenerator(signals.WithSeed(8))
	U, err := g.Sources([]signals.Spec{
		{Kind: signals.KindLaplace, Amplitude: 1},
		{Kind: signals.KindLaplace, Amplitude: 1},
	}, 1000)
	require.NoError(t, err)
	A, err := matrix.NewDenseFrom([][]float64{{1, 0.6}, {0.4, 1}})
	require.NoError(t, err)

	ar := dataset.NewArchive()
	require.NoError(t, ar.Put(dataset.KeySources, U))
	require.NoError(t, ar.Put(dataset.KeyMixing, A))
	path := filepath.Join(t.TempDir(), "sounds.yaml")
	require.NoError(t, ar.Save(path))

	cfg := experiment.Default()
	cfg.Data.Path = path
	cfg.Solver.Eta = 1e-4
	cfg.Solver.MaxIter = 5000
	cfg.Solver.InitScale = 0.1
	r, err := experiment.NewRunner(cfg, nil)
	require.NoError(t, err)

	p, err := r.Problem()
	require.NoError(t, err)
	assert.Equal(t, A.RowsCopy(), p.A.RowsCopy())

	rep, err := r.Separate(context.Background())
	require.NoError(t, err)
	assert.Greater(t, rep.Assignment.MinAbsCorr(), 0.8, "correlations: %v", rep.Assignment.Corr)
}

func TestRunner_MissingArchiveKey(t *testing.T) {
	ar := dataset.NewArchive()
	m, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	require.NoError(t, ar.Put("other", m))
	path := filepath.Join(t.TempDir(), "a.yaml")
	require.NoError(t, ar.Save(path))

	cfg := experiment.Default()
	cfg.Data.Path = path
	r, err := experiment.NewRunner(cfg, nil)
	require.NoError(t, err)
	_, err = r.Separate(context.Background())
	assert.ErrorIs(t, err, dataset.ErrKeyNotFound)
}

func TestRunner_DivergenceIsReported(t *testing.T) {
	cfg := smallConfig()
	cfg.Solver.Eta = 10
	cfg.Solver.MaxIter = 60
	cfg.Solver.FiniteCheck = 1
	r, err := experiment.NewRunner(cfg, nil)
	require.NoError(t, err)

	rep, err := r.Separate(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.Diverged())
	assert.Nil(t, rep.Recovered)

	var out bytes.Buffer
	require.NoError(t, rep.WriteCorrelations(&out))
	assert.Contains(t, out.String(), "diverged at iteration")
}

func TestRunner_SweepIterations(t *testing.T) {
	r, err := experiment.NewRunner(smallConfig(), nil)
	require.NoError(t, err)

	reps, err := r.SweepIterations(context.Background(), []int{5, 10, 15})
	require.NoError(t, err)
	require.Len(t, reps, 3)
	for i, rep := range reps {
		assert.Equal(t, 5*(i+1), rep.Iterations)
	}

	var out bytes.Buffer
	require.NoError(t, experiment.WriteSummary(&out, reps))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "min|corr|")
	assert.Contains(t, lines[0], "amari")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reps, err = r.SweepIterations(ctx, []int{5})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reps)
}

func TestRunner_SweepChannels(t *testing.T) {
	r, err := experiment.NewRunner(smallConfig(), nil)
	require.NoError(t, err)

	reps, err := r.SweepChannels(context.Background(), 2, 4)
	require.NoError(t, err)
	require.Len(t, reps, 3)
	for i, rep := range reps {
		assert.Equal(t, 2+i, rep.Channels)
		assert.Equal(t, 2, rep.W.Rows())
		assert.Equal(t, 2+i, rep.W.Cols())
	}

	_, err = r.SweepChannels(context.Background(), 4, 3)
	assert.ErrorIs(t, err, experiment.ErrInvalidConfig)
}
