package experiment_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/infomax/experiment"
	"github.com/katalvlaran/infomax/signals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := experiment.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(8), cfg.Seed)
	assert.Equal(t, 1000, cfg.Solver.MaxIter)
	assert.Len(t, cfg.Sweep.Iterations, 10)
	// Step size per iteration is eta·t.
	assert.InDelta(t, 0.04, cfg.Solver.Eta*float64(cfg.Signals.Samples), 1e-12)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *experiment.Config)
	}{
		{"negative eta", func(c *experiment.Config) { c.Solver.Eta = -1 }},
		{"zero iterations", func(c *experiment.Config) { c.Solver.MaxIter = 0 }},
		{"zero init scale", func(c *experiment.Config) { c.Solver.InitScale = 0 }},
		{"NaN init scale", func(c *experiment.Config) { c.Solver.InitScale = math.NaN() }},
		{"infinite init scale", func(c *experiment.Config) { c.Solver.InitScale = math.Inf(1) }},
		{"negative finite check", func(c *experiment.Config) { c.Solver.FiniteCheck = -1 }},
		{"no sources", func(c *experiment.Config) { c.Signals.Sources = nil }},
		{"no samples", func(c *experiment.Config) { c.Signals.Samples = 0 }},
		{"no sample rate", func(c *experiment.Config) { c.Signals.SampleRate = 0 }},
		{"negative channels", func(c *experiment.Config) { c.Signals.Channels = -2 }},
		{"bad sweep iteration", func(c *experiment.Config) { c.Sweep.Iterations = []int{10, 0} }},
		{"inverted channel sweep", func(c *experiment.Config) { c.Sweep.ChannelsFrom, c.Sweep.ChannelsTo = 5, 4 }},
		{"bad plot size", func(c *experiment.Config) { c.Plot.Dir, c.Plot.WidthInch = "out", 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := experiment.Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), experiment.ErrInvalidConfig)
		})
	}

	// A data file makes synthetic-source settings irrelevant.
	cfg := experiment.Default()
	cfg.Signals.Sources = nil
	cfg.Data.Path = "sounds.yaml"
	assert.NoError(t, cfg.Validate())

	cfg = experiment.Default()
	cfg.Solver.Eta = 0
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "icasep.yaml")
	cfg := experiment.Default()
	cfg.Seed = 42
	cfg.Solver.Eta = 1e-4
	cfg.Signals.Sources = []signals.Spec{{Kind: signals.KindSine, FreqHz: 220, Amplitude: 1}}
	require.NoError(t, cfg.Save(path))

	got, err := experiment.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_PartialOverridesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 3\nsolver:\n  max_iter: 50\n"), 0o644))

	cfg, err := experiment.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cfg.Seed)
	assert.Equal(t, 50, cfg.Solver.MaxIter)
	assert.Equal(t, experiment.Default().Signals, cfg.Signals)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := experiment.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("seed: [unterminated"), 0o644))
	_, err = experiment.Load(bad)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := experiment.LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, experiment.Default(), cfg)

	cfg, err = experiment.LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, experiment.Default(), cfg)
}

func TestInitConfig_DoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icasep.yaml")
	require.NoError(t, experiment.InitConfig(path))
	_, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("seed: 99\n"), 0o644))
	require.NoError(t, experiment.InitConfig(path))
	cfg, err := experiment.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
}
