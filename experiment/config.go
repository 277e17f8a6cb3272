package experiment

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/katalvlaran/infomax/signals"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("experiment: invalid config")

// Config drives a Runner.
type Config struct {
	// Seed feeds the mixing matrix, the initial guess and the synthetic sources.
	Seed    int64         `yaml:"seed"`
	Solver  SolverConfig  `yaml:"solver"`
	Signals SignalsConfig `yaml:"signals"`
	Data    DataConfig    `yaml:"data"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Plot    PlotConfig    `yaml:"plot"`
}

// SolverConfig holds the infomax parameters.
type SolverConfig struct {
	Eta     float64 `yaml:"eta"`
	MaxIter int     `yaml:"max_iter"`
	// InitScale multiplies the U[0,1) initial unmixing guess.
	InitScale float64 `yaml:"init_scale"`
	// Center subtracts row means from the sources before mixing.
	Center bool `yaml:"center"`
	// FiniteCheck scans W every N iterations for divergence (0 disables).
	FiniteCheck int `yaml:"finite_check"`
}

// SignalsConfig describes synthetic sources, used when no data file is set.
type SignalsConfig struct {
	SampleRate float64        `yaml:"sample_rate"`
	Samples    int            `yaml:"samples"`
	Sources    []signals.Spec `yaml:"sources"`
	// Channels is the mixture row count m; 0 means one channel per source.
	Channels int `yaml:"channels"`
}

// DataConfig points at recorded sources. Path (a YAML archive) wins over WAV.
type DataConfig struct {
	Path       string   `yaml:"path"`
	SourcesKey string   `yaml:"sources_key"`
	MixingKey  string   `yaml:"mixing_key"`
	WAV        []string `yaml:"wav,omitempty"`
}

// SweepConfig lists the parameter grids for the sweep modes.
type SweepConfig struct {
	Iterations   []int `yaml:"iterations"`
	ChannelsFrom int   `yaml:"channels_from"`
	ChannelsTo   int   `yaml:"channels_to"`
}

// PlotConfig controls waveform images. An empty Dir disables plotting.
type PlotConfig struct {
	Dir        string  `yaml:"dir"`
	Format     string  `yaml:"format"`
	WidthInch  float64 `yaml:"width_inch"`
	HeightInch float64 `yaml:"height_inch"`
	Spacing    float64 `yaml:"spacing"`
	MaxSamples int     `yaml:"max_samples"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Seed: 8,
		Solver: SolverConfig{
			Eta:       1e-5, // eta·t = 0.04 at 4000 samples
			MaxIter:   1000,
			InitScale: 0.01,
		},
		Signals: SignalsConfig{
			SampleRate: signals.DefaultSampleRate,
			Samples:    4000,
			Sources: []signals.Spec{
				{Kind: signals.KindLaplace, Amplitude: 1},
				{Kind: signals.KindLaplace, Amplitude: 0.5},
				{Kind: signals.KindLaplace, Amplitude: 2},
			},
		},
		Data: DataConfig{
			SourcesKey: "sources",
			MixingKey:  "mixing",
		},
		Sweep: SweepConfig{
			Iterations:   []int{100, 200, 300, 400, 500, 600, 700, 800, 900, 1000},
			ChannelsFrom: 3,
			ChannelsTo:   19,
		},
		Plot: PlotConfig{
			Format:     "png",
			WidthInch:  16,
			HeightInch: 8,
			Spacing:    0.05,
			MaxSamples: 40,
		},
	}
}

// Validate checks ranges that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	s := c.Solver
	if s.Eta < 0 || math.IsNaN(s.Eta) || math.IsInf(s.Eta, 0) {
		return fmt.Errorf("solver.eta=%g: %w", s.Eta, ErrInvalidConfig)
	}
	if s.MaxIter <= 0 {
		return fmt.Errorf("solver.max_iter=%d: %w", s.MaxIter, ErrInvalidConfig)
	}
	if s.InitScale <= 0 || math.IsNaN(s.InitScale) || math.IsInf(s.InitScale, 0) {
		return fmt.Errorf("solver.init_scale=%g: %w", s.InitScale, ErrInvalidConfig)
	}
	if s.FiniteCheck < 0 {
		return fmt.Errorf("solver.finite_check=%d: %w", s.FiniteCheck, ErrInvalidConfig)
	}
	if c.Data.Path == "" && len(c.Data.WAV) == 0 {
		if len(c.Signals.Sources) == 0 {
			return fmt.Errorf("signals.sources: none configured: %w", ErrInvalidConfig)
		}
		if c.Signals.SampleRate <= 0 {
			return fmt.Errorf("signals.sample_rate=%g: %w", c.Signals.SampleRate, ErrInvalidConfig)
		}
		if c.Signals.Samples <= 0 {
			return fmt.Errorf("signals.samples=%d: %w", c.Signals.Samples, ErrInvalidConfig)
		}
	}
	if c.Signals.Channels < 0 {
		return fmt.Errorf("signals.channels=%d: %w", c.Signals.Channels, ErrInvalidConfig)
	}
	for i, n := range c.Sweep.Iterations {
		if n <= 0 {
			return fmt.Errorf("sweep.iterations[%d]=%d: %w", i, n, ErrInvalidConfig)
		}
	}
	if c.Sweep.ChannelsTo < c.Sweep.ChannelsFrom {
		return fmt.Errorf("sweep.channels_to=%d < channels_from=%d: %w",
			c.Sweep.ChannelsTo, c.Sweep.ChannelsFrom, ErrInvalidConfig)
	}
	if c.Plot.Dir != "" && (c.Plot.WidthInch <= 0 || c.Plot.HeightInch <= 0 || c.Plot.MaxSamples <= 0 || c.Plot.Spacing < 0) {
		return fmt.Errorf("plot: non-positive size: %w", ErrInvalidConfig)
	}

	return nil
}

// Load loads configuration from a file, layered over Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// InitConfig writes the default config to path unless a file is already there.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return Default().Save(path)
}
