package signals

import (
	"fmt"
	"math"
	"math/rand"
)

// Default generator settings.
const (
	DefaultSampleRate = 8000.0
	DefaultSeed       = 1
)

// Generator creates deterministic test signals.
// Noise generators share one seeded stream, so the sequence of calls on a
// Generator fully determines its output.
type Generator struct {
	sampleRate float64
	seed       int64
	rng        *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithSampleRate sets the sample rate in Hz used by the periodic generators.
func WithSampleRate(hz float64) Option {
	return func(g *Generator) {
		g.sampleRate = hz
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		sampleRate: DefaultSampleRate,
		seed:       DefaultSeed,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.rng = rand.New(rand.NewSource(g.seed))

	return g
}

// SampleRate returns the configured sample rate.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Seed returns the configured seed.
func (g *Generator) Seed() int64 { return g.seed }

func (g *Generator) checkPeriodic(kind string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d: %w", kind, samples, ErrBadParameter)
	}
	if g.sampleRate <= 0 {
		return fmt.Errorf("%s sample rate must be > 0: %f: %w", kind, g.sampleRate, ErrBadParameter)
	}

	return nil
}

// phase returns the normalized phase in [0,1) of sample i at freqHz.
func (g *Generator) phase(freqHz float64, i int) float64 {
	p := freqHz * float64(i) / g.sampleRate
	return p - math.Floor(p)
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.checkPeriodic("sine", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Square generates a ±amplitude square wave with 50% duty cycle.
func (g *Generator) Square(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.checkPeriodic("square", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for i := range out {
		if g.phase(freqHz, i) < 0.5 {
			out[i] = amplitude
		} else {
			out[i] = -amplitude
		}
	}
	return out, nil
}

// Sawtooth generates a rising ramp from −amplitude to +amplitude per period.
func (g *Generator) Sawtooth(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.checkPeriodic("sawtooth", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = amplitude * (2*g.phase(freqHz, i) - 1)
	}
	return out, nil
}

// UniformNoise generates deterministic white noise in [-amplitude, amplitude).
func (g *Generator) UniformNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d: %w", samples, ErrBadParameter)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f: %w", amplitude, ErrBadParameter)
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = amplitude * (2*g.rng.Float64() - 1)
	}
	return out, nil
}

// LaplaceNoise generates zero-mean Laplacian noise with the given scale b
// (variance 2b²). Laplacian samples are super-Gaussian, the source model the
// logistic infomax rule separates well; speech amplitudes behave similarly.
func (g *Generator) LaplaceNoise(scale float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("laplace samples must be > 0: %d: %w", samples, ErrBadParameter)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("laplace scale must be > 0: %f: %w", scale, ErrBadParameter)
	}
	out := make([]float64, samples)
	for i := range out {
		// Difference of two unit exponentials is standard Laplace.
		out[i] = scale * (g.rng.ExpFloat64() - g.rng.ExpFloat64())
	}
	return out, nil
}

// Normalize scales data so its absolute peak equals targetPeak.
// An all-zero input is returned as a zero copy.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize: empty input: %w", ErrBadParameter)
	}
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f: %w", targetPeak, ErrBadParameter)
	}
	peak := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	out := make([]float64, len(data))
	if peak == 0 {
		return out, nil
	}
	scale := targetPeak / peak
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
