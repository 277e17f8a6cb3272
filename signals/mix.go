package signals

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/infomax/matrix"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrBadParameter indicates a non-positive sample count, rate or scale.
	ErrBadParameter = errors.New("signals: invalid parameter")

	// ErrUnknownKind indicates a Spec.Kind the generator does not know.
	ErrUnknownKind = errors.New("signals: unknown source kind")
)

// Kind names a source waveform.
type Kind string

// Supported source kinds.
const (
	KindSine     Kind = "sine"
	KindSquare   Kind = "square"
	KindSawtooth Kind = "sawtooth"
	KindUniform  Kind = "uniform"
	KindLaplace  Kind = "laplace"
)

// Spec describes one source row. FreqHz is ignored by the noise kinds;
// Amplitude is the Laplace scale for KindLaplace.
type Spec struct {
	Kind      Kind    `yaml:"kind"`
	FreqHz    float64 `yaml:"freq_hz"`
	Amplitude float64 `yaml:"amplitude"`
}

// Sources renders specs into an n×samples matrix U, one source per row, in order.
func (g *Generator) Sources(specs []Spec, samples int) (*matrix.Dense, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("sources: no specs: %w", ErrBadParameter)
	}
	rows := make([][]float64, len(specs))
	for i, s := range specs {
		var (
			row []float64
			err error
		)
		switch s.Kind {
		case KindSine:
			row, err = g.Sine(s.FreqHz, s.Amplitude, samples)
		case KindSquare:
			row, err = g.Square(s.FreqHz, s.Amplitude, samples)
		case KindSawtooth:
			row, err = g.Sawtooth(s.FreqHz, s.Amplitude, samples)
		case KindUniform:
			row, err = g.UniformNoise(s.Amplitude, samples)
		case KindLaplace:
			row, err = g.LaplaceNoise(s.Amplitude, samples)
		default:
			err = fmt.Errorf("%q: %w", s.Kind, ErrUnknownKind)
		}
		if err != nil {
			return nil, fmt.Errorf("sources: row %d: %w", i, err)
		}
		rows[i] = row
	}

	return matrix.NewDenseFrom(rows)
}

// RandomMixing returns an m×n mixing matrix with entries drawn from U[0,1).
func RandomMixing(m, n int, rng *rand.Rand) (*matrix.Dense, error) {
	return matrix.NewRandom(m, n, rng, 1)
}

// Mix returns the observed mixture X = A·U (A is m×n, U is n×t).
func Mix(A, U matrix.Matrix) (*matrix.Dense, error) {
	X, err := matrix.Mul(A, U)
	if err != nil {
		return nil, fmt.Errorf("mix: %w", err)
	}

	return X, nil
}

// Condition returns the 2-norm condition number of A (+Inf when singular).
// Large values mean the mixture is close to degenerate and separation will be poor.
func Condition(A matrix.Matrix) (float64, error) {
	g, err := matrix.ToGonum(A)
	if err != nil {
		return 0, fmt.Errorf("condition: %w", err)
	}

	return mat.Cond(g, 2), nil
}
