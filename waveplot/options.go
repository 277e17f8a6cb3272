package waveplot

import (
	"image/color"
	"math"
)

// Default rendering parameters.
const (
	DefaultSpacing    = 0.0
	DefaultMaxSamples = 40
)

// DefaultPalette is blue, green, red, cyan, black; rows cycle through it.
var DefaultPalette = []color.Color{
	color.RGBA{B: 255, A: 255},
	color.RGBA{G: 128, A: 255},
	color.RGBA{R: 255, A: 255},
	color.RGBA{G: 191, B: 191, A: 255},
	color.RGBA{A: 255},
}

// Options configures Render.
type Options struct {
	Spacing    float64
	MaxSamples int
	Title      string
	Palette    []color.Color
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns spacing 0 (traces overlap), 40 samples, no title,
// DefaultPalette.
func DefaultOptions() Options {
	return Options{
		Spacing:    DefaultSpacing,
		MaxSamples: DefaultMaxSamples,
		Palette:    DefaultPalette,
	}
}

// WithSpacing sets the vertical offset between rows. Panics if s < 0 or not finite.
func WithSpacing(s float64) Option {
	if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		panic("waveplot: WithSpacing: spacing must be finite and >= 0")
	}
	return func(o *Options) { o.Spacing = s }
}

// WithMaxSamples limits each trace to the first n samples. Panics if n <= 0.
func WithMaxSamples(n int) Option {
	if n <= 0 {
		panic("waveplot: WithMaxSamples: n must be > 0")
	}
	return func(o *Options) { o.MaxSamples = n }
}

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return func(o *Options) { o.Title = title }
}

// WithPalette replaces the row colors. An empty palette keeps the default.
func WithPalette(p ...color.Color) Option {
	return func(o *Options) {
		if len(p) > 0 {
			o.Palette = p
		}
	}
}

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
