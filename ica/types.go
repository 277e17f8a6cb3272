package ica

import "github.com/katalvlaran/infomax/matrix"

// Observer is called after every completed iteration with the 1-based
// iteration number and a copy of the current unmixing matrix.
// It runs synchronously on the solver's goroutine.
type Observer func(iter int, W *matrix.Dense)

// Options configures Solve beyond the four mandatory parameters.
// None of the options alter the arithmetic of the update.
type Options struct {
	observer         Observer // nil: no callback
	finiteCheckEvery int      // 0: never scan W for NaN/Inf
}

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// WithObserver installs a per-iteration callback (progress reporting, tracing).
func WithObserver(fn Observer) Option {
	return func(o *Options) {
		o.observer = fn
	}
}

// WithFiniteCheck scans W for NaN/±Inf every `every` iterations and records the
// first iteration at which it was found in Stats.DivergedAt. The run is not stopped.
// Panics if every < 0.
func WithFiniteCheck(every int) Option {
	if every < 0 {
		panic("ica: WithFiniteCheck: every must be >= 0")
	}
	return func(o *Options) {
		o.finiteCheckEvery = every
	}
}

// gatherOptions applies opts over the zero-value defaults; nil entries are skipped.
func gatherOptions(opts ...Option) Options {
	var o Options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// Stats summarizes a finished run.
type Stats struct {
	// Iterations is the number of updates applied; always equals maxIter.
	Iterations int

	// DivergedAt is the first checked iteration (1-based) at which W was
	// non-finite, or 0 when no check fired (or checks were disabled).
	DivergedAt int
}
