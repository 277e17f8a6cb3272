package experiment

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/infomax/dataset"
	"github.com/katalvlaran/infomax/ica"
	"github.com/katalvlaran/infomax/matrix"
	"github.com/katalvlaran/infomax/signals"
	"github.com/katalvlaran/infomax/waveplot"
	"gonum.org/v1/plot/vg"
)

// Problem is one separation input: ground truth U (n×t), mixing A (m×n),
// observed mixture X = A·U and the initial guess Winit (n×m).
type Problem struct {
	U, A, X, Winit *matrix.Dense
}

// Runner executes separations described by a Config.
// A Runner is not safe for concurrent use.
type Runner struct {
	cfg     *Config
	logger  *log.Logger
	archive *dataset.Archive // loaded on first use
}

// NewRunner validates cfg (nil means Default) and binds a logger
// (nil discards output).
func NewRunner(cfg *Config, logger *log.Logger) (*Runner, error) {
	if cfg == nil {
		cfg = Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Runner{cfg: cfg, logger: logger}, nil
}

// Config returns the runner's configuration.
func (r *Runner) Config() *Config { return r.cfg }

// Sources returns the ground-truth matrix U: from the data archive when
// configured, otherwise synthesized from Signals.Sources.
func (r *Runner) Sources() (*matrix.Dense, error) {
	var (
		U   *matrix.Dense
		err error
	)
	switch {
	case r.cfg.Data.Path != "":
		var a *dataset.Archive
		if a, err = r.loadArchive(); err != nil {
			return nil, err
		}
		U, err = a.Get(r.cfg.Data.SourcesKey)
	case len(r.cfg.Data.WAV) > 0:
		a := dataset.NewArchive()
		if err = a.LoadWAV(dataset.KeySources, r.cfg.Data.WAV...); err != nil {
			return nil, err
		}
		U, err = a.Get(dataset.KeySources)
	default:
		g := signals.NewGenerator(
			signals.WithSeed(r.cfg.Seed),
			signals.WithSampleRate(r.cfg.Signals.SampleRate),
		)
		U, err = g.Sources(r.cfg.Signals.Sources, r.cfg.Signals.Samples)
	}
	if err != nil {
		return nil, fmt.Errorf("sources: %w", err)
	}
	if r.cfg.Solver.Center {
		if U, _, err = matrix.CenterRows(U); err != nil {
			return nil, fmt.Errorf("sources: %w", err)
		}
	}

	return U, nil
}

func (r *Runner) loadArchive() (*dataset.Archive, error) {
	if r.archive == nil {
		a, err := dataset.Load(r.cfg.Data.Path)
		if err != nil {
			return nil, err
		}
		r.archive = a
	}

	return r.archive, nil
}

// fixedMixing returns the archive's mixing matrix when one is configured and
// has the requested channel count; otherwise nil.
func (r *Runner) fixedMixing(m, n int) (*matrix.Dense, error) {
	if r.cfg.Data.Path == "" || r.cfg.Data.MixingKey == "" {
		return nil, nil
	}
	a, err := r.loadArchive()
	if err != nil {
		return nil, err
	}
	if !a.Has(r.cfg.Data.MixingKey) {
		return nil, nil
	}
	A, err := a.Get(r.cfg.Data.MixingKey)
	if err != nil {
		return nil, err
	}
	if A.Rows() != m || A.Cols() != n {
		return nil, nil
	}

	return A, nil
}

// newProblem draws A (unless fixed by the archive) and then Winit from rng,
// in that order, for m channels.
func (r *Runner) newProblem(U *matrix.Dense, m int, rng *rand.Rand) (*Problem, error) {
	n := U.Rows()
	A, err := r.fixedMixing(m, n)
	if err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}
	if A == nil {
		if A, err = signals.RandomMixing(m, n, rng); err != nil {
			return nil, fmt.Errorf("problem: %w", err)
		}
	}
	X, err := signals.Mix(A, U)
	if err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}
	W, err := matrix.NewRandom(n, m, rng, r.cfg.Solver.InitScale)
	if err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}

	return &Problem{U: U, A: A, X: X, Winit: W}, nil
}

// Problem builds the configured separation input.
func (r *Runner) Problem() (*Problem, error) {
	U, err := r.Sources()
	if err != nil {
		return nil, err
	}
	m := r.cfg.Signals.Channels
	if m == 0 {
		m = U.Rows()
	}

	return r.newProblem(U, m, rand.New(rand.NewSource(r.cfg.Seed)))
}

// Separate runs the configured problem once and scores it.
func (r *Runner) Separate(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := r.Problem()
	if err != nil {
		return nil, err
	}
	rep, err := r.Run(p, r.cfg.Solver.MaxIter)
	if err != nil {
		return nil, err
	}
	if err = r.plot(rep, p); err != nil {
		return nil, err
	}

	return rep, nil
}

// SweepIterations solves the same problem once per iteration count.
// Every run starts from the same Winit.
func (r *Runner) SweepIterations(ctx context.Context, iters []int) ([]*Report, error) {
	if len(iters) == 0 {
		iters = r.cfg.Sweep.Iterations
	}
	p, err := r.Problem()
	if err != nil {
		return nil, err
	}
	out := make([]*Report, 0, len(iters))
	for _, n := range iters {
		if err = ctx.Err(); err != nil {
			return out, err
		}
		rep, err := r.Run(p, n)
		if err != nil {
			return out, err
		}
		out = append(out, rep)
	}

	return out, nil
}

// SweepChannels solves one problem per channel count m in [from, to].
// A single seeded stream supplies every A and Winit, so the sweep is
// reproducible as a whole.
func (r *Runner) SweepChannels(ctx context.Context, from, to int) ([]*Report, error) {
	U, err := r.Sources()
	if err != nil {
		return nil, err
	}
	if from <= 0 {
		from = U.Rows()
	}
	if to < from {
		return nil, fmt.Errorf("sweep channels [%d, %d]: %w", from, to, ErrInvalidConfig)
	}
	rng := rand.New(rand.NewSource(r.cfg.Seed))
	out := make([]*Report, 0, to-from+1)
	for m := from; m <= to; m++ {
		if err = ctx.Err(); err != nil {
			return out, err
		}
		p, err := r.newProblem(U, m, rng)
		if err != nil {
			return out, err
		}
		rep, err := r.Run(p, r.cfg.Solver.MaxIter)
		if err != nil {
			return out, err
		}
		out = append(out, rep)
	}

	return out, nil
}

// Run solves p for maxIter iterations and scores the result.
func (r *Runner) Run(p *Problem, maxIter int) (*Report, error) {
	id := uuid.NewString()
	n, m := p.Winit.Shape()
	eta := r.cfg.Solver.Eta
	r.logger.Printf("run %s: ICA n=%d m=%d t=%d eta=%g iters=%d", id, n, m, p.X.Cols(), eta, maxIter)

	var opts []ica.Option
	if every := r.cfg.Solver.FiniteCheck; every > 0 {
		opts = append(opts, ica.WithFiniteCheck(every))
	}
	start := time.Now()
	W, stats, err := ica.SolveWithStats(p.X, p.Winit, eta, maxIter, opts...)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}
	elapsed := time.Since(start)
	r.logger.Printf("run %s: completed in %s", id, elapsed.Round(time.Microsecond))

	rep := &Report{
		RunID:      id,
		Channels:   m,
		Iterations: stats.Iterations,
		Eta:        eta,
		W:          W,
		Elapsed:    elapsed,
		DivergedAt: stats.DivergedAt,
	}
	if err = ica.CheckFinite(W); err != nil {
		if rep.DivergedAt == 0 {
			rep.DivergedAt = stats.Iterations
		}
		r.logger.Printf("run %s: diverged: %v", id, err)
		return rep, nil
	}
	if err = rep.score(p); err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}
	r.logger.Printf("run %s: min |corr|=%.4f error=%.4g", id, rep.Assignment.MinAbsCorr(), rep.Error)

	return rep, nil
}

// plot writes sources, mixture and aligned recovery images under Plot.Dir/RunID.
func (r *Runner) plot(rep *Report, p *Problem) error {
	pc := r.cfg.Plot
	if pc.Dir == "" || rep.Diverged() {
		return nil
	}
	dir := filepath.Join(pc.Dir, rep.RunID)
	for _, item := range []struct {
		name string
		m    *matrix.Dense
	}{
		{"sources", p.U},
		{"mixture", p.X},
		{"recovered", rep.Aligned},
	} {
		pl, err := waveplot.Render(item.m,
			waveplot.WithTitle(item.name),
			waveplot.WithSpacing(pc.Spacing),
			waveplot.WithMaxSamples(pc.MaxSamples),
		)
		if err != nil {
			return fmt.Errorf("plot %s: %w", item.name, err)
		}
		path := filepath.Join(dir, item.name+"."+pc.Format)
		if err = waveplot.Save(pl, path, vg.Length(pc.WidthInch)*vg.Inch, vg.Length(pc.HeightInch)*vg.Inch); err != nil {
			return fmt.Errorf("plot %s: %w", item.name, err)
		}
		r.logger.Printf("run %s: wrote %s", rep.RunID, path)
	}

	return nil
}
