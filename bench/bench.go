package bench

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/weiihann/loadmark/strategy"
)

// RunConfig holds parameters for a single benchmark run.
type RunConfig struct {
	FixturePath string
	Key         string
	Expected    string
	Iterations  int
}

// Runner measures the cold-load cost of a single strategy.
type Runner struct {
	Strategy strategy.Strategy
	Logger   *slog.Logger
}

// NewRunner creates a Runner for the given strategy.
func NewRunner(strat strategy.Strategy, logger *slog.Logger) *Runner {
	return &Runner{
		Strategy: strat,
		Logger:   logger.With(slog.String("strategy", strat.Name)),
	}
}

// Run executes iterations of load + lookup + verify against the fixture
// and returns the elapsed wall-clock time as a Measurement.
//
// Automatic garbage collection is suspended for the duration of the run
// and restored on every exit path; a full collection is forced before
// the timer starts so prior allocations do not pollute the signal. Every
// iteration loads the fixture from scratch: no dataset survives from one
// iteration to the next.
//
// A load failure or a correctness mismatch aborts the run with no
// Measurement. Timing attached to wrong output must never be reported.
func (r *Runner) Run(cfg RunConfig) (*Measurement, error) {
	if cfg.Iterations < 1 {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("iterations must be >= 1, got %d", cfg.Iterations),
		}
	}

	info, err := os.Stat(cfg.FixturePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: cfg.FixturePath}
		}

		return nil, fmt.Errorf("stat %s: %w", cfg.FixturePath, err)
	}

	if !info.Mode().IsRegular() {
		return nil, &NotFoundError{Path: cfg.FixturePath}
	}

	r.Logger.Info("starting run",
		slog.String("fixture", cfg.FixturePath),
		slog.Int("iterations", cfg.Iterations),
	)

	prevGC := debug.SetGCPercent(-1)
	defer debug.SetGCPercent(prevGC)

	// Clean baseline before the timer starts.
	runtime.GC()

	start := time.Now()

	for i := 0; i < cfg.Iterations; i++ {
		dataset, loadErr := r.Strategy.Load(cfg.FixturePath)
		if loadErr != nil {
			return nil, &LoadError{
				Strategy: r.Strategy.Name,
				Path:     cfg.FixturePath,
				Err:      loadErr,
			}
		}

		got, ok := dataset[cfg.Key]
		if !ok {
			return nil, &CorrectnessError{
				Strategy: r.Strategy.Name,
				Key:      cfg.Key,
				Want:     cfg.Expected,
				Missing:  true,
			}
		}

		if got != cfg.Expected {
			return nil, &CorrectnessError{
				Strategy: r.Strategy.Name,
				Key:      cfg.Key,
				Want:     cfg.Expected,
				Got:      got,
			}
		}
	}

	elapsed := time.Since(start)

	r.Logger.Info("run finished",
		slog.Duration("elapsed", elapsed),
	)

	return &Measurement{
		Strategy:   r.Strategy.Name,
		Iterations: cfg.Iterations,
		Elapsed:    elapsed,
		Passed:     true,
	}, nil
}
