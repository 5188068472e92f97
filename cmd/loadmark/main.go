// Package main provides the CLI entry point for loadmark, a
// micro-benchmark harness comparing file-based deserialization
// strategies.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/weiihann/loadmark/bench"
	"github.com/weiihann/loadmark/fixture"
	"github.com/weiihann/loadmark/report"
	"github.com/weiihann/loadmark/strategy"
)

const defaultIterations = 100

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "loadmark",
		Short: "Cold-load benchmark harness for deserialization strategies",
		Long: `Loadmark measures the cold per-call cost of loading one serialized
key-value dataset from disk through different deserialization strategies
(JSON, sonic, gob, CBOR, TOML, SQLite) and reports a comparison.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newGenCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		dir        string
		base       string
		strategies []string
		iterations int
		key        string
		expect     string
		sortBy     string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run cold-load benchmarks across strategies",
		Long: `Run load + lookup + verify loops for each selected strategy against
the fixture set and print a comparison table. The probe key and expected
value default to the ones recorded in the fixture manifest.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("iterations") {
				if env := os.Getenv("LOADMARK_ITERATIONS"); env != "" {
					n, err := strconv.Atoi(env)
					if err != nil {
						return fmt.Errorf("parse LOADMARK_ITERATIONS: %w", err)
					}

					iterations = n
				}
			}

			return runBenchmark(logger, runConfig{
				dir:        dir,
				base:       base,
				strategies: strategies,
				iterations: iterations,
				key:        key,
				expect:     expect,
				sortBy:     sortBy,
				outputJSON: outputJSON,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dir, "dir", "fixtures",
		"Fixture set directory")
	flags.StringVar(&base, "base", "kv",
		"Fixture base name")
	flags.StringSliceVar(&strategies, "strategies", nil,
		"Strategies to benchmark (default: all registered)")
	flags.IntVar(&iterations, "iterations", defaultIterations,
		"Load iterations per strategy")
	flags.StringVar(&key, "key", "",
		"Probe key for the correctness check (default: from manifest)")
	flags.StringVar(&expect, "expect", "",
		"Expected probe value (default: from manifest)")
	flags.StringVar(&sortBy, "sort", report.SortRegistration,
		"Row order: registration or elapsed")
	flags.BoolVar(&outputJSON, "json", false,
		"Output measurements as JSON instead of table")

	return cmd
}

func newGenCmd(logger *slog.Logger) *cobra.Command {
	var (
		dir        string
		base       string
		strategies []string
		entries    int
		keySize    int
		valueSize  int
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a fixture set",
		Long: `Generate one deterministic key-value dataset and write it under the
fixture directory once per strategy encoding, plus a manifest recording
the probe key/value pair used for correctness checks.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return generateFixtures(logger, genConfig{
				dir:        dir,
				base:       base,
				strategies: strategies,
				entries:    entries,
				keySize:    keySize,
				valueSize:  valueSize,
				seed:       seed,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dir, "dir", "fixtures",
		"Output directory for the fixture set")
	flags.StringVar(&base, "base", "kv",
		"Fixture base name")
	flags.StringSliceVar(&strategies, "strategies", nil,
		"Strategies to generate fixtures for (default: all registered)")
	flags.IntVar(&entries, "entries", 1000,
		"Number of key-value entries")
	flags.IntVar(&keySize, "key-size", 8,
		"Random bytes per key (hex-encoded on disk)")
	flags.IntVar(&valueSize, "value-size", 32,
		"Random bytes per value (hex-encoded on disk)")
	flags.Int64Var(&seed, "seed", 0,
		"Random seed (0 = use current time)")

	return cmd
}

type runConfig struct {
	dir        string
	base       string
	strategies []string
	iterations int
	key        string
	expect     string
	sortBy     string
	outputJSON bool
}

func runBenchmark(logger *slog.Logger, cfg runConfig) error {
	// Reject a bad sort mode up front rather than after the benchmarks
	// have already run.
	switch cfg.sortBy {
	case report.SortRegistration, report.SortElapsed:
	default:
		return fmt.Errorf(
			"unknown sort mode %q (valid: %s, %s)",
			cfg.sortBy, report.SortRegistration, report.SortElapsed,
		)
	}

	selected, err := selectStrategies(cfg.strategies)
	if err != nil {
		return err
	}

	set := &fixture.Set{Dir: cfg.dir}

	key, expect := cfg.key, cfg.expect
	if key == "" || expect == "" {
		manifest, err := set.Manifest(cfg.base)
		if err != nil {
			return fmt.Errorf(
				"no --key/--expect given and manifest unavailable: %w", err,
			)
		}

		if key == "" {
			key = manifest.ProbeKey
		}

		if expect == "" {
			expect = manifest.ProbeValue
		}
	}

	logger.Info("starting benchmark",
		slog.String("dir", cfg.dir),
		slog.String("base", cfg.base),
		slog.Int("iterations", cfg.iterations),
		slog.Any("strategies", names(selected)),
	)

	measurements := make([]bench.Measurement, 0, len(selected))
	failed := 0

	for _, strat := range selected {
		path, err := set.Resolve(cfg.base + strat.Ext)
		if err != nil {
			var notFound *bench.NotFoundError
			if errors.As(err, &notFound) {
				logger.Error("fixture missing, skipping strategy",
					slog.String("strategy", strat.Name),
					slog.String("path", notFound.Path),
				)

				failed++

				continue
			}

			return err
		}

		runner := bench.NewRunner(strat, logger)

		measurement, runErr := runner.Run(bench.RunConfig{
			FixturePath: path,
			Key:         key,
			Expected:    expect,
			Iterations:  cfg.iterations,
		})
		if runErr != nil {
			// A correctness mismatch means the fixture/key/expect triple
			// is wrong; every further number would be meaningless.
			var correctness *bench.CorrectnessError
			if errors.As(runErr, &correctness) {
				return fmt.Errorf("correctness check failed: %w", runErr)
			}

			var validation *bench.ValidationError
			if errors.As(runErr, &validation) {
				return runErr
			}

			logger.Error("strategy failed",
				slog.String("strategy", strat.Name),
				slog.String("error", runErr.Error()),
			)

			failed++

			continue
		}

		measurements = append(measurements, *measurement)
	}

	if len(measurements) > 0 {
		if cfg.outputJSON {
			if err := report.GenerateJSON(os.Stdout, measurements); err != nil {
				return fmt.Errorf("generate JSON report: %w", err)
			}
		} else {
			if err := report.Generate(os.Stdout, measurements, cfg.sortBy); err != nil {
				return fmt.Errorf("generate report: %w", err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d strategies failed", failed, len(selected))
	}

	logger.Info("benchmark complete")

	return nil
}

type genConfig struct {
	dir        string
	base       string
	strategies []string
	entries    int
	keySize    int
	valueSize  int
	seed       int64
}

func generateFixtures(logger *slog.Logger, cfg genConfig) error {
	selected, err := selectStrategies(cfg.strategies)
	if err != nil {
		return err
	}

	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if err := os.MkdirAll(cfg.dir, 0o755); err != nil {
		return fmt.Errorf("create fixture dir: %w", err)
	}

	gen := fixture.NewGenerator(fixture.Config{
		Entries:   cfg.entries,
		KeySize:   cfg.keySize,
		ValueSize: cfg.valueSize,
		Seed:      seed,
	})

	summary, err := gen.Generate(cfg.dir, cfg.base, selected)
	if err != nil {
		return fmt.Errorf("generate fixtures: %w", err)
	}

	logger.Info("fixture set generated",
		slog.String("dir", cfg.dir),
		slog.Int("entries", summary.Entries),
		slog.Int64("seed", seed),
		slog.Any("files", summary.Files),
		slog.String("probe_key", summary.ProbeKey),
		slog.String("probe_value", summary.ProbeValue),
	)

	return nil
}

func selectStrategies(requested []string) ([]strategy.Strategy, error) {
	if len(requested) == 0 {
		return strategy.Default(), nil
	}

	selected := make([]strategy.Strategy, 0, len(requested))

	for _, name := range requested {
		strat, ok := strategy.Find(name)
		if !ok {
			return nil, fmt.Errorf(
				"unknown strategy %q (registered: %s)",
				name, strings.Join(strategy.Names(), ", "),
			)
		}

		selected = append(selected, strat)
	}

	return selected, nil
}

func names(strategies []strategy.Strategy) []string {
	out := make([]string, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, s.Name)
	}

	return out
}
