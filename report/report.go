// Package report formats benchmark measurements into comparison tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/weiihann/loadmark/bench"
)

// Sort modes for Generate.
const (
	SortRegistration = "registration"
	SortElapsed      = "elapsed"
)

// Generate writes a markdown comparison table for the given
// measurements. sortBy selects row order: SortRegistration keeps the
// order measurements were taken in, SortElapsed puts the fastest first.
func Generate(w io.Writer, measurements []bench.Measurement, sortBy string) error {
	if len(measurements) == 0 {
		return fmt.Errorf("no measurements to report")
	}

	rows := make([]bench.Measurement, len(measurements))
	copy(rows, measurements)

	switch sortBy {
	case SortRegistration, "":
	case SortElapsed:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Elapsed < rows[j].Elapsed
		})
	default:
		return fmt.Errorf("unknown sort mode %q", sortBy)
	}

	fastest := findFastest(rows)

	fmt.Fprintln(w, "## Cold-Load Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Strategy | Iterations | Total | ns/op | Speedup |")
	fmt.Fprintln(w, "|----------|------------|-------|-------|---------|")

	for _, m := range rows {
		speedup := 1.0
		if fastest > 0 && m.Elapsed > 0 {
			speedup = float64(m.Elapsed) / float64(fastest)
		}

		fmt.Fprintf(w, "| %s | %d | %s | %d | %.2fx |\n",
			m.Strategy,
			m.Iterations,
			formatDuration(m.Elapsed),
			m.NsPerOp(),
			speedup,
		)
	}

	return nil
}

// GenerateJSON writes measurements as JSON to w.
func GenerateJSON(w io.Writer, measurements []bench.Measurement) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(measurements)
}

func findFastest(measurements []bench.Measurement) time.Duration {
	var fastest time.Duration

	for _, m := range measurements {
		if m.Elapsed <= 0 {
			continue
		}

		if fastest == 0 || m.Elapsed < fastest {
			fastest = m.Elapsed
		}
	}

	return fastest
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
