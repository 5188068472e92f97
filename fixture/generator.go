package fixture

import (
	"encoding/hex"
	"fmt"
	mrand "math/rand"
	"os"
	"path/filepath"

	"github.com/weiihann/loadmark/strategy"
)

// Config controls fixture generation parameters.
type Config struct {
	Entries   int
	KeySize   int // random bytes per key, hex-encoded
	ValueSize int // random bytes per value, hex-encoded
	Seed      int64
}

// Summary contains statistics about a generated fixture set.
type Summary struct {
	Entries    int
	Files      []string
	ProbeKey   string
	ProbeValue string
}

// Generator produces deterministic fixture sets from a Config. The same
// seed always yields the same dataset, so a fixture set can be
// regenerated byte-for-byte for the textual encodings.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Generate writes one fixture file per strategy encoding under dir,
// named base + the strategy's extension, plus a manifest. Strategies
// sharing an extension share the file. Existing files are replaced.
func (g *Generator) Generate(
	dir, base string,
	strategies []strategy.Strategy,
) (Summary, error) {
	var summary Summary

	if g.cfg.Entries < 1 {
		return summary, fmt.Errorf("entries must be >= 1, got %d", g.cfg.Entries)
	}

	if g.cfg.KeySize < 1 {
		return summary, fmt.Errorf("key size must be >= 1, got %d", g.cfg.KeySize)
	}

	if g.cfg.ValueSize < 0 {
		return summary, fmt.Errorf("value size must be >= 0, got %d", g.cfg.ValueSize)
	}

	// There are 256^KeySize distinct keys; the dedup loop in dataset()
	// cannot terminate if Entries exceeds that.
	if g.cfg.KeySize < 8 {
		capacity := uint64(1) << (8 * g.cfg.KeySize)
		if uint64(g.cfg.Entries) > capacity {
			return summary, fmt.Errorf(
				"key space of %d-byte keys holds %d entries, need %d",
				g.cfg.KeySize, capacity, g.cfg.Entries,
			)
		}
	}

	dataset, probeKey := g.dataset()

	written := make(map[string]bool, len(strategies))

	for _, strat := range strategies {
		path := filepath.Join(dir, base+strat.Ext)
		if written[path] {
			continue
		}

		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return summary, fmt.Errorf("remove stale %s: %w", path, err)
		}

		if err := strat.Encode(path, dataset); err != nil {
			return summary, fmt.Errorf("encode %s fixture: %w", strat.Name, err)
		}

		written[path] = true
		summary.Files = append(summary.Files, base+strat.Ext)
	}

	summary.Entries = len(dataset)
	summary.ProbeKey = probeKey
	summary.ProbeValue = dataset[probeKey]

	if err := writeManifest(dir, &Manifest{
		Base:       base,
		Entries:    summary.Entries,
		Seed:       g.cfg.Seed,
		ProbeKey:   summary.ProbeKey,
		ProbeValue: summary.ProbeValue,
		Files:      summary.Files,
	}); err != nil {
		return summary, err
	}

	return summary, nil
}

// dataset builds the key/value corpus and picks the first generated key
// as the correctness probe.
func (g *Generator) dataset() (strategy.Dataset, string) {
	ds := make(strategy.Dataset, g.cfg.Entries)

	var probe string

	for len(ds) < g.cfg.Entries {
		key := g.randomHex(g.cfg.KeySize)
		if _, dup := ds[key]; dup {
			continue
		}

		ds[key] = g.randomHex(g.cfg.ValueSize)

		if probe == "" {
			probe = key
		}
	}

	return ds, probe
}

func (g *Generator) randomHex(n int) string {
	buf := make([]byte, n)
	g.rng.Read(buf)

	return hex.EncodeToString(buf)
}
