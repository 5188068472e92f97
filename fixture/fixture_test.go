package fixture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/weiihann/loadmark/bench"
	"github.com/weiihann/loadmark/strategy"
)

func TestResolveExisting(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(
		filepath.Join(dir, "kv.json"), []byte(`{}`), 0o644,
	); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	set := &Set{Dir: dir}

	path, err := set.Resolve("kv.json")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if !filepath.IsAbs(path) {
		t.Errorf("path %q is not absolute", path)
	}
}

func TestResolveMissing(t *testing.T) {
	set := &Set{Dir: t.TempDir()}

	_, err := set.Resolve("absent.json")

	var notFound *bench.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestResolveDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	set := &Set{Dir: dir}

	_, err := set.Resolve("sub")

	var notFound *bench.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError for directory", err)
	}
}

func TestGenerateWritesAllForms(t *testing.T) {
	dir := t.TempDir()
	strategies := strategy.Default()

	gen := NewGenerator(Config{
		Entries:   50,
		KeySize:   8,
		ValueSize: 16,
		Seed:      42,
	})

	summary, err := gen.Generate(dir, "kv", strategies)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if summary.Entries != 50 {
		t.Errorf("entries = %d, want 50", summary.Entries)
	}
	if summary.ProbeKey == "" || summary.ProbeValue == "" {
		t.Error("summary missing probe key/value")
	}

	set := &Set{Dir: dir}

	// Every strategy must find its fixture and see the probe pair.
	for _, strat := range strategies {
		path, err := set.Resolve("kv" + strat.Ext)
		if err != nil {
			t.Fatalf("resolve %s fixture: %v", strat.Name, err)
		}

		ds, err := strat.Load(path)
		if err != nil {
			t.Fatalf("load %s fixture: %v", strat.Name, err)
		}

		if len(ds) != 50 {
			t.Errorf("%s: loaded %d entries, want 50", strat.Name, len(ds))
		}

		if got := ds[summary.ProbeKey]; got != summary.ProbeValue {
			t.Errorf("%s: probe %q = %q, want %q",
				strat.Name, summary.ProbeKey, got, summary.ProbeValue)
		}
	}
}

func TestGenerateWritesManifest(t *testing.T) {
	dir := t.TempDir()

	gen := NewGenerator(Config{
		Entries:   10,
		KeySize:   4,
		ValueSize: 8,
		Seed:      7,
	})

	summary, err := gen.Generate(dir, "kv", strategy.Default())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	set := &Set{Dir: dir}

	manifest, err := set.Manifest("kv")
	if err != nil {
		t.Fatalf("Manifest failed: %v", err)
	}

	if manifest.Base != "kv" {
		t.Errorf("base = %q, want kv", manifest.Base)
	}
	if manifest.Entries != 10 {
		t.Errorf("entries = %d, want 10", manifest.Entries)
	}
	if manifest.Seed != 7 {
		t.Errorf("seed = %d, want 7", manifest.Seed)
	}
	if manifest.ProbeKey != summary.ProbeKey {
		t.Errorf("probe key = %q, want %q", manifest.ProbeKey, summary.ProbeKey)
	}
	if manifest.ProbeValue != summary.ProbeValue {
		t.Errorf("probe value = %q, want %q",
			manifest.ProbeValue, summary.ProbeValue)
	}
	if len(manifest.Files) != len(summary.Files) {
		t.Errorf("files = %v, want %v", manifest.Files, summary.Files)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Entries: 20, KeySize: 8, ValueSize: 8, Seed: 99}

	first, err := NewGenerator(cfg).Generate(t.TempDir(), "kv", strategy.Default())
	if err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}

	second, err := NewGenerator(cfg).Generate(t.TempDir(), "kv", strategy.Default())
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	if first.ProbeKey != second.ProbeKey {
		t.Errorf("probe keys differ: %q vs %q", first.ProbeKey, second.ProbeKey)
	}
	if first.ProbeValue != second.ProbeValue {
		t.Errorf("probe values differ: %q vs %q",
			first.ProbeValue, second.ProbeValue)
	}
}

func TestGenerateRejectsZeroEntries(t *testing.T) {
	gen := NewGenerator(Config{Entries: 0, KeySize: 4, ValueSize: 4, Seed: 1})

	if _, err := gen.Generate(t.TempDir(), "kv", strategy.Default()); err == nil {
		t.Error("expected error for zero entries")
	}
}

func TestGenerateRejectsTinyKeySpace(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{
			name: "zero key size",
			cfg:  Config{Entries: 2, KeySize: 0, ValueSize: 4, Seed: 1},
		},
		{
			name: "more entries than one-byte keys",
			cfg:  Config{Entries: 300, KeySize: 1, ValueSize: 4, Seed: 1},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gen := NewGenerator(c.cfg)

			if _, err := gen.Generate(t.TempDir(), "kv", strategy.Default()); err == nil {
				t.Error("expected error for undersized key space")
			}
		})
	}
}

func TestGenerateFillsSmallKeySpace(t *testing.T) {
	jsonStrat, ok := strategy.Find("json")
	if !ok {
		t.Fatal("json strategy not registered")
	}

	// 16 entries of one-byte keys fit comfortably in the 256-key space.
	gen := NewGenerator(Config{Entries: 16, KeySize: 1, ValueSize: 4, Seed: 1})

	summary, err := gen.Generate(
		t.TempDir(), "kv", []strategy.Strategy{jsonStrat},
	)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if summary.Entries != 16 {
		t.Errorf("entries = %d, want 16", summary.Entries)
	}
}

func TestManifestMissing(t *testing.T) {
	set := &Set{Dir: t.TempDir()}

	_, err := set.Manifest("kv")

	var notFound *bench.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}
