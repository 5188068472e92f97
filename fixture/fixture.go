// Package fixture resolves and generates the on-disk dataset files the
// harness loads. A fixture set is a directory holding one logical
// dataset materialized once per strategy encoding, plus a manifest
// recording how it was generated and which key/value pair to probe.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/weiihann/loadmark/bench"
)

// Set resolves logical fixture names against a directory.
type Set struct {
	Dir string
}

// Resolve returns the absolute path of the named fixture file. Missing
// or non-regular files yield a *bench.NotFoundError.
func (s *Set) Resolve(name string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &bench.NotFoundError{Path: abs}
		}

		return "", fmt.Errorf("stat %s: %w", abs, err)
	}

	if !info.Mode().IsRegular() {
		return "", &bench.NotFoundError{Path: abs}
	}

	return abs, nil
}

// Manifest describes a generated fixture set.
type Manifest struct {
	Base       string   `json:"base"`
	Entries    int      `json:"entries"`
	Seed       int64    `json:"seed"`
	ProbeKey   string   `json:"probe_key"`
	ProbeValue string   `json:"probe_value"`
	Files      []string `json:"files"`
}

func manifestName(base string) string {
	return base + ".manifest.json"
}

// Manifest reads the manifest for the given fixture base name.
func (s *Set) Manifest(base string) (*Manifest, error) {
	path, err := s.Resolve(manifestName(base))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}

	return &m, nil
}

func writeManifest(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	path := filepath.Join(dir, manifestName(m.Base))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
