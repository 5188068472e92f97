// Package strategy defines the loader strategies the harness compares.
// Each strategy reads one fixture file and materializes it as a fresh
// in-memory dataset; no strategy caches anything between calls, since
// the whole point is to measure a cold per-call load.
package strategy

// Dataset is the in-memory form of a fixture: a flat mapping from
// string keys to string values. Every Load call returns a new,
// independently mutable Dataset.
type Dataset map[string]string

// Strategy is a named loading algorithm plus the encoder that writes
// its fixture form. Load and Encode are pure apart from the file I/O.
type Strategy struct {
	Name   string
	Ext    string
	Load   func(path string) (Dataset, error)
	Encode func(path string, ds Dataset) error
}

// Default returns the registered strategies in reporting order. The
// json and sonic strategies deliberately share the .json fixture: same
// bytes on disk, different decode path.
func Default() []Strategy {
	return []Strategy{
		{Name: "json", Ext: ".json", Load: loadJSON, Encode: encodeJSON},
		{Name: "sonic", Ext: ".json", Load: loadSonic, Encode: encodeJSON},
		{Name: "gob", Ext: ".gob", Load: loadGob, Encode: encodeGob},
		{Name: "cbor", Ext: ".cbor", Load: loadCBOR, Encode: encodeCBOR},
		{Name: "toml", Ext: ".toml", Load: loadTOML, Encode: encodeTOML},
		{Name: "sqlite", Ext: ".db", Load: loadSQLite, Encode: encodeSQLite},
	}
}

// Find returns the named strategy from the default registry.
func Find(name string) (Strategy, bool) {
	for _, s := range Default() {
		if s.Name == name {
			return s, true
		}
	}

	return Strategy{}, false
}

// Names returns the default registry's strategy names in order.
func Names() []string {
	defaults := Default()
	names := make([]string, 0, len(defaults))

	for _, s := range defaults {
		names = append(names, s.Name)
	}

	return names
}
