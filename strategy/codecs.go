package strategy

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/bytedance/sonic"
	"github.com/fxamacker/cbor/v2"
)

func loadJSON(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	return ds, nil
}

func encodeJSON(path string, ds Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

func loadSonic(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var ds Dataset
	if err := sonic.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode JSON (sonic): %w", err)
	}

	return ds, nil
}

func loadGob(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	var ds Dataset
	if err := gob.NewDecoder(f).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode gob: %w", err)
	}

	return ds, nil
}

func encodeGob(path string, ds Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	if err := gob.NewEncoder(f).Encode(ds); err != nil {
		f.Close()

		return fmt.Errorf("encode gob: %w", err)
	}

	return f.Close()
}

func loadCBOR(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var ds Dataset
	if err := cbor.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode CBOR: %w", err)
	}

	return ds, nil
}

func encodeCBOR(path string, ds Dataset) error {
	data, err := cbor.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode CBOR: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

func loadTOML(path string) (Dataset, error) {
	var ds Dataset
	if _, err := toml.DecodeFile(path, &ds); err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}

	return ds, nil
}

func encodeTOML(path string, ds Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(ds); err != nil {
		f.Close()

		return fmt.Errorf("encode TOML: %w", err)
	}

	return f.Close()
}
