package bench

import "fmt"

// NotFoundError indicates a fixture file is missing or unreadable.
// It aborts only the strategy that needed the fixture.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fixture not found: %s", e.Path)
}

// LoadError wraps a deserialization failure from a strategy. The run
// that hit it is aborted; other strategies may still be attempted.
type LoadError struct {
	Strategy string
	Path     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("strategy %s: load %s: %v", e.Strategy, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// CorrectnessError indicates a loaded value did not match the expected
// value. It is fatal to the whole harness invocation: the fixture, key,
// or expected value is wrong, so any further timing would be meaningless.
type CorrectnessError struct {
	Strategy string
	Key      string
	Want     string
	Got      string
	Missing  bool
}

func (e *CorrectnessError) Error() string {
	if e.Missing {
		return fmt.Sprintf(
			"strategy %s: key %q not present in loaded dataset",
			e.Strategy, e.Key,
		)
	}

	return fmt.Sprintf(
		"strategy %s: key %q = %q, want %q",
		e.Strategy, e.Key, e.Got, e.Want,
	)
}

// ValidationError indicates a malformed run configuration, caught
// before any fixture access or timing.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid run config: " + e.Reason
}
