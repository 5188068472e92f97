// Package bench runs cold-load benchmarks for deserialization strategies.
package bench

import "time"

// Measurement holds the timing result of one completed run. A
// Measurement only exists for runs whose correctness check passed.
type Measurement struct {
	Strategy   string        `json:"strategy"`
	Iterations int           `json:"iterations"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	Passed     bool          `json:"passed"`
}

// NsPerOp returns the average time per load+lookup iteration.
func (m Measurement) NsPerOp() int64 {
	if m.Iterations == 0 {
		return 0
	}

	return m.Elapsed.Nanoseconds() / int64(m.Iterations)
}
