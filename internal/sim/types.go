package sim

import (
	"github.com/lars-sto/link-level-simulation/internal/bits"
	"github.com/pion/logging"
)

// Sampler produces one Monte-Carlo batch for an operating point: a reference
// bit tensor and the estimate after the system under test. Both must have
// identical shapes. Errors propagate unmodified to the driver's caller; the
// driver performs no retries.
type Sampler func(batchSize int, point float64) (ref, est *bits.Tensor, err error)

// RunOptions controls one sweep of SimBER.
type RunOptions struct {
	// MaxIter is the iteration budget per operating point. Values below 1
	// are treated as 1.
	MaxIter int

	// BatchSize is handed through to the sampler untouched.
	BatchSize int

	// EarlyStop enables both stopping rules: a point stops as soon as the
	// current iteration observed zero bit errors, and the sweep stops once
	// a point finishes with zero accumulated errors (remaining points are
	// reported as 0 and never sampled).
	EarlyStop bool

	// Recorder receives one sample per iteration. Optional.
	Recorder Recorder

	// Log receives per-point progress. Optional; a silent default logger
	// is used when nil.
	Log logging.LeveledLogger
}

func (o RunOptions) withDefaults() RunOptions {
	if o.MaxIter < 1 {
		o.MaxIter = 1
	}
	if o.BatchSize < 1 {
		o.BatchSize = 1
	}
	if o.Log == nil {
		o.Log = logging.NewDefaultLoggerFactory().NewLogger("sim")
	}
	return o
}

// PointResult holds the accumulated statistics of one operating point.
type PointResult struct {
	Point float64

	BER  float64
	BLER float64

	BitErrors   int64
	Bits        int64
	BlockErrors int64
	Blocks      int64

	// Iters is the number of iterations actually run; with early stopping
	// this can be less than the budget.
	Iters int

	// Stopped marks a point that hit the zero-error stopping rule.
	Stopped bool

	// Skipped marks a point that was never sampled because an earlier
	// point finished error-free.
	Skipped bool
}

// Sweep names an ordered set of operating points plus the run parameters.
// Channel names the sampler kind the preset expects; Seed is meant to feed
// the sampler's construction and Name to label summary rows.
type Sweep struct {
	Name      string
	Channel   string
	Points    []float64
	MaxIter   int
	BatchSize int
	EarlyStop bool
	Seed      int64
}

// BERs extracts the BER values in operating-point order.
func BERs(results []PointResult) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.BER
	}
	return out
}

// BLERs extracts the BLER values in operating-point order.
func BLERs(results []PointResult) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.BLER
	}
	return out
}
