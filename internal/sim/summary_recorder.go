package sim

// SummaryRecorder aggregates per-iteration samples into sweep-level summary
// metrics. It implements Recorder so it can be plugged into SimBER without
// modifying the runner.
type SummaryRecorder struct {
	iterations int64

	totalBitErrors   int64
	totalBits        int64
	totalBlockErrors int64
	totalBlocks      int64

	maxIterBER float64
}

func NewSummaryRecorder() *SummaryRecorder { return &SummaryRecorder{} }

func (r *SummaryRecorder) OnIteration(s IterSample) {
	r.iterations++

	r.totalBitErrors += s.BitErrors
	r.totalBits += s.Bits
	r.totalBlockErrors += s.BlockErrors
	r.totalBlocks += s.Blocks

	if s.Bits > 0 {
		ber := float64(s.BitErrors) / float64(s.Bits)
		if ber > r.maxIterBER {
			r.maxIterBER = ber
		}
	}
}

func (r *SummaryRecorder) Close() error { return nil }

// Iterations is the total number of iterations across all points.
func (r *SummaryRecorder) Iterations() int64 { return r.iterations }

// PooledBER is the sweep-wide errors/bits ratio across everything sampled.
// Note this is a pooled ratio, not the per-batch mean the streaming metrics
// report.
func (r *SummaryRecorder) PooledBER() float64 {
	if r.totalBits <= 0 {
		return 0
	}
	return float64(r.totalBitErrors) / float64(r.totalBits)
}

// PooledBLER is the sweep-wide block errors/blocks ratio.
func (r *SummaryRecorder) PooledBLER() float64 {
	if r.totalBlocks <= 0 {
		return 0
	}
	return float64(r.totalBlockErrors) / float64(r.totalBlocks)
}

// MaxIterBER is the worst single-iteration BER observed.
func (r *SummaryRecorder) MaxIterBER() float64 { return r.maxIterBER }

// TotalBits is the number of elements sampled across the sweep.
func (r *SummaryRecorder) TotalBits() int64 { return r.totalBits }
