package sim

import (
	"fmt"

	"github.com/lars-sto/link-level-simulation/internal/metrics"
)

// SimBER runs the Monte-Carlo sweep: for each operating point, in order, it
// draws up to MaxIter batches from the sampler and accumulates bit and block
// error statistics. The returned slice has one entry per operating point, in
// input order.
//
// Early stopping has two levels, both gated on RunOptions.EarlyStop:
//
//   - Point level: the iteration loop terminates as soon as the current
//     iteration observed zero bit errors; budgeted iterations after it are
//     skipped and the point's BER reflects only the iterations actually run.
//   - Sweep level: once a point finishes with zero accumulated bit errors,
//     the remaining points are assumed error-free as well (BER is monotone
//     in the operating point for the intended sweeps), reported as 0 and
//     never sampled.
//
// Per-point accumulators are freshly initialized for every point; nothing is
// shared across points. Sampler errors abort the sweep and are returned
// wrapped with the failing point.
func SimBER(sampler Sampler, points []float64, opt RunOptions) ([]PointResult, error) {
	opt = opt.withDefaults()

	results := make([]PointResult, len(points))
	stopSweep := false

	for i, point := range points {
		res := PointResult{Point: point}

		if stopSweep {
			res.Skipped = true
			results[i] = res
			continue
		}

		for iter := 0; iter < opt.MaxIter; iter++ {
			ref, est, err := sampler(opt.BatchSize, point)
			if err != nil {
				return nil, fmt.Errorf("sim: sampler failed at point %v iteration %d: %w", point, iter, err)
			}

			iterErrors, err := metrics.CountErrors(ref, est)
			if err != nil {
				return nil, fmt.Errorf("sim: point %v iteration %d: %w", point, iter, err)
			}
			blockErrors, err := metrics.CountBlockErrors(ref, est)
			if err != nil {
				return nil, fmt.Errorf("sim: point %v iteration %d: %w", point, iter, err)
			}

			res.BitErrors += iterErrors
			res.Bits += int64(ref.Size())
			res.BlockErrors += blockErrors
			res.Blocks += int64(ref.NumBlocks())
			res.Iters++

			if opt.Recorder != nil {
				cum := 0.0
				if res.Bits > 0 {
					cum = float64(res.BitErrors) / float64(res.Bits)
				}
				opt.Recorder.OnIteration(IterSample{
					Point:       point,
					Iter:        iter,
					BitErrors:   iterErrors,
					Bits:        int64(ref.Size()),
					BlockErrors: blockErrors,
					Blocks:      int64(ref.NumBlocks()),
					CumBER:      cum,
				})
			}

			if opt.EarlyStop && iterErrors == 0 {
				res.Stopped = true
				break
			}
		}

		if res.Bits > 0 {
			res.BER = float64(res.BitErrors) / float64(res.Bits)
		}
		if res.Blocks > 0 {
			res.BLER = float64(res.BlockErrors) / float64(res.Blocks)
		}

		opt.Log.Debugf("point %v: ber=%.3e bler=%.3e errors=%d bits=%d iters=%d stopped=%t",
			point, res.BER, res.BLER, res.BitErrors, res.Bits, res.Iters, res.Stopped)

		if opt.EarlyStop && res.BitErrors == 0 {
			opt.Log.Infof("point %v error-free after %d iteration(s), skipping remaining points", point, res.Iters)
			stopSweep = true
		}

		results[i] = res
	}

	return results, nil
}

// RunSweep is the Sweep-struct convenience wrapper around SimBER. The
// sweep's Seed and Name are for the caller: the seed feeds the sampler's
// construction, the name labels the summary output.
func RunSweep(sw Sweep, sampler Sampler, rec Recorder) ([]PointResult, error) {
	return SimBER(sampler, sw.Points, RunOptions{
		MaxIter:   sw.MaxIter,
		BatchSize: sw.BatchSize,
		EarlyStop: sw.EarlyStop,
		Recorder:  rec,
	})
}
