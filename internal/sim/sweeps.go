package sim

// Range builds an inclusive ascending sequence of operating points from
// start to stop in increments of step.
func Range(start, stop, step float64) []float64 {
	if step <= 0 {
		return nil
	}
	var out []float64
	// half-step slack absorbs accumulation error at the upper bound
	for p := start; p <= stop+step/2; p += step {
		out = append(out, p)
	}
	return out
}

// DefaultSweeps returns the stock preset sweeps selectable by name via the
// CLI's -sweep flag.
func DefaultSweeps(seed int64) []Sweep {
	return []Sweep{
		{
			Name:      "bsc_ebno_0_10",
			Channel:   "bsc",
			Points:    Range(0, 10, 1),
			MaxIter:   100,
			BatchSize: 64,
			EarlyStop: true,
			Seed:      seed,
		},
		{
			Name:      "awgn_bpsk_ebno_0_10",
			Channel:   "awgn",
			Points:    Range(0, 10, 1),
			MaxIter:   100,
			BatchSize: 64,
			EarlyStop: true,
			Seed:      seed,
		},
		{
			Name:      "erasure_loss_0_20pct",
			Channel:   "erasure",
			Points:    Range(0, 0.20, 0.02),
			MaxIter:   50,
			BatchSize: 32,
			EarlyStop: true,
			Seed:      seed,
		},
	}
}

// FindSweep looks a sweep up by name.
func FindSweep(sweeps []Sweep, name string) (Sweep, bool) {
	for _, sw := range sweeps {
		if sw.Name == name {
			return sw, true
		}
	}
	return Sweep{}, false
}
