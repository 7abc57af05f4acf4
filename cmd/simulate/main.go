package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lars-sto/link-level-simulation/internal/channel"
	"github.com/lars-sto/link-level-simulation/internal/sim"
	"github.com/olekukonko/tablewriter"
	"github.com/pion/logging"
)

func main() {
	var (
		sweepName   = flag.String("sweep", "", "run a preset sweep by name (overrides -channel/-start/-stop/-step/-maxiter/-batch/-earlystop)")
		channelKind = flag.String("channel", "bsc", "channel sampler: bsc | awgn | erasure | vnet")
		start       = flag.Float64("start", 0, "first operating point (Eb/N0 dB for bsc/awgn, loss prob for erasure/vnet)")
		stop        = flag.Float64("stop", 10, "last operating point (inclusive)")
		step        = flag.Float64("step", 1, "operating point increment")
		maxIter     = flag.Int("maxiter", 100, "iteration budget per operating point")
		batchSize   = flag.Int("batch", 64, "blocks per iteration")
		blockLen    = flag.Int("blocklen", 128, "bits per block (multiple of 8 for packet channels)")
		earlyStop   = flag.Bool("earlystop", true, "stop a point on a zero-error iteration and skip points after an error-free one")
		seed        = flag.Int64("seed", 1, "base seed")
		outPath     = flag.String("out", "results/summary.csv", "output summary CSV file")
		iterCSV     = flag.String("itercsv", "", "optional: write per-iteration CSV to this path (empty disables)")
		verbose     = flag.Bool("v", false, "per-point progress logging")
	)
	flag.Parse()

	lf := logging.NewDefaultLoggerFactory()
	if *verbose {
		lf.DefaultLogLevel = logging.LogLevelDebug
	} else {
		lf.DefaultLogLevel = logging.LogLevelInfo
	}
	log := lf.NewLogger("simulate")

	sumRec := sim.NewSummaryRecorder()
	var rec sim.Recorder = sumRec
	if *iterCSV != "" {
		iterRec, err := sim.NewCSVRecorder(*iterCSV)
		if err != nil {
			panic(err)
		}
		rec = sim.MultiRecorder(sumRec, iterRec)
	}

	var (
		results []sim.PointResult
		label   = *channelKind
		runSeed = *seed
	)

	if *sweepName != "" {
		sw, ok := sim.FindSweep(sim.DefaultSweeps(*seed), *sweepName)
		if !ok {
			log.Errorf("unknown sweep %q, available: %s", *sweepName, sweepNames(*seed))
			os.Exit(1)
		}

		sampler, closer, err := buildSampler(sw.Channel, *blockLen, sw.Seed)
		if err != nil {
			panic(err)
		}
		if closer != nil {
			defer func() { _ = closer() }()
		}

		log.Infof("sweep=%s channel=%s points=%d maxiter=%d batch=%d blocklen=%d earlystop=%t seed=%d",
			sw.Name, sw.Channel, len(sw.Points), sw.MaxIter, sw.BatchSize, *blockLen, sw.EarlyStop, sw.Seed)

		results, err = sim.RunSweep(sw, sampler, rec)
		if err != nil {
			panic(err)
		}
		label, runSeed = sw.Name, sw.Seed
	} else {
		points := sim.Range(*start, *stop, *step)
		if len(points) == 0 {
			log.Errorf("empty operating point range [%v, %v] step %v", *start, *stop, *step)
			os.Exit(1)
		}

		sampler, closer, err := buildSampler(*channelKind, *blockLen, *seed)
		if err != nil {
			panic(err)
		}
		if closer != nil {
			defer func() { _ = closer() }()
		}

		log.Infof("channel=%s points=%d maxiter=%d batch=%d blocklen=%d earlystop=%t seed=%d",
			*channelKind, len(points), *maxIter, *batchSize, *blockLen, *earlyStop, *seed)

		results, err = sim.SimBER(sampler, points, sim.RunOptions{
			MaxIter:   *maxIter,
			BatchSize: *batchSize,
			EarlyStop: *earlyStop,
			Recorder:  rec,
			Log:       lf.NewLogger("sim"),
		})
		if err != nil {
			panic(err)
		}
	}

	if err := rec.Close(); err != nil {
		panic(err)
	}

	w, err := sim.NewSummaryCSVWriter(*outPath)
	if err != nil {
		panic(err)
	}
	if err := w.WriteResults(label, runSeed, results); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}

	printTable(results)
	fmt.Printf("pooled ber %.3e over %d bits (%d iterations), summary written to %s\n",
		sumRec.PooledBER(), sumRec.TotalBits(), sumRec.Iterations(), *outPath)
}

func buildSampler(kind string, blockLen int, seed int64) (sim.Sampler, func() error, error) {
	switch kind {
	case "bsc":
		return channel.NewBSC(blockLen, seed).Samples, nil, nil
	case "awgn":
		return channel.NewAWGN(blockLen, seed).Samples, nil, nil
	case "erasure":
		c, err := channel.NewErasure(blockLen, seed)
		if err != nil {
			return nil, nil, err
		}
		return c.Samples, nil, nil
	case "vnet":
		c, err := channel.NewVNet(blockLen, seed)
		if err != nil {
			return nil, nil, err
		}
		return c.Samples, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown channel %q", kind)
	}
}

func sweepNames(seed int64) string {
	var names []string
	for _, sw := range sim.DefaultSweeps(seed) {
		names = append(names, sw.Name)
	}
	return strings.Join(names, ", ")
}

func printTable(results []sim.PointResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Point", "BER", "BLER", "Bit Errors", "Bits", "Iters", "Status"})

	for _, r := range results {
		status := "done"
		if r.Stopped {
			status = "stopped"
		}
		if r.Skipped {
			status = "skipped"
		}
		table.Append([]string{
			strconv.FormatFloat(r.Point, 'g', -1, 64),
			fmt.Sprintf("%.3e", r.BER),
			fmt.Sprintf("%.3e", r.BLER),
			strconv.FormatInt(r.BitErrors, 10),
			strconv.FormatInt(r.Bits, 10),
			strconv.Itoa(r.Iters),
			status,
		})
	}
	table.Render()
}
