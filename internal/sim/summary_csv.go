package sim

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
)

// SummaryRow is one operating point of a finished sweep.
type SummaryRow struct {
	Sweep string
	Seed  int64

	Point float64
	BER   float64
	BLER  float64

	BitErrors   int64
	Bits        int64
	BlockErrors int64
	Blocks      int64

	Iters   int
	Stopped bool
	Skipped bool
}

type SummaryCSVWriter struct {
	f *os.File
	w *csv.Writer
}

func NewSummaryCSVWriter(path string) (*SummaryCSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)

	hdr := []string{
		"sweep",
		"seed",
		"point",
		"ber",
		"bler",
		"bit_errors",
		"bits",
		"block_errors",
		"blocks",
		"iters",
		"stopped",
		"skipped",
	}
	if err := w.Write(hdr); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()
	return &SummaryCSVWriter{f: f, w: w}, nil
}

func (s *SummaryCSVWriter) WriteRow(r SummaryRow) error {
	row := []string{
		r.Sweep,
		strconv.FormatInt(r.Seed, 10),

		ff(r.Point),
		ff(r.BER),
		ff(r.BLER),

		strconv.FormatInt(r.BitErrors, 10),
		strconv.FormatInt(r.Bits, 10),
		strconv.FormatInt(r.BlockErrors, 10),
		strconv.FormatInt(r.Blocks, 10),

		strconv.Itoa(r.Iters),
		strconv.FormatBool(r.Stopped),
		strconv.FormatBool(r.Skipped),
	}
	return s.w.Write(row)
}

// WriteResults emits one row per operating point of a finished sweep.
func (s *SummaryCSVWriter) WriteResults(sweep string, seed int64, results []PointResult) error {
	for _, r := range results {
		row := SummaryRow{
			Sweep: sweep,
			Seed:  seed,

			Point: r.Point,
			BER:   r.BER,
			BLER:  r.BLER,

			BitErrors:   r.BitErrors,
			Bits:        r.Bits,
			BlockErrors: r.BlockErrors,
			Blocks:      r.Blocks,

			Iters:   r.Iters,
			Stopped: r.Stopped,
			Skipped: r.Skipped,
		}
		if err := s.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *SummaryCSVWriter) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}
