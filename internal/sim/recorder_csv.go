package sim

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// IterSample is one Monte-Carlo iteration as seen by a Recorder.
type IterSample struct {
	Point float64
	Iter  int

	BitErrors   int64
	Bits        int64
	BlockErrors int64
	Blocks      int64

	// CumBER is the point's accumulated BER up to and including this
	// iteration.
	CumBER float64
}

type Recorder interface {
	OnIteration(s IterSample)
	Close() error
}

type CSVRecorder struct {
	f *os.File
	w *csv.Writer
}

func NewCSVRecorder(path string) (*CSVRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)

	hdr := []string{
		"point",
		"iter",
		"bit_errors",
		"bits",
		"block_errors",
		"blocks",
		"cum_ber",
	}
	if err := w.Write(hdr); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVRecorder{f: f, w: w}, nil
}

func (r *CSVRecorder) OnIteration(s IterSample) {
	row := []string{
		ff(s.Point),
		strconv.Itoa(s.Iter),
		strconv.FormatInt(s.BitErrors, 10),
		strconv.FormatInt(s.Bits, 10),
		strconv.FormatInt(s.BlockErrors, 10),
		strconv.FormatInt(s.Blocks, 10),
		ff(s.CumBER),
	}
	_ = r.w.Write(row)
}

func (r *CSVRecorder) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		_ = r.f.Close()
		return err
	}
	return r.f.Close()
}

func ff(v float64) string { return fmt.Sprintf("%.6f", v) }
