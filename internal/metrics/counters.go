// Package metrics provides bit- and block-level error counting plus
// streaming accumulators for Monte-Carlo link simulations.
package metrics

import (
	"errors"

	"github.com/lars-sto/link-level-simulation/internal/bits"
)

// ErrShapeMismatch is returned when a reference and an estimate do not have
// identical shapes.
var ErrShapeMismatch = errors.New("metrics: shape mismatch between reference and estimate")

// CountErrors counts the positions where ref and est differ. The count is
// symmetric in its arguments.
func CountErrors(ref, est *bits.Tensor) (int64, error) {
	if !ref.SameShape(est) {
		return 0, ErrShapeMismatch
	}
	var n int64
	rd, ed := ref.Data(), est.Data()
	for i := range rd {
		if rd[i] != ed[i] {
			n++
		}
	}
	return n, nil
}

// ComputeBER is the bit error rate: mismatched positions divided by the
// total element count. An empty tensor yields 0, never a division by zero.
func ComputeBER(ref, est *bits.Tensor) (float64, error) {
	n, err := CountErrors(ref, est)
	if err != nil {
		return 0, err
	}
	if ref.Size() == 0 {
		return 0, nil
	}
	return float64(n) / float64(ref.Size()), nil
}

// CountBlockErrors treats the last axis as one block and counts blocks with
// at least one differing element.
func CountBlockErrors(ref, est *bits.Tensor) (int64, error) {
	if !ref.SameShape(est) {
		return 0, ErrShapeMismatch
	}
	blockLen := ref.BlockLen()
	if blockLen == 0 {
		return 0, nil
	}
	var n int64
	rd, ed := ref.Data(), est.Data()
	for b := 0; b < ref.NumBlocks(); b++ {
		off := b * blockLen
		for i := 0; i < blockLen; i++ {
			if rd[off+i] != ed[off+i] {
				n++
				break
			}
		}
	}
	return n, nil
}

// ComputeBLER is the block error rate: erroneous blocks divided by the
// number of blocks. Zero blocks yield 0.
func ComputeBLER(ref, est *bits.Tensor) (float64, error) {
	n, err := CountBlockErrors(ref, est)
	if err != nil {
		return 0, err
	}
	if ref.NumBlocks() == 0 {
		return 0, nil
	}
	return float64(n) / float64(ref.NumBlocks()), nil
}
