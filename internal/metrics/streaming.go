package metrics

import (
	"fmt"
	"math"

	"github.com/lars-sto/link-level-simulation/internal/bits"
)

// BitErrorRate accumulates the running mean of per-batch bit error rates.
//
// Each Update contributes one batch BER with equal weight regardless of the
// batch size. This is NOT a pooled BER over all elements ever seen: repeated
// fixed-size Monte-Carlo trials are combined as a mean of trial results.
type BitErrorRate struct {
	sum     float64
	counter int64
}

func NewBitErrorRate() *BitErrorRate { return &BitErrorRate{} }

// Update adds the BER of one (ref, est) batch to the running mean.
func (m *BitErrorRate) Update(ref, est *bits.Tensor) error {
	ber, err := ComputeBER(ref, est)
	if err != nil {
		return err
	}
	m.sum += ber
	m.counter++
	return nil
}

// Result is the mean of the batch BERs seen so far, 0 before any update.
func (m *BitErrorRate) Result() float64 {
	if m.counter == 0 {
		return 0
	}
	return m.sum / float64(m.counter)
}

// Count is the number of batches accumulated since the last reset.
func (m *BitErrorRate) Count() int64 { return m.counter }

// Reset zeroes the numerator and the counter.
func (m *BitErrorRate) Reset() {
	m.sum = 0
	m.counter = 0
}

// BitwiseMutualInformation accumulates the running mean of per-batch bitwise
// mutual information estimates derived from log-likelihood ratios.
//
// The per-batch estimate is 1 - BCE/ln2 where BCE is the mean binary cross
// entropy between the transmitted bits and the LLRs taken as logits of
// P(bit=1). Batches are combined exactly like BitErrorRate: equal weight per
// batch.
type BitwiseMutualInformation struct {
	sum     float64
	counter int64
}

func NewBitwiseMutualInformation() *BitwiseMutualInformation {
	return &BitwiseMutualInformation{}
}

// Update adds one batch estimate. llrs must have one entry per tensor
// element, flattened in the tensor's row-major order.
func (m *BitwiseMutualInformation) Update(b *bits.Tensor, llrs []float64) error {
	if len(llrs) != b.Size() {
		return fmt.Errorf("metrics: %d llrs for %d bits: %w", len(llrs), b.Size(), ErrShapeMismatch)
	}
	if b.Size() == 0 {
		// nothing to estimate; an empty batch must not drag the mean down
		return nil
	}
	bd := b.Data()
	var bce float64
	for i, l := range llrs {
		if bd[i] == 0 {
			bce += softplus(l)
		} else {
			bce += softplus(-l)
		}
	}
	bce /= float64(len(llrs))
	m.sum += 1 - bce/math.Ln2
	m.counter++
	return nil
}

// Result is the mean of the batch estimates seen so far, 0 before any update.
func (m *BitwiseMutualInformation) Result() float64 {
	if m.counter == 0 {
		return 0
	}
	return m.sum / float64(m.counter)
}

// Count is the number of batches accumulated since the last reset.
func (m *BitwiseMutualInformation) Count() int64 { return m.counter }

// Reset zeroes the numerator and the counter.
func (m *BitwiseMutualInformation) Reset() {
	m.sum = 0
	m.counter = 0
}

// softplus computes log(1+exp(x)) without overflow for large |x|.
func softplus(x float64) float64 {
	return math.Max(x, 0) + math.Log1p(math.Exp(-math.Abs(x)))
}
