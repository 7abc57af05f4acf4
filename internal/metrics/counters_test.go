package metrics

import (
	"testing"

	"github.com/lars-sto/link-level-simulation/internal/bits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorInjector emulates a Monte-Carlo sampler with a predefined number of
// errors per call: the reference is all-zero, the estimate has exactly n
// ones scattered by a deterministic interleaver.
type errorInjector struct {
	shape  []int
	errors []int64
	idx    int
	il     *bits.RandomInterleaver
}

func newErrorInjector(shape []int, errors []int64) *errorInjector {
	return &errorInjector{shape: shape, errors: errors, il: bits.NewRandomInterleaver(42)}
}

func (e *errorInjector) next() (*bits.Tensor, *bits.Tensor) {
	n := e.errors[e.idx]
	e.idx++

	est := bits.New(e.shape...)
	for i := int64(0); i < n; i++ {
		est.Set(int(i), 1)
	}
	return bits.New(e.shape...), e.il.Permute(est)
}

func TestCountErrors(t *testing.T) {
	errors := []int64{1000, 400, 200, 100, 1, 0, 10}
	inj := newErrorInjector([]int{500, 20, 40}, errors)

	for _, want := range errors {
		ref, est := inj.next()
		got, err := CountErrors(ref, est)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestCountErrorsSymmetric(t *testing.T) {
	ref := bits.Random(1, 0.5, 64, 32)
	est := bits.Random(2, 0.5, 64, 32)

	a, err := CountErrors(ref, est)
	require.NoError(t, err)
	b, err := CountErrors(est, ref)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCountErrorsShapeMismatch(t *testing.T) {
	_, err := CountErrors(bits.New(4, 4), bits.New(16))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = ComputeBER(bits.New(4, 4), bits.New(4, 5))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = CountBlockErrors(bits.New(4, 4), bits.New(16))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestComputeBER(t *testing.T) {
	shape := []int{500, 20, 40}
	errors := []int64{1000, 400, 200, 100, 1, 0, 10}
	total := float64(500 * 20 * 40)
	inj := newErrorInjector(shape, errors)

	for _, n := range errors {
		ref, est := inj.next()
		ber, err := ComputeBER(ref, est)
		require.NoError(t, err)
		assert.InDelta(t, float64(n)/total, ber, 1e-12)
	}
}

func TestComputeBERIdentities(t *testing.T) {
	b := bits.Random(5, 0.5, 100, 40)

	ber, err := ComputeBER(b, b)
	require.NoError(t, err)
	assert.Zero(t, ber)

	ber, err = ComputeBER(b, b.FlipAll())
	require.NoError(t, err)
	assert.Equal(t, 1.0, ber)
}

func TestComputeBEREmpty(t *testing.T) {
	ber, err := ComputeBER(bits.New(0, 8), bits.New(0, 8))
	require.NoError(t, err)
	assert.Zero(t, ber)
}

func TestCountBlockErrors(t *testing.T) {
	shape := []int{50, 400}
	errors := []int64{1000, 400, 200, 100, 1, 0, 10}
	inj := newErrorInjector(shape, errors)

	for range errors {
		ref, est := inj.next()

		// ground truth: row-wise comparison
		var want int64
		for row := 0; row < 50; row++ {
			for i := 0; i < 400; i++ {
				if ref.Get(row*400+i) != est.Get(row*400+i) {
					want++
					break
				}
			}
		}

		got, err := CountBlockErrors(ref, est)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestComputeBLER(t *testing.T) {
	shape := []int{50, 400}
	errors := []int64{1000, 400, 200, 100, 1, 0, 10}
	inj := newErrorInjector(shape, errors)

	for range errors {
		ref, est := inj.next()

		blocks, err := CountBlockErrors(ref, est)
		require.NoError(t, err)

		bler, err := ComputeBLER(ref, est)
		require.NoError(t, err)
		assert.InDelta(t, float64(blocks)/50.0, bler, 1e-12)
	}
}

func TestComputeBLERNoBlocks(t *testing.T) {
	bler, err := ComputeBLER(bits.New(0, 8), bits.New(0, 8))
	require.NoError(t, err)
	assert.Zero(t, bler)
}
