package channel

import (
	"math"
	"math/rand"

	"github.com/lars-sto/link-level-simulation/internal/bits"
	"github.com/lars-sto/link-level-simulation/internal/noise"
)

// AWGN samples uncoded BPSK over a complex additive white Gaussian noise
// channel with hard decisions on the real part. The operating point is
// Eb/N0 in dB. Batches have shape [batchSize, BlockLen].
//
// Bit 0 maps to +1, bit 1 to -1; the noise has total variance N0 = 1/(Eb/N0)
// so the resulting BER matches CrossoverProb for the same operating point.
type AWGN struct {
	BlockLen int
	Seed     int64

	calls uint64
}

func NewAWGN(blockLen int, seed int64) *AWGN {
	return &AWGN{BlockLen: blockLen, Seed: seed}
}

// Samples implements sim.Sampler.
func (c *AWGN) Samples(batchSize int, ebNoDB float64) (*bits.Tensor, *bits.Tensor, error) {
	c.calls++
	seed := bits.DeriveSeed(c.Seed, math.Float64bits(ebNoDB), c.calls)
	r := rand.New(rand.NewSource(seed))

	ref := bits.New(batchSize, c.BlockLen)
	rd := ref.Data()
	for i := range rd {
		if r.Float64() < 0.5 {
			rd[i] = 1
		}
	}

	n0 := math.Pow(10, -ebNoDB/10)
	nz := noise.ComplexNormal(r, ref.Size(), n0)

	est := bits.New(batchSize, c.BlockLen)
	ed := est.Data()
	for i := range ed {
		sym := 1.0
		if rd[i] == 1 {
			sym = -1.0
		}
		if sym+real(nz[i]) < 0 {
			ed[i] = 1
		}
	}
	return ref, est, nil
}
