package channel

import (
	"math"
	"math/rand"

	"github.com/lars-sto/link-level-simulation/internal/bits"
)

// CrossoverProb is the hard-decision bit error probability of BPSK over AWGN
// at the given Eb/N0 in dB: Q(sqrt(2*Eb/N0)).
func CrossoverProb(ebNoDB float64) float64 {
	ebNo := math.Pow(10, ebNoDB/10)
	return qfunc(math.Sqrt(2 * ebNo))
}

// qfunc is the Gaussian tail probability Q(x).
func qfunc(x float64) float64 {
	return 0.5 * math.Erfc(x/math.Sqrt2)
}

// BSC samples a binary symmetric channel. The operating point is Eb/N0 in
// dB; the crossover probability follows CrossoverProb. Batches have shape
// [batchSize, BlockLen].
type BSC struct {
	BlockLen int
	Seed     int64

	calls uint64
}

func NewBSC(blockLen int, seed int64) *BSC {
	return &BSC{BlockLen: blockLen, Seed: seed}
}

// Samples implements sim.Sampler.
func (c *BSC) Samples(batchSize int, ebNoDB float64) (*bits.Tensor, *bits.Tensor, error) {
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

	p := CrossoverProb(ebNoDB)
	est := ref.Clone()
	ed := est.Data()
	for i := range ed {
		if r.Float64() < p {
			ed[i] ^= 1
		}
	}
	return ref, est, nil
}
