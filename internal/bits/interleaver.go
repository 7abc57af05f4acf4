package bits

import "math/rand"

// RandomInterleaver applies a deterministic pseudo-random permutation to the
// flattened elements of a tensor. The permutation depends only on the seed
// and the element count, so the same interleaver scatters equal-sized inputs
// identically.
type RandomInterleaver struct {
	seed int64
}

func NewRandomInterleaver(seed int64) *RandomInterleaver {
	return &RandomInterleaver{seed: seed}
}

// Permute returns a new tensor with the elements shuffled. The input is not
// modified.
func (il *RandomInterleaver) Permute(t *Tensor) *Tensor {
	out := t.Clone()
	r := rand.New(rand.NewSource(DeriveSeed(il.seed, uint64(t.Size()))))
	// Fisher-Yates over the flat data
	for i := len(out.data) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out.data[i], out.data[j] = out.data[j], out.data[i]
	}
	return out
}
