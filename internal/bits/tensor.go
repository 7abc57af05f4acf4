package bits

import (
	"fmt"
	"math/rand"
)

// Tensor is an ordered multi-dimensional array of 0/1 values stored flat in
// row-major order. The last axis is the block axis for block-error counting.
type Tensor struct {
	shape []int
	data  []uint8
}

// New allocates an all-zero tensor with the given shape.
func New(shape ...int) *Tensor {
	size := 1
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("bits: negative dimension %d", d))
		}
		size *= d
	}
	return &Tensor{
		shape: append([]int(nil), shape...),
		data:  make([]uint8, size),
	}
}

// FromData wraps an existing flat bit slice. The data length must match the
// product of the shape, and every value must be 0 or 1.
func FromData(data []uint8, shape ...int) (*Tensor, error) {
	size := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("bits: negative dimension %d", d)
		}
		size *= d
	}
	if len(data) != size {
		return nil, fmt.Errorf("bits: data length %d does not match shape %v (size %d)", len(data), shape, size)
	}
	for i, v := range data {
		if v > 1 {
			return nil, fmt.Errorf("bits: non-binary value %d at index %d", v, i)
		}
	}
	return &Tensor{
		shape: append([]int(nil), shape...),
		data:  append([]uint8(nil), data...),
	}, nil
}

// Random returns a tensor of i.i.d. Bernoulli(p) bits, deterministic per seed.
func Random(seed int64, p float64, shape ...int) *Tensor {
	t := New(shape...)
	r := rand.New(rand.NewSource(seed))
	for i := range t.data {
		if r.Float64() < p {
			t.data[i] = 1
		}
	}
	return t
}

// Size is the total element count.
func (t *Tensor) Size() int { return len(t.data) }

// Shape returns a copy of the dimensions.
func (t *Tensor) Shape() []int { return append([]int(nil), t.shape...) }

// BlockLen is the length of the last axis. A tensor with no axes has a
// block length of 0.
func (t *Tensor) BlockLen() int {
	if len(t.shape) == 0 {
		return 0
	}
	return t.shape[len(t.shape)-1]
}

// NumBlocks is the number of blocks when the last axis is treated as one
// unit, i.e. the product of all leading axes.
func (t *Tensor) NumBlocks() int {
	if len(t.shape) == 0 || t.BlockLen() == 0 {
		return 0
	}
	return len(t.data) / t.BlockLen()
}

// SameShape reports whether both tensors have identical dimensions.
func (t *Tensor) SameShape(o *Tensor) bool {
	if len(t.shape) != len(o.shape) {
		return false
	}
	for i := range t.shape {
		if t.shape[i] != o.shape[i] {
			return false
		}
	}
	return true
}

// Get returns the bit at flat index i.
func (t *Tensor) Get(i int) uint8 { return t.data[i] }

// Set stores v (0 or 1) at flat index i.
func (t *Tensor) Set(i int, v uint8) {
	if v > 1 {
		panic(fmt.Sprintf("bits: non-binary value %d", v))
	}
	t.data[i] = v
}

// Data exposes the flat backing slice. Callers must not resize it.
func (t *Tensor) Data() []uint8 { return t.data }

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{
		shape: append([]int(nil), t.shape...),
		data:  append([]uint8(nil), t.data...),
	}
}

// FlipAll returns the elementwise complement.
func (t *Tensor) FlipAll() *Tensor {
	out := t.Clone()
	for i := range out.data {
		out.data[i] ^= 1
	}
	return out
}
