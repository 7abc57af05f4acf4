package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShape(t *testing.T) {
	tt := New(50, 20, 40)
	assert.Equal(t, 50*20*40, tt.Size())
	assert.Equal(t, []int{50, 20, 40}, tt.Shape())
	assert.Equal(t, 40, tt.BlockLen())
	assert.Equal(t, 50*20, tt.NumBlocks())
}

func TestFromDataValidation(t *testing.T) {
	_, err := FromData([]uint8{0, 1, 1}, 2, 2)
	require.Error(t, err)

	_, err = FromData([]uint8{0, 1, 2, 0}, 2, 2)
	require.Error(t, err)

	tt, err := FromData([]uint8{0, 1, 1, 0}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), tt.Get(1))
}

func TestSameShape(t *testing.T) {
	a := New(4, 8)
	assert.True(t, a.SameShape(New(4, 8)))
	assert.False(t, a.SameShape(New(8, 4)))
	assert.False(t, a.SameShape(New(32)))
}

func TestFlipAll(t *testing.T) {
	a := Random(1, 0.5, 10, 10)
	b := a.FlipAll()
	for i := 0; i < a.Size(); i++ {
		assert.NotEqual(t, a.Get(i), b.Get(i))
	}
	// double flip restores
	assert.Equal(t, a.Data(), b.FlipAll().Data())
}

func TestCloneIsDeep(t *testing.T) {
	a := New(2, 2)
	b := a.Clone()
	b.Set(0, 1)
	assert.Equal(t, uint8(0), a.Get(0))
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(7, 0.5, 100, 100)
	b := Random(7, 0.5, 100, 100)
	require.Equal(t, a.Data(), b.Data())

	c := Random(8, 0.5, 100, 100)
	assert.NotEqual(t, a.Data(), c.Data())
}

func TestRandomDensity(t *testing.T) {
	a := Random(3, 0.3, 1000, 100)
	ones := 0
	for _, v := range a.Data() {
		ones += int(v)
	}
	frac := float64(ones) / float64(a.Size())
	assert.InDelta(t, 0.3, frac, 0.01)
}

func TestNumBlocksEmpty(t *testing.T) {
	assert.Equal(t, 0, New().NumBlocks())
	assert.Equal(t, 0, New(5, 0).NumBlocks())
}
