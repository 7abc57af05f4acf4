package llr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestJFunctionRoundTrip(t *testing.T) {
	for mi := 0.05; mi < 1; mi += 0.05 {
		sigma := JFunctionInverse(mi)
		assert.InDelta(t, mi, JFunction(sigma), 1e-9, "mi=%v", mi)
	}
}

func TestJFunctionBounds(t *testing.T) {
	assert.Zero(t, JFunction(0))
	assert.Zero(t, JFunction(-1))
	assert.Less(t, JFunction(0.1), JFunction(1.0))
	assert.Less(t, JFunction(1.0), JFunction(4.0))
	assert.InDelta(t, 1.0, JFunction(100), 1e-6)

	assert.Zero(t, JFunctionInverse(0))
	assert.True(t, math.IsInf(JFunctionInverse(1), 1))
}

func TestGaussianSourceMoments(t *testing.T) {
	const n = 500_000
	src := NewGaussianSource(7)

	for _, sigma := range []float64{0.5, 1, 2, 4} {
		samples := src.FromSigma(sigma, n)
		require.Len(t, samples, n)

		mean := stat.Mean(samples, nil)
		variance := stat.Variance(samples, nil)

		assert.InDelta(t, -sigma*sigma/2, mean, 0.01*sigma*sigma+0.01, "sigma=%v", sigma)
		assert.InEpsilon(t, sigma*sigma, variance, 0.02, "sigma=%v", sigma)
	}
}

func TestFromMIValidation(t *testing.T) {
	src := NewGaussianSource(1)
	_, err := src.FromMI(-0.1, 10)
	require.Error(t, err)
	_, err = src.FromMI(1.5, 10)
	require.Error(t, err)

	out, err := src.FromMI(0.5, 10)
	require.NoError(t, err)
	assert.Len(t, out, 10)
}

func TestGaussianSourceDeterministic(t *testing.T) {
	a := NewGaussianSource(3).FromSigma(1, 16)
	b := NewGaussianSource(3).FromSigma(1, 16)
	assert.Equal(t, a, b)
}
