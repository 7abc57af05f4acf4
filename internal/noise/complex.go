// Package noise provides complex Gaussian sample generation for channel
// models.
package noise

import (
	"math"
	"math/rand"
)

// ComplexNormal draws n circularly symmetric complex Gaussian samples with
// the given total variance, split evenly between the real and imaginary
// parts. A non-positive variance yields zeros.
func ComplexNormal(rng *rand.Rand, n int, variance float64) []complex128 {
	out := make([]complex128, n)
	if variance <= 0 {
		return out
	}
	std := math.Sqrt(variance / 2)
	for i := range out {
		out[i] = complex(std*rng.NormFloat64(), std*rng.NormFloat64())
	}
	return out
}
