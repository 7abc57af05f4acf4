// Package llr generates synthetic log-likelihood ratio batches with a
// prescribed bitwise mutual information, for exercising soft-decision
// metrics without a full encoder/decoder chain.
package llr

import (
	"fmt"
	"math"
	"math/rand"
)

// J-function approximation constants (ten Brink's curve fit).
const (
	jH1 = 0.3073
	jH2 = 0.8935
	jH3 = 1.1064
)

// JFunction maps the standard deviation of a consistent Gaussian LLR
// (mean sigma^2/2) to its bitwise mutual information in [0, 1].
func JFunction(sigma float64) float64 {
	if sigma <= 0 {
		return 0
	}
	return math.Pow(1-math.Pow(2, -jH1*math.Pow(sigma, 2*jH2)), jH3)
}

// JFunctionInverse maps a mutual information in (0, 1) back to the LLR
// standard deviation. It is the exact algebraic inverse of JFunction.
func JFunctionInverse(mi float64) float64 {
	if mi <= 0 {
		return 0
	}
	if mi >= 1 {
		return math.Inf(1)
	}
	return math.Pow(-math.Log2(1-math.Pow(mi, 1/jH3))/jH1, 1/(2*jH2))
}

// GaussianSource draws LLRs for the all-zero word from the consistent
// Gaussian LLR model: llr ~ N(-sigma^2/2, sigma^2), with the LLR taken as
// the logit of P(bit=1).
type GaussianSource struct {
	rng *rand.Rand
}

func NewGaussianSource(seed int64) *GaussianSource {
	return &GaussianSource{rng: rand.New(rand.NewSource(seed))}
}

// FromSigma draws n LLRs with noise standard deviation sigma.
func (s *GaussianSource) FromSigma(sigma float64, n int) []float64 {
	mu := sigma * sigma / 2
	out := make([]float64, n)
	for i := range out {
		out[i] = -mu + sigma*s.rng.NormFloat64()
	}
	return out
}

// FromMI draws n LLRs whose bitwise mutual information is mi.
func (s *GaussianSource) FromMI(mi float64, n int) ([]float64, error) {
	if mi < 0 || mi > 1 {
		return nil, fmt.Errorf("llr: mutual information %v outside [0, 1]", mi)
	}
	return s.FromSigma(JFunctionInverse(mi), n), nil
}
