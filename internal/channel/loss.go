// Package channel provides sampling functions that feed the Monte-Carlo
// driver: analytic binary channels, a BPSK/AWGN chain, and packet-erasure
// channels carrying blocks as RTP packets.
package channel

import (
	"math"
	"math/rand"

	"github.com/lars-sto/link-level-simulation/internal/bits"
)

type PacketMeta struct {
	Seq       uint16
	SizeBytes int
}

type LossModel interface {
	Name() string
	Drop(meta PacketMeta) bool
}

// BernoulliLoss drops each packet independently with probability P,
// deterministically per (seed, sequence number).
type BernoulliLoss struct {
	Seed int64
	P    float64
	name string
}

func NewBernoulliLoss(name string, seed int64, p float64) *BernoulliLoss {
	if name == "" {
		name = "bernoulli"
	}
	return &BernoulliLoss{Seed: seed, P: p, name: name}
}

func (m *BernoulliLoss) Name() string { return m.name }

func (m *BernoulliLoss) Drop(meta PacketMeta) bool {
	if m.P <= 0 {
		return false
	}
	if m.P >= 1 {
		return true
	}
	return u01(m.Seed, uint64(meta.Seq)) < m.P
}

// GilbertElliottLoss is a two-state burst loss model: a good state with loss
// probability PG and a bad state with loss probability PB, transitioning
// with probabilities PGB and PBG per packet.
type GilbertElliottLoss struct {
	NameStr string

	PGB float64
	PBG float64
	PG  float64
	PB  float64

	bad bool
	r   *rand.Rand
}

func NewGilbertElliottLoss(name string, seed int64, pGB, pBG, pG, pB float64) *GilbertElliottLoss {
	if name == "" {
		name = "gilbert"
	}
	return &GilbertElliottLoss{
		NameStr: name,
		PGB:     pGB, PBG: pBG, PG: pG, PB: pB,
		r: rand.New(rand.NewSource(seed)),
	}
}

func (m *GilbertElliottLoss) Name() string { return m.NameStr }

func (m *GilbertElliottLoss) Drop(_ PacketMeta) bool {
	if !m.bad {
		if m.r.Float64() < m.PGB {
			m.bad = true
		}
	} else {
		if m.r.Float64() < m.PBG {
			m.bad = false
		}
	}

	p := m.PG
	if m.bad {
		p = m.PB
	}
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return m.r.Float64() < p
}

// u01 returns a deterministic float in [0,1) from (seed, n)
func u01(seed int64, n uint64) float64 {
	y := uint64(bits.DeriveSeed(seed, n))

	// take top 53 bits -> float64 in [0,1)
	v := float64(y>>11) / (1 << 53)
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}
