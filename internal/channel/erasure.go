package channel

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lars-sto/link-level-simulation/internal/bits"
	"github.com/pion/rtp"
)

// Erasure carries each block as one RTP packet through a loss model. A lost
// packet is rendered as an all-zero block at the receiver, so the bit errors
// of an erased block are exactly the ones the reference had set. The
// operating point is the packet loss probability handed to the model
// factory. Batches have shape [batchSize, BlockLen].
type Erasure struct {
	BlockLen int
	Seed     int64

	SSRC uint32
	PT   uint8

	// Model builds the loss model for one batch at the given operating
	// point. Defaults to BernoulliLoss with P = point.
	Model func(point float64, seed int64) LossModel

	seq   uint16
	calls uint64
}

func NewErasure(blockLen int, seed int64) (*Erasure, error) {
	if blockLen <= 0 || blockLen%8 != 0 {
		return nil, fmt.Errorf("channel: block length %d is not a positive multiple of 8", blockLen)
	}
	return &Erasure{
		BlockLen: blockLen,
		Seed:     seed,
		SSRC:     1111,
		PT:       96,
	}, nil
}

// Samples implements sim.Sampler.
func (c *Erasure) Samples(batchSize int, point float64) (*bits.Tensor, *bits.Tensor, error) {
	c.calls++
	seed := bits.DeriveSeed(c.Seed, math.Float64bits(point), c.calls)
	r := rand.New(rand.NewSource(seed))

	var model LossModel
	if c.Model != nil {
		model = c.Model(point, seed)
	} else {
		model = NewBernoulliLoss("", seed, point)
	}

	ref := bits.New(batchSize, c.BlockLen)
	rd := ref.Data()
	for i := range rd {
		if r.Float64() < 0.5 {
			rd[i] = 1
		}
	}

	est := bits.New(batchSize, c.BlockLen)
	ed := est.Data()

	for b := 0; b < batchSize; b++ {
		off := b * c.BlockLen
		pkt := rtp.Packet{
			Header: rtp.Header{
				Version:        2,
				PayloadType:    c.PT,
				SequenceNumber: c.seq,
				Timestamp:      uint32(c.seq) * 3000,
				SSRC:           c.SSRC,
			},
			Payload: packBits(rd[off : off+c.BlockLen]),
		}
		c.seq++

		raw, err := pkt.Marshal()
		if err != nil {
			return nil, nil, fmt.Errorf("channel: marshal packet: %w", err)
		}

		if model.Drop(PacketMeta{Seq: pkt.SequenceNumber, SizeBytes: len(raw)}) {
			continue // erased: block stays all-zero
		}

		var rx rtp.Packet
		if err := rx.Unmarshal(raw); err != nil {
			return nil, nil, fmt.Errorf("channel: unmarshal packet: %w", err)
		}
		unpackBits(rx.Payload, ed[off:off+c.BlockLen])
	}
	return ref, est, nil
}

// packBits packs bits MSB-first into bytes. len(b) must be a multiple of 8.
func packBits(b []uint8) []byte {
	out := make([]byte, len(b)/8)
	for i, v := range b {
		if v != 0 {
			out[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return out
}

// unpackBits reverses packBits into dst, stopping at len(dst).
func unpackBits(raw []byte, dst []uint8) {
	for i := range dst {
		if i/8 >= len(raw) {
			return
		}
		dst[i] = (raw[i/8] >> (7 - uint(i%8))) & 1
	}
}
