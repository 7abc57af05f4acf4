package channel

import (
	"fmt"
	"math"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/lars-sto/link-level-simulation/internal/bits"
	"github.com/pion/logging"
	"github.com/pion/rtp"
	"github.com/pion/transport/v4/vnet"
)

// VNet carries blocks as RTP packets over UDP through a virtual network
// router, with loss injected as a chunk filter. It behaves like Erasure but
// exercises a real transport path:
//
//	sender net (1.1.1.1) -- router (1.0.0.0/8, loss filter) -- receiver net (1.1.1.2)
//
// The operating point is the packet loss probability. The sampler is an
// opaque blocking call from the driver's perspective; packets not delivered
// before the read deadline count as erased.
type VNet struct {
	BlockLen int
	Seed     int64

	SSRC uint32
	PT   uint8

	// ReadDeadline bounds the receive loop per batch.
	ReadDeadline time.Duration

	router *vnet.Router
	tx     net.PacketConn
	rx     net.PacketConn
	rxAddr net.Addr

	mu       sync.Mutex
	lossProb float64
	chunks   uint64

	seq   uint16
	calls uint64
}

func NewVNet(blockLen int, seed int64) (*VNet, error) {
	if blockLen <= 0 || blockLen%8 != 0 {
		return nil, fmt.Errorf("channel: block length %d is not a positive multiple of 8", blockLen)
	}

	c := &VNet{
		BlockLen:     blockLen,
		Seed:         seed,
		SSRC:         1111,
		PT:           96,
		ReadDeadline: 200 * time.Millisecond,
	}
	if err := c.setup(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *VNet) setup() error {
	router, err := vnet.NewRouter(&vnet.RouterConfig{
		CIDR:          "1.0.0.0/8",
		LoggerFactory: logging.NewDefaultLoggerFactory(),
	})
	if err != nil {
		return err
	}
	c.router = router

	router.AddChunkFilter(func(vnet.Chunk) bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.lossProb <= 0 {
			return true
		}
		if c.lossProb >= 1 {
			return false
		}
		c.chunks++
		return u01(c.Seed, c.chunks) >= c.lossProb
	})

	sender, err := vnet.NewNet(&vnet.NetConfig{StaticIPs: []string{"1.1.1.1"}})
	if err != nil {
		return err
	}
	receiver, err := vnet.NewNet(&vnet.NetConfig{StaticIPs: []string{"1.1.1.2"}})
	if err != nil {
		return err
	}
	if err := router.AddNet(sender); err != nil {
		return err
	}
	if err := router.AddNet(receiver); err != nil {
		return err
	}
	if err := router.Start(); err != nil {
		return err
	}

	tx, err := sender.ListenPacket("udp4", "1.1.1.1:5000")
	if err != nil {
		return err
	}
	c.tx = tx

	rx, err := receiver.ListenPacket("udp4", "1.1.1.2:5001")
	if err != nil {
		return err
	}
	c.rx = rx
	c.rxAddr = rx.LocalAddr()

	return nil
}

func (c *VNet) Close() error {
	if c.tx != nil {
		_ = c.tx.Close()
	}
	if c.rx != nil {
		_ = c.rx.Close()
	}
	if c.router != nil {
		return c.router.Stop()
	}
	return nil
}

// Samples implements sim.Sampler.
func (c *VNet) Samples(batchSize int, point float64) (*bits.Tensor, *bits.Tensor, error) {
	c.calls++
	seed := bits.DeriveSeed(c.Seed, math.Float64bits(point), c.calls)
	r := rand.New(rand.NewSource(seed))

	c.mu.Lock()
	c.lossProb = point
	c.mu.Unlock()

	ref := bits.New(batchSize, c.BlockLen)
	rd := ref.Data()
	for i := range rd {
		if r.Float64() < 0.5 {
			rd[i] = 1
		}
	}

	startSeq := c.seq
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
		if _, err := c.tx.WriteTo(raw, c.rxAddr); err != nil {
			return nil, nil, fmt.Errorf("channel: send packet: %w", err)
		}
	}

	est := bits.New(batchSize, c.BlockLen)
	ed := est.Data()

	buf := make([]byte, 2048)
	received := 0
	deadline := time.Now().Add(c.ReadDeadline)
	for received < batchSize {
		if err := c.rx.SetReadDeadline(deadline); err != nil {
			return nil, nil, err
		}
		n, _, err := c.rx.ReadFrom(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				break // undelivered packets count as erased
			}
			return nil, nil, fmt.Errorf("channel: receive packet: %w", err)
		}

		var rx rtp.Packet
		if err := rx.Unmarshal(buf[:n]); err != nil {
			return nil, nil, fmt.Errorf("channel: unmarshal packet: %w", err)
		}

		block := int(rx.SequenceNumber - startSeq)
		if block < 0 || block >= batchSize {
			continue // stray packet from a previous batch
		}
		off := block * c.BlockLen
		unpackBits(rx.Payload, ed[off:off+c.BlockLen])
		received++
	}

	return ref, est, nil
}
