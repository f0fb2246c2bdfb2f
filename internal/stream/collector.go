package stream

import "github.com/hexleaf/wirecut/internal/core"

// Collector reassembles egress beats into payload byte slices. Bytes whose
// keep bit is clear are skipped, which strips both the masked header
// remainder on a packet's first payload beat and the unused tail of its
// final beat.
type Collector struct {
	packets [][]byte
	current []byte
	beats   uint64
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Consume accepts the egress beat of one cycle. Invalid beats are bubbles
// and ignored.
func (c *Collector) Consume(b core.Beat) {
	if !b.Valid {
		return
	}
	c.beats++
	for i := 0; i < core.BeatBytes; i++ {
		if b.Keep&(1<<uint(i)) != 0 {
			c.current = append(c.current, b.Data[i])
		}
	}
	if b.EndOfPacket {
		c.packets = append(c.packets, c.current)
		c.current = nil
	}
}

// Packets returns the payloads completed so far, in arrival order.
func (c *Collector) Packets() [][]byte {
	return c.packets
}

// BeatCount returns the number of valid beats consumed.
func (c *Collector) BeatCount() uint64 {
	return c.beats
}
