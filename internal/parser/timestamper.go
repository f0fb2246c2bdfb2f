package parser

import "fmt"

// Timestamper is the free-running cycle counter. It wraps at its configured
// bit width with no further overflow contract; consumers must treat elapsed
// computations as modular arithmetic over that width.
type Timestamper struct {
	count uint64
	mask  uint64
}

// NewTimestamper returns a counter of the given bit width (1..64).
func NewTimestamper(bits int) *Timestamper {
	if bits < 1 || bits > 64 {
		panic(fmt.Sprintf("timestamper: invalid width %d", bits))
	}
	mask := ^uint64(0)
	if bits < 64 {
		mask = uint64(1)<<uint(bits) - 1
	}
	return &Timestamper{mask: mask}
}

// Now returns the current cycle count.
func (t *Timestamper) Now() uint64 { return t.count }

// Advance steps the counter by one cycle.
func (t *Timestamper) Advance() { t.count = (t.count + 1) & t.mask }

// Elapsed returns the modular cycle delta since a previously sampled count.
func (t *Timestamper) Elapsed(since uint64) uint64 { return (t.count - since) & t.mask }

// Wrap reduces a value to the counter width.
func (t *Timestamper) Wrap(v uint64) uint64 { return v & t.mask }
