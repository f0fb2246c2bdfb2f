// Package fifo provides the bounded beat queue that decouples the payload
// streamer from the downstream consumer.
package fifo

import (
	"fmt"

	"github.com/hexleaf/wirecut/internal/core"
)

// FIFO is a fixed-capacity ring of buffered beats. Slots are allocated once
// at construction; read and write positions wrap monotonically and an
// occupancy counter tracks fullness. Push and Pop in the same cycle are
// permitted, so occupancy alone never adds a forwarding cycle.
type FIFO struct {
	slots []core.Beat
	rd    uint64
	wr    uint64
	size  int
}

// New returns a FIFO with the given capacity. Capacity must be positive.
func New(capacity int) *FIFO {
	if capacity <= 0 {
		panic(fmt.Sprintf("fifo: invalid capacity %d", capacity))
	}
	return &FIFO{slots: make([]core.Beat, capacity)}
}

func (f *FIFO) Cap() int    { return len(f.slots) }
func (f *FIFO) Len() int    { return f.size }
func (f *FIFO) Empty() bool { return f.size == 0 }
func (f *FIFO) Full() bool  { return f.size == len(f.slots) }

// Push enqueues a beat. Pushing while full is a contract violation by the
// upstream admission logic — readiness signaling must prevent it — so the
// FIFO panics rather than defining recovery behavior.
func (f *FIFO) Push(b core.Beat) {
	if f.Full() {
		panic("fifo: push on full buffer, upstream readiness contract violated")
	}
	f.slots[f.wr%uint64(len(f.slots))] = b
	f.wr++
	f.size++
}

// Pop dequeues the oldest beat. Popping while empty panics; the output mux
// only dequeues when the buffer is non-empty.
func (f *FIFO) Pop() core.Beat {
	if f.Empty() {
		panic("fifo: pop on empty buffer")
	}
	b := f.slots[f.rd%uint64(len(f.slots))]
	f.rd++
	f.size--
	return b
}
