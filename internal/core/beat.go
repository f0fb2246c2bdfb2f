// Package core defines the datapath types with zero external dependencies.
package core

import "math/bits"

const (
	// BeatBytes is the width of one stream beat in bytes (256-bit datapath).
	BeatBytes = 32

	// WindowBytes is the header window width: two time-adjacent beats.
	WindowBytes = 2 * BeatBytes

	// HeaderBytes is the fixed Ethernet+IPv4+UDP header length covered by the
	// window. Payload starts at this offset within a packet.
	HeaderBytes = 42
)

// KeepFullMask has one keep bit set per byte of a full-width beat.
const KeepFullMask = ^uint32(0)

// Beat is one fixed-width chunk of stream data transferred in a single cycle.
// Keep carries one validity bit per data byte and must be a contiguous run
// from bit 0; non-contiguous masks violate the ingress precondition and are
// not validated.
type Beat struct {
	Data        [BeatBytes]byte
	Keep        uint32
	Valid       bool
	EndOfPacket bool
}

// KeepFull reports whether every byte of the beat is valid. A packet's first
// beat must satisfy this to be admitted.
func (b Beat) KeepFull() bool {
	return b.Keep == KeepFullMask
}

// KeepBytes returns the number of valid bytes in the beat, assuming the
// contiguity precondition holds.
func (b Beat) KeepBytes() int {
	return bits.OnesCount32(b.Keep)
}
