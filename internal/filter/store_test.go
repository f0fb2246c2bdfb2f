package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreDefaults(t *testing.T) {
	s := NewStore()
	cfg := s.Snapshot()

	// Defaults are implementation-defined but must be IPv4/UDP-shaped.
	assert.Equal(t, uint16(0x0800), cfg.EtherType)
	assert.Equal(t, uint8(0x11), cfg.IPProtocol)
	assert.NotZero(t, cfg.IPMask)
}

func TestStoreWriteReadRoundtrip(t *testing.T) {
	s := NewStore()

	s.Write(RegMACHigh, 0x00001234)
	s.Write(RegMACLow, 0x56789ABC)
	s.Write(RegEtherType, 0x86DD)
	s.Write(RegIPProtocol, 0x06)
	s.Write(RegIPBase, 0xC0A80100)
	s.Write(RegIPMask, 0xFFFFFF00)
	s.Write(RegUDPDstPort, 5353)

	assert.Equal(t, uint32(0x00001234), s.Read(RegMACHigh))
	assert.Equal(t, uint32(0x56789ABC), s.Read(RegMACLow))
	assert.Equal(t, uint32(0x86DD), s.Read(RegEtherType))
	assert.Equal(t, uint32(0x06), s.Read(RegIPProtocol))
	assert.Equal(t, uint32(0xC0A80100), s.Read(RegIPBase))
	assert.Equal(t, uint32(0xFFFFFF00), s.Read(RegIPMask))
	assert.Equal(t, uint32(5353), s.Read(RegUDPDstPort))

	cfg := s.Snapshot()
	assert.Equal(t, [6]byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC}, cfg.LocalMAC)
	assert.Equal(t, uint16(0x86DD), cfg.EtherType)
	assert.Equal(t, uint16(5353), cfg.UDPDstPort)
}

func TestStoreNarrowFieldsTruncated(t *testing.T) {
	s := NewStore()

	s.Write(RegEtherType, 0xABCD0800)
	assert.Equal(t, uint32(0x0800), s.Read(RegEtherType))

	s.Write(RegIPProtocol, 0xFFFFFF06)
	assert.Equal(t, uint32(0x06), s.Read(RegIPProtocol))

	s.Write(RegMACHigh, 0xFFFF1234)
	assert.Equal(t, uint32(0x1234), s.Read(RegMACHigh))
}

func TestStoreUnmappedAddresses(t *testing.T) {
	s := NewStore()
	before := s.Snapshot()

	for addr := uint8(0x7); addr <= 0xF; addr++ {
		assert.Equal(t, uint32(UnmappedReadValue), s.Read(addr), "addr %#x", addr)
		s.Write(addr, 0x12345678) // ignored
	}
	assert.Equal(t, before, s.Snapshot())
}

func TestStoreApplySnapshotRoundtrip(t *testing.T) {
	s := NewStore()
	want := Config{
		LocalMAC:   [6]byte{0x02, 0x00, 0x00, 0xAA, 0xBB, 0xCC},
		EtherType:  0x0806,
		IPProtocol: 0x06,
		IPBase:     0xC0A80000,
		IPMask:     0xFFFF0000,
		UDPDstPort: 4242,
	}
	s.Apply(want)
	assert.Equal(t, want, s.Snapshot())
}

func TestRegName(t *testing.T) {
	name, ok := RegName(RegIPMask)
	assert.True(t, ok)
	assert.Equal(t, "IP_MASK", name)

	_, ok = RegName(0xB)
	assert.False(t, ok)
}
