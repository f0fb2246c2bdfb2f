package filter

import (
	"encoding/binary"
	"sync/atomic"
)

// Register addresses of the configuration store. The address space is 4 bits
// wide; reads of unmapped addresses return UnmappedReadValue and writes to
// them are ignored.
const (
	RegMACLow     = 0x0 // local MAC bits 31:0
	RegMACHigh    = 0x1 // local MAC bits 47:32, zero-extended
	RegEtherType  = 0x2 // zero-extended 16-bit
	RegIPProtocol = 0x3 // zero-extended 8-bit
	RegIPBase     = 0x4
	RegIPMask     = 0x5
	RegUDPDstPort = 0x6 // zero-extended 16-bit

	addrMask = 0xF
)

// UnmappedReadValue is returned for reads of unmapped register addresses.
const UnmappedReadValue = 0xFFFFFFFF

// Power-on defaults. IPv4/UDP-shaped but otherwise implementation-defined;
// callers must not treat them as load-bearing.
var defaultConfig = Config{
	LocalMAC:   [6]byte{0xDE, 0xAD, 0xBE, 0xEF, 0xCA, 0xFE},
	EtherType:  0x0800,
	IPProtocol: 0x11,
	IPBase:     0x0A000100, // 10.0.1.0
	IPMask:     0xFFFFFFFC, // /30
	UDPDstPort: 25565,
}

// Store holds the mutable match parameters behind the address-mapped
// read/write interface. Each field is individually atomic so an external
// configurator may write concurrently with pipeline reads, but there is no
// transactional guarantee across fields: an evaluation that straddles a
// multi-register reconfiguration may observe a mixed old/new state.
type Store struct {
	macLow     atomic.Uint32
	macHigh    atomic.Uint32
	etherType  atomic.Uint32
	ipProtocol atomic.Uint32
	ipBase     atomic.Uint32
	ipMask     atomic.Uint32
	udpDstPort atomic.Uint32
}

// NewStore returns a store initialized to the power-on defaults.
func NewStore() *Store {
	s := &Store{}
	s.Apply(defaultConfig)
	return s
}

// Write updates the register at addr. The value takes effect on the next
// evaluation cycle. Writes to unmapped addresses are ignored; values wider
// than the target field are truncated to the field width.
func (s *Store) Write(addr uint8, value uint32) {
	switch addr & addrMask {
	case RegMACLow:
		s.macLow.Store(value)
	case RegMACHigh:
		s.macHigh.Store(value & 0xFFFF)
	case RegEtherType:
		s.etherType.Store(value & 0xFFFF)
	case RegIPProtocol:
		s.ipProtocol.Store(value & 0xFF)
	case RegIPBase:
		s.ipBase.Store(value)
	case RegIPMask:
		s.ipMask.Store(value)
	case RegUDPDstPort:
		s.udpDstPort.Store(value & 0xFFFF)
	}
}

// Read returns the current value of the register at addr, zero-extended to
// 32 bits, or UnmappedReadValue for unmapped addresses.
func (s *Store) Read(addr uint8) uint32 {
	switch addr & addrMask {
	case RegMACLow:
		return s.macLow.Load()
	case RegMACHigh:
		return s.macHigh.Load()
	case RegEtherType:
		return s.etherType.Load()
	case RegIPProtocol:
		return s.ipProtocol.Load()
	case RegIPBase:
		return s.ipBase.Load()
	case RegIPMask:
		return s.ipMask.Load()
	case RegUDPDstPort:
		return s.udpDstPort.Load()
	default:
		return UnmappedReadValue
	}
}

// Apply writes every field of cfg through the register interface. It is a
// sequence of independent writes, not a transaction; evaluations running
// concurrently may observe a partially applied configuration.
func (s *Store) Apply(cfg Config) {
	mac := binary.BigEndian.Uint64(append([]byte{0, 0}, cfg.LocalMAC[:]...))
	s.Write(RegMACHigh, uint32(mac>>32))
	s.Write(RegMACLow, uint32(mac))
	s.Write(RegEtherType, uint32(cfg.EtherType))
	s.Write(RegIPProtocol, uint32(cfg.IPProtocol))
	s.Write(RegIPBase, cfg.IPBase)
	s.Write(RegIPMask, cfg.IPMask)
	s.Write(RegUDPDstPort, uint32(cfg.UDPDstPort))
}

// Snapshot returns a plain-value copy of the configuration. Each field is
// loaded exactly once; the copy is coherent per field but not across fields.
func (s *Store) Snapshot() Config {
	var cfg Config
	mac := uint64(s.macHigh.Load())<<32 | uint64(s.macLow.Load())
	binary.BigEndian.PutUint16(cfg.LocalMAC[0:2], uint16(mac>>32))
	binary.BigEndian.PutUint32(cfg.LocalMAC[2:6], uint32(mac))
	cfg.EtherType = uint16(s.etherType.Load())
	cfg.IPProtocol = uint8(s.ipProtocol.Load())
	cfg.IPBase = s.ipBase.Load()
	cfg.IPMask = s.ipMask.Load()
	cfg.UDPDstPort = uint16(s.udpDstPort.Load())
	return cfg
}

// RegName returns the mnemonic for a register address and whether the
// address is mapped. Used by the regs CLI command.
func RegName(addr uint8) (string, bool) {
	switch addr & addrMask {
	case RegMACLow:
		return "MAC_LOW", true
	case RegMACHigh:
		return "MAC_HIGH", true
	case RegEtherType:
		return "ETHERTYPE", true
	case RegIPProtocol:
		return "IP_PROTOCOL", true
	case RegIPBase:
		return "IP_BASE", true
	case RegIPMask:
		return "IP_MASK", true
	case RegUDPDstPort:
		return "UDP_DST_PORT", true
	default:
		return "", false
	}
}
