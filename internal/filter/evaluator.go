// Package filter implements the combinational header-match engine and its
// address-mapped configuration store.
package filter

import (
	"bytes"
	"encoding/binary"

	"github.com/hexleaf/wirecut/internal/core"
)

const (
	// Fixed byte offsets within the header window
	offDstMAC     = 0
	offEtherType  = 12
	offVersionIHL = 14
	offProtocol   = 23
	offDstIP      = 30
	offUDPDstPort = 36

	// Version 4, IHL 5: a fixed 20-byte IPv4 header. Packets carrying IP
	// options are rejected by design.
	ipv4VersionIHL = 0x45
)

// Config is a plain-value snapshot of the match parameters. A snapshot is
// taken once per evaluation cycle; see Store for the mutation contract.
type Config struct {
	LocalMAC   [6]byte
	EtherType  uint16
	IPProtocol uint8
	IPBase     uint32
	IPMask     uint32
	UDPDstPort uint16
}

// Evaluate reports whether the header window passes all three filter layers.
// It is pure and stateless: the result is re-derivable bit-for-bit from the
// window snapshot and the configuration value, which makes it trivially
// replayable. The three layer checks are independent predicates over fixed
// byte offsets; their ordering carries no meaning.
func Evaluate(w core.HeaderWindow, cfg Config) bool {
	if !w.Valid {
		return false
	}
	return ethernetValid(&w, &cfg) && ipv4Valid(&w, &cfg) && udpValid(&w, &cfg)
}

// ethernetValid checks the L2 layer: destination MAC equals the configured
// local MAC over the full 6 bytes, and the EtherType field matches.
func ethernetValid(w *core.HeaderWindow, cfg *Config) bool {
	if !bytes.Equal(w.Bytes[offDstMAC:offDstMAC+6], cfg.LocalMAC[:]) {
		return false
	}
	return binary.BigEndian.Uint16(w.Bytes[offEtherType:offEtherType+2]) == cfg.EtherType
}

// ipv4Valid checks the L3 layer: version/IHL nibbles, protocol byte, and the
// masked destination address.
func ipv4Valid(w *core.HeaderWindow, cfg *Config) bool {
	if w.Bytes[offVersionIHL] != ipv4VersionIHL {
		return false
	}
	if w.Bytes[offProtocol] != cfg.IPProtocol {
		return false
	}
	dst := binary.BigEndian.Uint32(w.Bytes[offDstIP : offDstIP+4])
	return dst&cfg.IPMask == cfg.IPBase
}

// udpValid checks the L4 layer: UDP destination port.
func udpValid(w *core.HeaderWindow, cfg *Config) bool {
	return binary.BigEndian.Uint16(w.Bytes[offUDPDstPort:offUDPDstPort+2]) == cfg.UDPDstPort
}
