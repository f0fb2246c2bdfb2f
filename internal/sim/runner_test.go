package sim

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexleaf/wirecut/internal/core"
	"github.com/hexleaf/wirecut/internal/filter"
	"github.com/hexleaf/wirecut/internal/parser"
	"github.com/hexleaf/wirecut/internal/stream"
)

func buildFrame(t *testing.T, dstPort layers.UDPPort, payloadLen int) []byte {
	t.Helper()

	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01},
		DstMAC:       net.HardwareAddr{0xDE, 0xAD, 0xBE, 0xEF, 0xCA, 0xFE},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.IP{192, 168, 0, 9},
		DstIP:    net.IP{10, 0, 1, 2},
	}
	udp := &layers.UDP{SrcPort: 40000, DstPort: dstPort}
	require.NoError(t, udp.SetNetworkLayerForChecksum(ip))

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, eth, ip, udp,
		gopacket.Payload(make([]byte, payloadLen))))
	return buf.Bytes()
}

func TestRunnerFiltersAndDrains(t *testing.T) {
	p, err := parser.New(filter.NewStore(), parser.Params{})
	require.NoError(t, err)

	match := buildFrame(t, 25565, 54)
	miss := buildFrame(t, 9999, 54)
	frames := [][]byte{miss, match, miss}

	r := NewRunner(p, stream.NewPacketizer(frames), stream.NewCollector(),
		DutyCycle(1, 1), 0)
	res := r.Run()

	require.Len(t, res.Packets, 1)
	assert.Equal(t, match[core.HeaderBytes:], res.Packets[0])
	require.Len(t, res.Timestamps, 1)
	assert.Greater(t, res.Cycles, uint64(9), "three 3-beat frames take at least 9 cycles")
}

func TestRunnerRespectsMaxCycles(t *testing.T) {
	p, err := parser.New(filter.NewStore(), parser.Params{})
	require.NoError(t, err)

	frames := [][]byte{buildFrame(t, 25565, 1000)}
	r := NewRunner(p, stream.NewPacketizer(frames), stream.NewCollector(),
		AlwaysReady, 5)
	res := r.Run()

	assert.Equal(t, uint64(5), res.Cycles)
	assert.Empty(t, res.Packets, "packet cannot complete within the cycle cap")
}

func TestDutyCyclePattern(t *testing.T) {
	always := DutyCycle(3, 0)
	for c := uint64(0); c < 10; c++ {
		assert.True(t, always(c))
	}

	half := DutyCycle(1, 1)
	assert.True(t, half(0))
	assert.False(t, half(1))
	assert.True(t, half(2))

	bursty := DutyCycle(2, 3)
	assert.True(t, bursty(0))
	assert.True(t, bursty(1))
	assert.False(t, bursty(2))
	assert.False(t, bursty(4))
	assert.True(t, bursty(5))
}
