package stream

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexleaf/wirecut/internal/core"
)

func patternFrame(n int) []byte {
	frame := make([]byte, n)
	for i := range frame {
		frame[i] = byte(i * 7)
	}
	return frame
}

func TestBeatsFullFrames(t *testing.T) {
	beats := Beats(patternFrame(3 * core.BeatBytes))
	require.Len(t, beats, 3)

	for i, b := range beats {
		assert.True(t, b.Valid)
		assert.True(t, b.KeepFull(), "beat %d", i)
		assert.Equal(t, i == 2, b.EndOfPacket, "beat %d", i)
	}
}

func TestBeatsTailKeepMask(t *testing.T) {
	beats := Beats(patternFrame(70)) // 2 full beats + 6-byte tail
	require.Len(t, beats, 3)

	tail := beats[2]
	assert.True(t, tail.EndOfPacket)
	assert.Equal(t, uint32(1)<<6-1, tail.Keep)
	assert.Equal(t, 6, tail.KeepBytes())
	for i := 6; i < core.BeatBytes; i++ {
		assert.Zero(t, tail.Data[i], "bytes beyond keep are zero-filled")
	}
}

func TestBeatsEmptyFrame(t *testing.T) {
	assert.Nil(t, Beats(nil))
	assert.Nil(t, Beats([]byte{}))
}

func TestPacketizerCollectorRoundtrip(t *testing.T) {
	frames := [][]byte{patternFrame(96), patternFrame(70), patternFrame(33)}
	src := NewPacketizer(frames)
	col := NewCollector()

	for !src.Done() {
		col.Consume(src.Next(true))
	}

	require.Len(t, col.Packets(), 3)
	for i, frame := range frames {
		assert.Equal(t, frame, col.Packets()[i])
	}
}

func TestPacketizerHoldsWhenNotReady(t *testing.T) {
	src := NewPacketizer([][]byte{patternFrame(64)})

	b := src.Next(false)
	assert.False(t, b.Valid, "bubble presented while pipeline not ready")

	first := src.Next(true)
	assert.True(t, first.Valid)
	assert.Equal(t, byte(0), first.Data[0])

	bubble := src.Next(false)
	assert.False(t, bubble.Valid)

	second := src.Next(true)
	assert.True(t, second.Valid)
	assert.True(t, second.EndOfPacket)
	assert.True(t, src.Done())
}

func TestCollectorSkipsMaskedBytes(t *testing.T) {
	col := NewCollector()
	b := core.Beat{Valid: true, Keep: core.KeepFullMask &^ 0x3FF, EndOfPacket: true}
	for i := range b.Data {
		b.Data[i] = byte(i)
	}

	col.Consume(b)
	require.Len(t, col.Packets(), 1)
	got := col.Packets()[0]
	require.Len(t, got, core.BeatBytes-10)
	assert.Equal(t, byte(10), got[0], "masked header bytes skipped")
}

func TestReadFramesRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.pcap")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := pcapgo.NewWriter(f)
	require.NoError(t, w.WriteFileHeader(65536, layers.LinkTypeEthernet))
	want := [][]byte{patternFrame(96), patternFrame(128)}
	for _, frame := range want {
		ci := gopacket.CaptureInfo{
			Timestamp:     time.Now(),
			CaptureLength: len(frame),
			Length:        len(frame),
		}
		require.NoError(t, w.WritePacket(ci, frame))
	}
	require.NoError(t, f.Close())

	got, err := ReadFrames(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadFramesEmptyCapture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pcap")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := pcapgo.NewWriter(f)
	require.NoError(t, w.WriteFileHeader(65536, layers.LinkTypeEthernet))
	require.NoError(t, f.Close())

	_, err = ReadFrames(path)
	assert.ErrorIs(t, err, core.ErrNoFrames)
}

func TestReadFramesMissingFile(t *testing.T) {
	_, err := ReadFrames(filepath.Join(t.TempDir(), "nope.pcap"))
	assert.Error(t, err)
}
