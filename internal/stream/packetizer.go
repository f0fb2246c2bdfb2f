// Package stream adapts whole Ethernet frames to and from the beat-level
// ingress and egress interfaces of the parser pipeline.
package stream

import (
	"github.com/hexleaf/wirecut/internal/core"
)

// Beats slices a frame into stream beats: full keep masks on all but the
// tail beat, end-of-packet flagged on the last. An empty frame yields nil.
func Beats(frame []byte) []core.Beat {
	if len(frame) == 0 {
		return nil
	}
	n := (len(frame) + core.BeatBytes - 1) / core.BeatBytes
	beats := make([]core.Beat, n)
	for i := range beats {
		b := &beats[i]
		b.Valid = true
		b.Keep = core.KeepFullMask
		chunk := frame[i*core.BeatBytes:]
		if len(chunk) >= core.BeatBytes {
			copy(b.Data[:], chunk[:core.BeatBytes])
		} else {
			copy(b.Data[:], chunk)
			b.Keep = uint32(1)<<uint(len(chunk)) - 1
		}
	}
	beats[n-1].EndOfPacket = true
	return beats
}

// Packetizer presents a list of frames to the pipeline one beat per cycle,
// honoring the ingestion readiness signal: when the pipeline is not ready
// the pending beat is held and a bubble is presented instead.
type Packetizer struct {
	frames [][]byte
	beats  []core.Beat
	frame  int
	beat   int
}

// NewPacketizer returns a packetizer over the given frames.
func NewPacketizer(frames [][]byte) *Packetizer {
	return &Packetizer{frames: frames}
}

// Next returns the beat to present this cycle. ready is the pipeline's
// readiness signal from the previous cycle.
func (p *Packetizer) Next(ready bool) core.Beat {
	if !ready || p.Done() {
		return core.Beat{}
	}
	if p.beats == nil {
		p.beats = Beats(p.frames[p.frame])
		p.beat = 0
		if p.beats == nil {
			// skip empty frames
			p.advanceFrame()
			return core.Beat{}
		}
	}
	b := p.beats[p.beat]
	p.beat++
	if p.beat == len(p.beats) {
		p.advanceFrame()
	}
	return b
}

// Done reports whether every frame has been fully presented.
func (p *Packetizer) Done() bool {
	return p.frame >= len(p.frames)
}

func (p *Packetizer) advanceFrame() {
	p.frame++
	p.beats = nil
}
