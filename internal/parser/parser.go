// Package parser implements the header-parsing pipeline: beat staging,
// two-beat header-window assembly, the parsing state machine, per-packet
// cycle timestamping, and the buffered/bypass egress mux.
package parser

import (
	"fmt"

	"github.com/hexleaf/wirecut/internal/core"
	"github.com/hexleaf/wirecut/internal/fifo"
	"github.com/hexleaf/wirecut/internal/filter"
	"github.com/hexleaf/wirecut/internal/log"
	"github.com/hexleaf/wirecut/internal/metrics"
)

const (
	// StageDepth is the length of the ingress history ring: the current
	// input register plus one staged copy. The state machine observes the
	// one-cycle-delayed view.
	StageDepth = 2

	// TimestampBias is the fixed pipeline-latency constant added to the raw
	// admission-to-terminal cycle delta. Admission and terminal beats are
	// observed on the same staged view, so the raw delta for an n-beat
	// back-to-back packet is n-1; the bias makes the reported count n.
	TimestampBias = 1

	// headerRemainderBytes is the part of the 42-byte header that spills
	// into the second beat and must be masked out of the first payload beat.
	headerRemainderBytes = core.HeaderBytes - core.BeatBytes

	// readyHeadroom is the almost-full threshold of the output buffer: one
	// beat in the staging register plus the beat admitted on the next cycle
	// may still need slots after upstream readiness is deasserted.
	readyHeadroom = StageDepth
)

const headerRemainderMask = uint32(1)<<headerRemainderBytes - 1

// Timing is the per-packet timing output, pulsed for exactly one cycle when
// a packet's terminal beat is observed.
type Timing struct {
	Cycles uint64
	Valid  bool
}

// Result is the egress view of one cycle.
type Result struct {
	Out    core.Beat // Valid=false when no beat is emitted this cycle
	Timing Timing
	Ready  bool // upstream readiness for the next cycle's beat
}

// Params configures pipeline construction.
type Params struct {
	FIFODepth   int // output buffer capacity in beats
	CounterBits int // timestamp counter width
}

// DefaultParams returns the geometry used when a field is zero.
func DefaultParams() Params {
	return Params{FIFODepth: 16, CounterBits: 32}
}

// Parser is the pipeline orchestrator. It is single-threaded and fully
// synchronous: one Tick call advances every component by one cycle. The
// filter configuration store is the only externally mutated collaborator;
// the parser reads a snapshot of it once per evaluation cycle.
type Parser struct {
	store *filter.Store
	clock *Timestamper
	queue *fifo.FIFO

	hist       [StageDepth]core.Beat // ingress history ring, newest at index 0
	first      core.Beat             // latched first beat of the in-flight packet
	state      State
	startCycle uint64

	log log.Logger
}

// New builds a pipeline around the given configuration store.
func New(store *filter.Store, params Params) (*Parser, error) {
	def := DefaultParams()
	if params.FIFODepth == 0 {
		params.FIFODepth = def.FIFODepth
	}
	if params.CounterBits == 0 {
		params.CounterBits = def.CounterBits
	}
	if params.FIFODepth < readyHeadroom {
		return nil, fmt.Errorf("%w: fifo depth %d below staging headroom %d",
			core.ErrConfigInvalid, params.FIFODepth, readyHeadroom)
	}
	if params.CounterBits < 1 || params.CounterBits > 64 {
		return nil, fmt.Errorf("%w: counter width %d out of range",
			core.ErrConfigInvalid, params.CounterBits)
	}
	return &Parser{
		store: store,
		clock: NewTimestamper(params.CounterBits),
		queue: fifo.New(params.FIFODepth),
		state: StateIdle,
		log:   log.GetLogger().WithField("component", "parser"),
	}, nil
}

// State returns the current parsing state.
func (p *Parser) State() State { return p.state }

// Cycle returns the current cycle count.
func (p *Parser) Cycle() uint64 { return p.clock.Now() }

// FIFOLen returns the current output buffer occupancy.
func (p *Parser) FIFOLen() int { return p.queue.Len() }

// Tick advances the pipeline by one cycle. The producer must only present a
// valid beat when the previous cycle's Ready was true; the downstream
// consumer's readiness is sampled fresh every cycle.
func (p *Parser) Tick(in core.Beat, downstreamReady bool) Result {
	// Stage advance: bubbles propagate through the ring like any beat.
	p.hist[1] = p.hist[0]
	p.hist[0] = in
	if in.Valid {
		metrics.BeatsIngressTotal.Inc()
	}

	cur := p.hist[1] // staged view, one cycle behind ingress
	var cand core.Beat
	var timing Timing

	switch p.state {
	case StateIdle:
		switch {
		case !cur.Valid:
			// no beat this cycle
		case !cur.KeepFull():
			// Truncated first beat: never admitted.
			p.drop("truncated_first")
		case cur.EndOfPacket:
			// A packet cannot begin and end in fewer bytes than one beat.
			p.drop("truncated_header")
		default:
			p.state = StateParseHeader
			p.first = cur
			p.startCycle = p.clock.Now()
			metrics.PacketsAdmittedTotal.Inc()
		}

	case StateParseHeader:
		if !cur.Valid {
			break // waiting for the second beat
		}
		window := core.AssembleWindow(p.first, cur)
		headerValid := window.Valid && filter.Evaluate(window, p.store.Snapshot())
		switch {
		case headerValid:
			cand = maskHeaderRemainder(cur)
			if cur.EndOfPacket {
				timing = p.complete()
			} else {
				p.state = StateStreamPayload
			}
		case cur.EndOfPacket && cur.KeepBytes() < headerRemainderBytes:
			// Terminal beat arrived before a complete header.
			p.drop("truncated_header")
		default:
			// Header assembled but failed a filter layer. The whole packet
			// is abandoned; any residual beats are re-screened from IDLE.
			p.drop("filter_mismatch")
		}

	case StateStreamPayload:
		if cur.Valid {
			cand = cur
			if cur.EndOfPacket {
				timing = p.complete()
			}
		}
	}

	out := p.egress(cand, downstreamReady)
	metrics.FIFOOccupancy.Set(float64(p.queue.Len()))

	ready := p.queue.Cap()-p.queue.Len() >= readyHeadroom
	p.clock.Advance()
	return Result{Out: out, Timing: timing, Ready: ready}
}

// egress selects between the bypass and buffered output paths. Enqueue and
// dequeue may occur in the same cycle, so a draining buffer sustains full
// throughput.
func (p *Parser) egress(cand core.Beat, downstreamReady bool) core.Beat {
	var out core.Beat
	switch {
	case downstreamReady && !p.queue.Empty():
		out = p.queue.Pop()
		metrics.BeatsEgressTotal.WithLabelValues("buffered").Inc()
		if cand.Valid {
			p.queue.Push(cand)
		}
	case downstreamReady && cand.Valid:
		// Buffer empty and consumer ready: forward with no buffering cycle.
		out = cand
		metrics.BeatsEgressTotal.WithLabelValues("bypass").Inc()
	case cand.Valid:
		p.queue.Push(cand)
	}
	return out
}

// complete closes the in-flight packet: returns the single-cycle timing
// pulse and resets the machine to IDLE.
func (p *Parser) complete() Timing {
	cycles := p.clock.Wrap(p.clock.Elapsed(p.startCycle) + TimestampBias)
	p.state = StateIdle
	metrics.PacketsCompletedTotal.Inc()
	metrics.PacketCycles.Observe(float64(cycles))
	if p.log.IsDebugEnabled() {
		p.log.WithFields(map[string]interface{}{
			"cycles": cycles,
			"cycle":  p.clock.Now(),
		}).Debug("packet completed")
	}
	return Timing{Cycles: cycles, Valid: true}
}

func (p *Parser) drop(reason string) {
	p.state = StateIdle
	metrics.PacketsDroppedTotal.WithLabelValues(reason).Inc()
	if p.log.IsDebugEnabled() {
		p.log.WithFields(map[string]interface{}{
			"reason": reason,
			"cycle":  p.clock.Now(),
		}).Debug("packet dropped")
	}
}

// maskHeaderRemainder clears the header bytes out of the first
// payload-bearing beat: data zeroed and keep bits dropped, no realignment.
// The resulting keep mask is intentionally non-contiguous at egress.
func maskHeaderRemainder(b core.Beat) core.Beat {
	for i := 0; i < headerRemainderBytes; i++ {
		b.Data[i] = 0
	}
	b.Keep &^= headerRemainderMask
	return b
}
