// Package sim drives the datapath components in lockstep: one global cycle
// advances source, parser, and sink together.
package sim

import (
	"github.com/hexleaf/wirecut/internal/log"
	"github.com/hexleaf/wirecut/internal/parser"
	"github.com/hexleaf/wirecut/internal/stream"
)

// ReadyPattern models the downstream consumer's per-cycle readiness.
type ReadyPattern func(cycle uint64) bool

// AlwaysReady is a consumer that never applies backpressure.
func AlwaysReady(uint64) bool { return true }

// DutyCycle returns a pattern asserting readiness for on cycles, then
// stalling for off cycles, repeating.
func DutyCycle(on, off int) ReadyPattern {
	if on < 1 {
		on = 1
	}
	if off <= 0 {
		return AlwaysReady
	}
	period := uint64(on + off)
	return func(cycle uint64) bool { return cycle%period < uint64(on) }
}

// Runner connects a beat source, the parser pipeline, and an egress
// collector, and steps them cycle by cycle.
type Runner struct {
	parser    *parser.Parser
	source    *stream.Packetizer
	sink      *stream.Collector
	ready     ReadyPattern
	maxCycles uint64
	log       log.Logger
}

// Result summarizes a completed run.
type Result struct {
	Cycles     uint64
	Packets    [][]byte
	Timestamps []uint64
}

// NewRunner builds a runner. maxCycles of zero runs until the source is
// drained and the pipeline has quiesced.
func NewRunner(p *parser.Parser, src *stream.Packetizer, sink *stream.Collector,
	ready ReadyPattern, maxCycles uint64) *Runner {
	if ready == nil {
		ready = AlwaysReady
	}
	return &Runner{
		parser:    p,
		source:    src,
		sink:      sink,
		ready:     ready,
		maxCycles: maxCycles,
		log:       log.GetLogger().WithField("component", "sim"),
	}
}

// Run executes the cycle loop.
func (r *Runner) Run() Result {
	var (
		cycle      uint64
		timestamps []uint64
		quiet      int
	)
	upstreamReady := true

	for {
		if r.maxCycles > 0 && cycle >= r.maxCycles {
			break
		}
		in := r.source.Next(upstreamReady)
		res := r.parser.Tick(in, r.ready(cycle))
		r.sink.Consume(res.Out)
		if res.Timing.Valid {
			timestamps = append(timestamps, res.Timing.Cycles)
		}
		upstreamReady = res.Ready
		cycle++

		if r.source.Done() {
			quiesced := r.parser.State() == parser.StateIdle &&
				r.parser.FIFOLen() == 0 && !res.Out.Valid
			if quiesced {
				quiet++
			} else {
				quiet = 0
			}
			// staged beats take StageDepth cycles to reach the machine
			if quiet > parser.StageDepth {
				break
			}
		}
	}

	r.log.WithFields(map[string]interface{}{
		"cycles":  cycle,
		"packets": len(timestamps),
		"beats":   r.sink.BeatCount(),
	}).Info("run complete")

	return Result{
		Cycles:     cycle,
		Packets:    r.sink.Packets(),
		Timestamps: timestamps,
	}
}
