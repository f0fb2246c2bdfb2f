// Package metrics implements Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BeatsIngressTotal counts valid beats presented at the ingress interface
	BeatsIngressTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wirecut_beats_ingress_total",
			Help: "Total number of valid beats admitted at ingress",
		},
	)

	// BeatsEgressTotal counts beats emitted at the egress interface by path
	BeatsEgressTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wirecut_beats_egress_total",
			Help: "Total number of beats emitted at egress",
		},
		[]string{"path"}, // "bypass" | "buffered"
	)

	// PacketsAdmittedTotal counts packets that left IDLE
	PacketsAdmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wirecut_packets_admitted_total",
			Help: "Total number of packets admitted into header parsing",
		},
	)

	// PacketsCompletedTotal counts packets that produced a timestamp pulse
	PacketsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wirecut_packets_completed_total",
			Help: "Total number of packets fully streamed to egress",
		},
	)

	// PacketsDroppedTotal counts dropped packets by reason
	PacketsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wirecut_packets_dropped_total",
			Help: "Total number of packets dropped by the parser",
		},
		[]string{"reason"}, // "truncated_first" | "truncated_header" | "filter_mismatch"
	)

	// FIFOOccupancy tracks the current output buffer fill level
	FIFOOccupancy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wirecut_fifo_occupancy",
			Help: "Current number of beats held in the output buffer",
		},
	)

	// PacketCycles measures per-packet elapsed cycle counts
	PacketCycles = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wirecut_packet_cycles",
			Help:    "Elapsed processing cycles per completed packet",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		},
	)
)
