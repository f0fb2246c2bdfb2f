// Package config handles configuration loading using viper.
package config

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/hashicorp/go-multierror"

	"github.com/hexleaf/wirecut/internal/filter"
)

// Config is the top-level configuration.
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Run      RunConfig      `mapstructure:"run"`
}

// PipelineConfig fixes the datapath geometry.
type PipelineConfig struct {
	FIFODepth   int `mapstructure:"fifo_depth"`
	CounterBits int `mapstructure:"counter_bits"`
}

// FilterConfig holds the power-on header match parameters. They are applied
// to the register store at startup and may be rewritten at runtime through
// the register interface.
type FilterConfig struct {
	LocalMAC   string `mapstructure:"local_mac"` // e.g. "de:ad:be:ef:ca:fe"
	EtherType  uint16 `mapstructure:"ethertype"`
	IPProtocol uint8  `mapstructure:"ip_protocol"`
	IPMatch    string `mapstructure:"ip_match"` // destination CIDR, e.g. "10.0.1.0/30"
	UDPDstPort uint16 `mapstructure:"udp_dst_port"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
	MaxMB  int    `mapstructure:"max_size_mb"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
	Path    string `mapstructure:"path"`
}

// RunConfig describes a simulation run.
type RunConfig struct {
	Input       string `mapstructure:"input"`        // pcap file to stream
	MaxCycles   uint64 `mapstructure:"max_cycles"`   // 0 = until drained
	ReadyCycles int    `mapstructure:"ready_cycles"` // downstream ready duty: on cycles
	StallCycles int    `mapstructure:"stall_cycles"` // downstream ready duty: off cycles
}

// Validate checks the configuration, accumulating every fault so a bad file
// is reported in one pass.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Pipeline.FIFODepth < 2 {
		result = multierror.Append(result,
			fmt.Errorf("pipeline.fifo_depth must be at least 2, got %d", c.Pipeline.FIFODepth))
	}
	if c.Pipeline.CounterBits < 1 || c.Pipeline.CounterBits > 64 {
		result = multierror.Append(result,
			fmt.Errorf("pipeline.counter_bits must be in 1..64, got %d", c.Pipeline.CounterBits))
	}
	if _, err := net.ParseMAC(c.Filter.LocalMAC); err != nil {
		result = multierror.Append(result,
			fmt.Errorf("filter.local_mac: %w", err))
	}
	if _, _, err := net.ParseCIDR(c.Filter.IPMatch); err != nil {
		result = multierror.Append(result,
			fmt.Errorf("filter.ip_match: %w", err))
	}
	if c.Run.ReadyCycles < 1 {
		result = multierror.Append(result,
			fmt.Errorf("run.ready_cycles must be positive, got %d", c.Run.ReadyCycles))
	}
	if c.Run.StallCycles < 0 {
		result = multierror.Append(result,
			fmt.Errorf("run.stall_cycles must not be negative, got %d", c.Run.StallCycles))
	}
	return result.ErrorOrNil()
}

// Match translates the filter section into the evaluator's plain-value form.
// Call Validate first; parse failures here are reported as errors anyway.
func (c *FilterConfig) Match() (filter.Config, error) {
	var m filter.Config

	hw, err := net.ParseMAC(c.LocalMAC)
	if err != nil {
		return m, fmt.Errorf("filter.local_mac: %w", err)
	}
	if len(hw) != 6 {
		return m, fmt.Errorf("filter.local_mac: want 48-bit address, got %s", hw)
	}
	copy(m.LocalMAC[:], hw)

	ip, ipnet, err := net.ParseCIDR(c.IPMatch)
	if err != nil {
		return m, fmt.Errorf("filter.ip_match: %w", err)
	}
	v4 := ip.To4()
	if v4 == nil {
		return m, fmt.Errorf("filter.ip_match: want IPv4 CIDR, got %s", c.IPMatch)
	}
	m.IPMask = binary.BigEndian.Uint32(ipnet.Mask)
	m.IPBase = binary.BigEndian.Uint32(v4) & m.IPMask

	m.EtherType = c.EtherType
	m.IPProtocol = c.IPProtocol
	m.UDPDstPort = c.UDPDstPort
	return m, nil
}
