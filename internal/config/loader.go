package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads the configuration file at path, applying defaults for any
// missing keys. An empty path yields the pure defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.fifo_depth", 16)
	v.SetDefault("pipeline.counter_bits", 32)

	// Power-on register defaults; IPv4/UDP-shaped, not load-bearing.
	v.SetDefault("filter.local_mac", "de:ad:be:ef:ca:fe")
	v.SetDefault("filter.ethertype", 0x0800)
	v.SetDefault("filter.ip_protocol", 0x11)
	v.SetDefault("filter.ip_match", "10.0.1.0/30")
	v.SetDefault("filter.udp_dst_port", 25565)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen", ":9090")
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("run.max_cycles", 0)
	v.SetDefault("run.ready_cycles", 1)
	v.SetDefault("run.stall_cycles", 0)
}
