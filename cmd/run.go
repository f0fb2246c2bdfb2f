package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexleaf/wirecut/internal/config"
	"github.com/hexleaf/wirecut/internal/filter"
	"github.com/hexleaf/wirecut/internal/log"
	"github.com/hexleaf/wirecut/internal/metrics"
	"github.com/hexleaf/wirecut/internal/parser"
	"github.com/hexleaf/wirecut/internal/sim"
	"github.com/hexleaf/wirecut/internal/stream"
)

var (
	inputFile string
	maxCycles uint64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Stream a capture file through the classifier datapath",
	Long: `
Run the datapath model over a pcap capture file, cycle by cycle.

Examples:
  wirecut run -i capture.pcap                 # Run with default filters until drained
  wirecut run -i capture.pcap -c config.yml   # Run with configured filters
  wirecut run -i capture.pcap --cycles 10000  # Cap the simulation length
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			exitWithError("loading config", err)
		}
		if inputFile != "" {
			cfg.Run.Input = inputFile
		}
		if maxCycles != 0 {
			cfg.Run.MaxCycles = maxCycles
		}
		if cfg.Run.Input == "" {
			exitWithError("no input capture given (use --input or run.input)", nil)
		}

		if err := log.Init(log.Options{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			File:   cfg.Log.File,
			MaxMB:  cfg.Log.MaxMB,
		}); err != nil {
			exitWithError("initializing logging", err)
		}
		if cfg.Metrics.Enabled {
			metrics.Serve(cfg.Metrics.Listen, cfg.Metrics.Path)
		}

		match, err := cfg.Filter.Match()
		if err != nil {
			exitWithError("translating filter config", err)
		}
		store := filter.NewStore()
		store.Apply(match)

		p, err := parser.New(store, parser.Params{
			FIFODepth:   cfg.Pipeline.FIFODepth,
			CounterBits: cfg.Pipeline.CounterBits,
		})
		if err != nil {
			exitWithError("building pipeline", err)
		}

		frames, err := stream.ReadFrames(cfg.Run.Input)
		if err != nil {
			exitWithError("reading capture", err)
		}

		runner := sim.NewRunner(p,
			stream.NewPacketizer(frames),
			stream.NewCollector(),
			sim.DutyCycle(cfg.Run.ReadyCycles, cfg.Run.StallCycles),
			cfg.Run.MaxCycles)
		res := runner.Run()

		fmt.Printf("cycles:   %d\n", res.Cycles)
		fmt.Printf("frames:   %d in, %d matched\n", len(frames), len(res.Packets))
		for i, ts := range res.Timestamps {
			fmt.Printf("packet %d: %d payload bytes, %d cycles\n",
				i, len(res.Packets[i]), ts)
		}
	},
}

func init() {
	runCmd.Flags().StringVarP(&inputFile, "input", "i", "", "pcap capture file to stream")
	runCmd.Flags().Uint64Var(&maxCycles, "cycles", 0, "maximum cycles to simulate (0 = until drained)")
	rootCmd.AddCommand(runCmd)
}
