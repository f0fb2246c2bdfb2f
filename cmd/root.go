// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wirecut",
	Short: "wirecut - cycle-accurate model of a low-latency packet classifier datapath",
	Long: `wirecut is a cycle-accurate software model of a low-latency Ethernet/IPv4/UDP
packet classifier datapath. It ingests fixed-width stream beats, assembles a
two-beat header window, applies configurable MAC/IP/UDP match filters,
timestamps admitted packets in cycle units, and forwards payload through a
flow-controlled FIFO with a zero-latency bypass path.

The model reproduces the abstract pipeline behavior of the hardware design:
  - One global cycle advances all components in lockstep
  - Strict arrival-order processing, single packet in flight
  - Aggressive drop policy for truncated or non-matching headers
  - Backpressure sampled and re-evaluated every cycle`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (YAML; defaults apply when omitted)")
}

// exitWithError prints error message and exits with code 1
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
