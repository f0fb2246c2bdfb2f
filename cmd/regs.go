package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexleaf/wirecut/internal/config"
	"github.com/hexleaf/wirecut/internal/filter"
)

var regsCmd = &cobra.Command{
	Use:   "regs",
	Short: "Dump the filter configuration register map",
	Long: `
Print the address-mapped filter configuration registers as they would read
back after startup: power-on defaults overlaid with the config file's filter
section. Unmapped addresses read back the sentinel value.
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			exitWithError("loading config", err)
		}
		match, err := cfg.Filter.Match()
		if err != nil {
			exitWithError("translating filter config", err)
		}
		store := filter.NewStore()
		store.Apply(match)

		for addr := uint8(0); addr < 0x10; addr++ {
			name, mapped := filter.RegName(addr)
			if !mapped {
				name = "-"
			}
			fmt.Printf("0x%X  %-12s 0x%08X\n", addr, name, store.Read(addr))
		}
	},
}

func init() {
	rootCmd.AddCommand(regsCmd)
}
