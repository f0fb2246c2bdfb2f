// Package main is the entry point for the wirecut datapath model.
package main

import (
	"fmt"
	"os"

	"github.com/hexleaf/wirecut/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
