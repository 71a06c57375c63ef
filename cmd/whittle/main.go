package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "whittle",
	Short: "A CLI for face-based mesh editing of STL files",
	Long: `whittle is a command-line companion to the whittle modeling app.
It operates on STL files (ASCII or binary) with the same geometry
kernel the app uses: planar face aggregation, profile extrusion,
normal offsetting and shelling.`,
	Version: "0.1.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
