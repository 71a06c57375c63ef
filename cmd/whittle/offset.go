package main

import (
	"fmt"
	"os"

	"github.com/mkessy/whittle/pkg/kernel"
	"github.com/mkessy/whittle/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	offsetDistance float64
	offsetOut      string

	shellThickness float64
	shellOut       string
)

var offsetCmd = &cobra.Command{
	Use:   "offset [file]",
	Short: "Offset every vertex along its vertex normal",
	Long: `Move every vertex of the mesh along its area-weighted vertex normal
by the given distance. Positive distances inflate the mesh, negative
distances deflate it.`,
	Args: cobra.ExactArgs(1),
	Run:  runOffset,
}

var shellCmd = &cobra.Command{
	Use:   "shell [file]",
	Short: "Hollow a mesh into a shell of constant thickness",
	Long: `Produce a hollow shell from a closed mesh: an outer surface offset
outward by half the thickness and an inner surface offset inward by
half the thickness with reversed orientation.`,
	Args: cobra.ExactArgs(1),
	Run:  runShell,
}

func init() {
	offsetCmd.Flags().Float64VarP(&offsetDistance, "distance", "d", 1.0, "offset distance")
	offsetCmd.Flags().StringVarP(&offsetOut, "output", "o", "offset.stl", "output STL file")
	rootCmd.AddCommand(offsetCmd)

	shellCmd.Flags().Float64VarP(&shellThickness, "thickness", "t", 1.0, "shell thickness")
	shellCmd.Flags().StringVarP(&shellOut, "output", "o", "shell.stl", "output STL file")
	rootCmd.AddCommand(shellCmd)
}

func runOffset(cmd *cobra.Command, args []string) {
	m, err := stl.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	out := kernel.OffsetWhole(m, offsetDistance)
	if err := stl.Write(offsetOut, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing STL file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d triangles)\n", offsetOut, out.TriangleCount())
}

func runShell(cmd *cobra.Command, args []string) {
	m, err := stl.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	out := kernel.Shell(m, shellThickness)
	if err := stl.Write(shellOut, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing STL file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d triangles)\n", shellOut, out.TriangleCount())
}
