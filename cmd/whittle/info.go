package main

import (
	"fmt"
	"os"

	"github.com/mkessy/whittle/pkg/stl"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an STL file",
	Long:  "Show triangle count, vertex count and bounding box of an STL file.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	m, err := stl.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	min, max := m.Bounds()

	fmt.Println("STL File Information")
	fmt.Println("====================")
	if m.Name != "" {
		fmt.Printf("Name: %s\n", m.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", m.TriangleCount())
	fmt.Printf("  Vertices:  %d\n", m.VertexCount())
	fmt.Println()

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: (%.6f, %.6f, %.6f)\n", min[0], min[1], min[2])
	fmt.Printf("  Max: (%.6f, %.6f, %.6f)\n", max[0], max[1], max[2])
	fmt.Printf("  Size: (%.6f, %.6f, %.6f)\n",
		max[0]-min[0], max[1]-min[1], max[2]-min[2])
}
