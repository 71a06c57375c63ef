package main

import (
	"fmt"
	"os"

	"github.com/mkessy/whittle/pkg/kernel"
	"github.com/mkessy/whittle/pkg/stl"
	"github.com/spf13/cobra"
)

var faceCmd = &cobra.Command{
	Use:   "face [file] [triangle]",
	Short: "Inspect the planar face containing a triangle",
	Long: `Aggregate the logical planar face that contains the given seed
triangle: all coplanar triangles with matching normals.
Prints the member triangles, the face plane and the 2D profile.`,
	Args: cobra.ExactArgs(2),
	Run:  runFace,
}

func init() {
	rootCmd.AddCommand(faceCmd)
}

func runFace(cmd *cobra.Command, args []string) {
	filename := args[0]
	var seed int
	if _, err := fmt.Sscanf(args[1], "%d", &seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: triangle index must be an integer: %v\n", err)
		os.Exit(1)
	}

	m, err := stl.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	face, err := kernel.AggregateFace(m, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error aggregating face: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Face containing triangle %d:\n", seed)
	fmt.Printf("  Triangles: %d %v\n", len(face.Triangles), face.Triangles)
	fmt.Printf("  Vertices:  %d\n", len(face.Vertices))
	fmt.Printf("  Normal:    (%.6f, %.6f, %.6f)\n",
		face.Normal[0], face.Normal[1], face.Normal[2])
	fmt.Printf("  Centroid:  (%.6f, %.6f, %.6f)\n",
		face.Centroid[0], face.Centroid[1], face.Centroid[2])
	fmt.Printf("  Area:      %.6f\n", face.Area)

	profile, _, err := kernel.ProjectFace(face)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error projecting face: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("  Profile (counter-clockwise):")
	for i, p := range profile {
		fmt.Printf("    %d: (%.6f, %.6f)\n", i, p[0], p[1])
	}
}
