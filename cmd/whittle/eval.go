package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkessy/whittle/pkg/engine"
	"github.com/mkessy/whittle/pkg/scene"
	"github.com/mkessy/whittle/pkg/stl"
	"github.com/spf13/cobra"
)

var evalOutDir string

var evalCmd = &cobra.Command{
	Use:   "eval [script]",
	Short: "Evaluate a whittle Lisp script and export its parts",
	Long: `Run a whittle Lisp script through the modeling engine and write
each emitted part to an STL file in the output directory.`,
	Args: cobra.ExactArgs(1),
	Run:  runEval,
}

func init() {
	evalCmd.Flags().StringVarP(&evalOutDir, "output", "o", ".", "output directory for part STL files")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) {
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
		os.Exit(1)
	}

	eng := engine.NewEngine()
	sc, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating script: %v\n", err)
		os.Exit(1)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s\n", e.Error())
		}
		os.Exit(1)
	}

	_, warnings := scene.Validate(sc)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Part, w.Message)
	}

	for _, part := range sc.Parts() {
		name := strings.ReplaceAll(part.Name, " ", "_") + ".stl"
		path := filepath.Join(evalOutDir, name)
		if err := stl.Write(path, part.Mesh); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d triangles)\n", path, part.Mesh.TriangleCount())
	}
}
