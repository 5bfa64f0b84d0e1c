package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/printer"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <arena>",
		Short: "Report arena occupancy and lifetime counters",
		Long: `The info command opens an arena file, verifies the chain, and prints the
occupancy snapshot: capacity, live and free bytes, block counts, header
overhead, and the largest satisfiable request.

Example:
  heapctl info cache.arena
  heapctl info cache.arena --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
	return cmd
}

func runInfo(path string) error {
	printVerbose("Opening arena: %s\n", path)

	h, err := heap.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open arena: %w", err)
	}
	defer h.Close()

	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	// Counters are per-process state, not persisted; an opened arena has
	// nothing meaningful to report there.
	opts.ShowCounters = false

	if !jsonOut {
		printInfo("Arena: %s\n", path)
	}
	return printer.New(h, os.Stdout, opts).PrintStats()
}
