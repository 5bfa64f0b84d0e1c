package main

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	var capacity int

	cmd := &cobra.Command{
		Use:   "create <arena>",
		Short: "Create a new arena file",
		Long: `The create command initializes a new file-backed arena at the given path
with a single free block spanning the whole capacity. The file must not
already exist.

Example:
  heapctl create cache.arena --capacity 1048576`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], capacity)
		},
	}
	cmd.Flags().IntVarP(&capacity, "capacity", "c", 1<<20, "Arena capacity in bytes")
	return cmd
}

func runCreate(path string, capacity int) error {
	printVerbose("Creating arena: %s (%d bytes)\n", path, capacity)

	h, err := heap.Create(path, capacity)
	if err != nil {
		return fmt.Errorf("failed to create arena: %w", err)
	}
	defer h.Close()

	if err := h.Sync(); err != nil {
		return fmt.Errorf("failed to sync arena: %w", err)
	}

	printInfo("Created %s with capacity %d bytes\n", path, capacity)
	return nil
}
