package main

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <arena>",
		Short: "Verify the chain invariants of an arena file",
		Long: `The check command opens an arena file and verifies the block chain: address
order, contiguous coverage of the full capacity, and no adjacent free blocks.
A non-zero exit means the arena is corrupt.

Example:
  heapctl check cache.arena`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
	return cmd
}

func runCheck(path string) error {
	printVerbose("Opening arena: %s\n", path)

	// Open already rescans and checks; repeating the check here keeps the
	// command meaningful if Open ever relaxes.
	h, err := heap.Open(path)
	if err != nil {
		return fmt.Errorf("arena check failed: %w", err)
	}
	defer h.Close()

	if err := h.Check(); err != nil {
		return fmt.Errorf("arena check failed: %w", err)
	}

	blocks, err := h.Blocks()
	if err != nil {
		return err
	}
	printInfo("OK: %d blocks, chain covers %d bytes\n", len(blocks), h.Capacity())
	return nil
}
