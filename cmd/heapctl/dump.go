package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/printer"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	var showPayloads bool
	var maxPayloadBytes int

	cmd := &cobra.Command{
		Use:   "dump <arena>",
		Short: "List the block chain in address order",
		Long: `The dump command opens an arena file and prints every chain entry: offset,
state, and payload size. With --payloads, live blocks also get a hex preview
of their contents.

Example:
  heapctl dump cache.arena
  heapctl dump cache.arena --payloads --max-bytes 64
  heapctl dump cache.arena --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], showPayloads, maxPayloadBytes)
		},
	}
	cmd.Flags().BoolVarP(&showPayloads, "payloads", "p", false, "Include hex previews of live payloads")
	cmd.Flags().
		IntVar(&maxPayloadBytes, "max-bytes", printer.DefaultMaxPayloadBytes, "Preview length limit, 0 for no limit")
	return cmd
}

func runDump(path string, showPayloads bool, maxPayloadBytes int) error {
	printVerbose("Opening arena: %s\n", path)

	h, err := heap.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open arena: %w", err)
	}
	defer h.Close()

	opts := printer.DefaultOptions()
	opts.ShowPayloads = showPayloads
	opts.MaxPayloadBytes = maxPayloadBytes
	if jsonOut {
		opts.Format = printer.FormatJSON
	}

	return printer.New(h, os.Stdout, opts).PrintChain()
}
