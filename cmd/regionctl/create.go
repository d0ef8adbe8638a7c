package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/regionkit/cmd/regionctl/logger"
	"github.com/joshuapare/regionkit/region/mapped"
)

var createSize string

func init() {
	cmd := newCreateCmd()
	cmd.Flags().StringVar(&createSize, "size", "", "Region size, e.g. 64KiB or 4MiB (required)")
	_ = cmd.MarkFlagRequired("size")
	rootCmd.AddCommand(cmd)
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <file>",
		Short: "Create an empty region file",
		Long: `The create command creates (or truncates) a memory-mapped region file
holding an empty region of the requested size.

Example:
  regionctl create arena.rgn --size 1MiB`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args)
		},
	}
	return cmd
}

func runCreate(args []string) error {
	path := args[0]

	size, err := parseSize(createSize)
	if err != nil {
		return err
	}

	printVerbose("Creating %s with a %s region\n", path, humanize.IBytes(uint64(size)))
	mr, err := mapped.Create(path, size, regionConfig())
	if err != nil {
		return err
	}
	if err := mr.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	logger.Info("region file created", "path", path, "size", size)

	if jsonOut {
		return printJSON(map[string]any{"path": path, "size": size, "file_size": size + mapped.SuperblockSize})
	}
	printInfo("Created %s: %s region (%s on disk)\n", path,
		humanize.IBytes(uint64(size)), humanize.IBytes(uint64(size+mapped.SuperblockSize)))
	return nil
}
