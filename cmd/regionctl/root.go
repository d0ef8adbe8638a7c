package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/joshuapare/regionkit/cmd/regionctl/logger"
	"github.com/joshuapare/regionkit/region"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "regionctl",
	Short: "Replay allocation traces and inspect region files",
	Long: `regionctl drives the fixed-region allocator from the command line.
It replays allocation traces against in-memory or file-backed regions,
creates memory-mapped region files and inspects their header chains.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Enabled: verbose && !quiet, Level: slog.LevelDebug})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// parseSize accepts byte counts in human form: 4096, 64KiB, 1MB.
func parseSize(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n == 0 || n > region.MaxRegionSize {
		return 0, fmt.Errorf("size %s out of range (1 B to %s)", s, humanize.IBytes(region.MaxRegionSize))
	}
	return int(n), nil
}

// printStats renders region statistics as an aligned block.
func printStats(st region.Stats) {
	printInfo("  Capacity:    %s\n", humanize.IBytes(uint64(st.Capacity)))
	printInfo("  Used:        %s (%s headers)\n", humanize.IBytes(uint64(st.Used)), humanize.IBytes(uint64(st.Overhead)))
	printInfo("  Available:   %s\n", humanize.IBytes(uint64(st.Available)))
	printInfo("  Headers:     %s (%s free)\n", humanize.Comma(int64(st.Headers)), humanize.Comma(int64(st.FreeHeaders)))
	printInfo("  Allocated:   %s\n", humanize.IBytes(uint64(st.AllocatedBytes)))
	printInfo("  Free slots:  %s (largest %s)\n", humanize.IBytes(uint64(st.FreeBytes)), humanize.IBytes(uint64(st.LargestFree)))
}

// regionConfig builds the engine configuration shared by every command.
func regionConfig() *region.Config {
	cfg := region.DefaultConfig()
	cfg.Logger = logger.L
	return cfg
}
