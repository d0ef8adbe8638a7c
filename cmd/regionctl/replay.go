package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/regionkit/cmd/regionctl/logger"
	"github.com/joshuapare/regionkit/pkg/trace"
	"github.com/joshuapare/regionkit/region"
	"github.com/joshuapare/regionkit/region/mapped"
)

var (
	replaySize   string
	replayInto   string
	replayZero   bool
	replayStrict bool
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().StringVar(&replaySize, "size", "64KiB", "Size of the in-memory region")
	cmd.Flags().StringVar(&replayInto, "into", "", "Replay into an existing region file instead of memory")
	cmd.Flags().BoolVar(&replayZero, "zero", false, "Zero payloads before handing them out")
	cmd.Flags().BoolVar(&replayStrict, "strict", false, "Prove every handle by walking the header chain")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an allocation trace",
		Long: `The replay command runs an allocation trace against a fresh region and
reports the handle and result of every operation, followed by region statistics.

Example:
  regionctl replay workload.trace
  regionctl replay workload.trace --size 1MiB --json
  regionctl replay workload.trace --into arena.rgn`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

type replayOp struct {
	Line   int    `json:"line"`
	Op     string `json:"op"`
	Handle uint32 `json:"handle"`
	Error  string `json:"error,omitempty"`
}

type replayReport struct {
	Trace    string       `json:"trace"`
	Ops      []replayOp   `json:"ops"`
	Failures int          `json:"failures"`
	Stats    region.Stats `json:"stats"`
}

func runReplay(args []string) (err error) {
	tracePath := args[0]

	f, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	ops, err := trace.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", tracePath, err)
	}
	printVerbose("Parsed %d operations from %s\n", len(ops), tracePath)

	cfg := regionConfig()
	cfg.ZeroOnAlloc = replayZero
	cfg.StrictHandles = replayStrict

	var r *region.Region
	if replayInto != "" {
		var mr *mapped.Region
		if mr, err = mapped.Open(replayInto, cfg); err != nil {
			return err
		}
		defer func() { err = errors.Join(err, mr.Close()) }()
		r = mr.Region
		printVerbose("Replaying into %s (%s)\n", replayInto, humanize.IBytes(uint64(r.Len())))
	} else {
		size, err := parseSize(replaySize)
		if err != nil {
			return err
		}
		r, err = region.New(make([]byte, size), cfg)
		if err != nil {
			return err
		}
	}

	res, err := trace.Replay(r, ops)
	if err != nil {
		return fmt.Errorf("%s: %w", tracePath, err)
	}

	report := replayReport{
		Trace:    tracePath,
		Ops:      make([]replayOp, len(res.Outcomes)),
		Failures: res.Failures,
		Stats:    res.Stats,
	}
	for i, o := range res.Outcomes {
		report.Ops[i] = replayOp{Line: o.Op.Line, Op: o.Op.String(), Handle: uint32(o.Handle)}
		if o.Err != nil {
			report.Ops[i].Error = o.Err.Error()
			logger.Debug("trace operation failed", "line", o.Op.Line, "op", o.Op.String(), "error", o.Err)
		}
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("%-6s %-24s %-10s %s\n", "LINE", "OP", "HANDLE", "RESULT")
	for _, o := range report.Ops {
		result := "ok"
		if o.Error != "" {
			result = o.Error
		}
		printInfo("%-6d %-24s %-10d %s\n", o.Line, o.Op, o.Handle, result)
	}
	printInfo("\n%s operations, %s failed\n", humanize.Comma(int64(len(report.Ops))), humanize.Comma(int64(report.Failures)))
	printStats(report.Stats)
	return nil
}
