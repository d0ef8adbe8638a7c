package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/regionkit/cmd/regionctl/logger"
	"github.com/joshuapare/regionkit/internal/format"
	"github.com/joshuapare/regionkit/region"
	"github.com/joshuapare/regionkit/region/mapped"
)

var (
	inspectVerify  bool
	inspectHeaders bool
)

func init() {
	cmd := newInspectCmd()
	cmd.Flags().BoolVar(&inspectVerify, "verify", false, "Check the header chain against the bookkeeping")
	cmd.Flags().BoolVar(&inspectHeaders, "headers", false, "List every header")
	rootCmd.AddCommand(cmd)
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the state of a region file",
		Long: `The inspect command opens a region file, rebuilds its bookkeeping from
the header chain and prints statistics.

Example:
  regionctl inspect arena.rgn
  regionctl inspect arena.rgn --headers --verify
  regionctl inspect arena.rgn --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
	return cmd
}

type headerInfo struct {
	Offset int    `json:"offset"`
	Handle uint32 `json:"handle"`
	Size   uint32 `json:"size"`
	State  string `json:"state"`
}

type inspectReport struct {
	Path     string       `json:"path"`
	Stats    region.Stats `json:"stats"`
	Headers  []headerInfo `json:"headers,omitempty"`
	Verified *bool        `json:"verified,omitempty"`
	Problem  string       `json:"problem,omitempty"`
}

func runInspect(args []string) (err error) {
	path := args[0]

	printVerbose("Opening region file: %s\n", path)
	mr, err := mapped.Open(path, regionConfig())
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, mr.Close()) }()

	report := inspectReport{Path: path}
	if report.Stats, err = mr.Stats(); err != nil {
		return fmt.Errorf("failed to walk headers: %w", err)
	}

	if inspectHeaders {
		err = mr.Walk(func(hdr format.Header) error {
			report.Headers = append(report.Headers, headerInfo{
				Offset: hdr.Offset,
				Handle: uint32(hdr.PayloadOffset()),
				Size:   hdr.Size,
				State:  hdr.Flags.String(),
			})
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to walk headers: %w", err)
		}
	}

	var verifyErr error
	if inspectVerify {
		verifyErr = mr.Verify()
		ok := verifyErr == nil
		report.Verified = &ok
		if verifyErr != nil {
			report.Problem = verifyErr.Error()
			logger.Warn("region verification failed", "path", path, "error", verifyErr)
		}
	}

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
		return verifyErr
	}

	printInfo("Region file: %s\n", path)
	printStats(report.Stats)

	if inspectHeaders {
		printInfo("\n%-10s %-10s %-12s %s\n", "OFFSET", "HANDLE", "SIZE", "STATE")
		for _, h := range report.Headers {
			printInfo("%-10d %-10d %-12s %s\n", h.Offset, h.Handle, humanize.IBytes(uint64(h.Size)), h.State)
		}
	}

	if report.Verified != nil {
		if verifyErr != nil {
			return fmt.Errorf("verification failed: %w", verifyErr)
		}
		printInfo("\nVerification passed\n")
	}
	return nil
}
