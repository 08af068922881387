package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. The root command itself runs the
// scan; subcommands cover history, configuration, and version output.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diskscan [flags] <device>",
		Short: "Scan a disk for failing and degraded regions",
		Long: `Diskscan reads a block device end to end and measures per-region access
latency. Slow regions are an early warning: media that needs many retries
to return data is media on its way out.

The scan is read-only by default and refuses to touch a mounted device
unless explicitly forced. Results are rendered as an access-time percentile
table, an ASCII latency-over-position graph, and a final health verdict.

Examples:
  # Scan a whole disk sequentially
  diskscan /dev/sdb

  # Random-order scan with 1 MiB scan units
  diskscan -s random -e 1M /dev/sdb

  # Scan a sector range and keep a JSON result log
  diskscan -S 2048 -E 409600 -o result.json /dev/sdb

  # Allow scanning a disk that is mounted read-only
  diskscan --force-mounted /dev/sdb`,
		Args:          cobra.ArbitraryArgs,
		RunE:          runRootCmd,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().CountP("verbose", "v", "Increase verbosity, multiple uses for higher levels")
	cmd.Flags().BoolP("fix", "f", false, "Attempt to fix near failures, nothing can be done for unreadable sectors")
	cmd.Flags().StringP("scan", "s", "seq", "Scan in order (seq, random)")
	cmd.Flags().StringP("size", "e", "64k", "Scan size (must be a multiple of 512)")
	cmd.Flags().StringP("output", "o", "", "Output file (json)")
	cmd.Flags().StringP("raw-log", "r", "", "Raw log of all scan results (json)")
	cmd.Flags().Uint64P("start-sector", "S", 0, "Start scan at sector")
	cmd.Flags().Uint64P("end-sector", "E", 0, "Stop scan at sector (0 means device end)")
	cmd.Flags().Bool("force-mounted", false, "Allow checking a read-only mounted disk")
	cmd.Flags().Bool("force-mounted-rw", false, "Allow checking a read-write mounted disk")
	cmd.Flags().StringP("markdown", "m", "", "Write a Markdown report to the given file")
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .diskscan in current or home directory)")
	cmd.Flags().Bool("no-history", false, "Do not save the scan report to the history database")

	// Any unrecognized flag routes through the same usage-and-fail
	// outcome as the other configuration errors.
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage() //nolint:errcheck // Best effort usage output
		return err
	})

	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command. Any failure exits with status 1.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Positional argument errors. The device path is required, and only one
// disk can be scanned per run.
var (
	errNoDevice        = errors.New("no disk path provided to scan")
	errTooManyDevices  = errors.New("too many disk paths provided to scan, can only scan one disk")
	errUnknownScanSize = errors.New("scan size is invalid")
)
