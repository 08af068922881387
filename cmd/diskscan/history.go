package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/diskscan/internal/config"
	"github.com/nao1215/diskscan/internal/history"
	"github.com/nao1215/diskscan/internal/report"
)

// NewHistoryCmd creates the history command.
// This command lists past scan runs stored in the history database and can
// replay the full report of any stored run.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [device]",
		Short: "Show past scan results for a device",
		Long: `History lists past scan runs saved in the local database.

Every completed scan is stored automatically (disable with --no-history on
the scan command). The listing shows when each run happened and how it
concluded, so a disk's condition can be tracked over time.

Examples:
  # List past scans of a device
  diskscan history /dev/sdb

  # Show only the last 5 runs
  diskscan history --last 5 /dev/sdb

  # Replay the full report of run 12
  diskscan history --show-run-id 12`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("last", "n", 0,
		"List only the last N runs (0 means all)")
	cmd.Flags().Int64P("show-run-id", "i", 0,
		"Print the full stored report of a run (use the listing to find IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Print the stored report as JSON instead of the terminal format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	showRunID, err := cmd.Flags().GetInt64("show-run-id")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("last")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so a usage mistake
	// never touches the database file.
	if showRunID == 0 && len(args) == 0 {
		return errors.New("device path is required (or use --show-run-id to print a stored run)")
	}

	db, err := history.Open(config.XDGDataDir(), history.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	if showRunID != 0 {
		return showStoredRun(cmd, db, showRunID, jsonOutput)
	}
	return listDeviceRuns(cmd, db, args[0], limit)
}

// listDeviceRuns prints the run listing for one device, newest first.
func listDeviceRuns(cmd *cobra.Command, db *history.DB, devicePath string, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), devicePath, limit)
	if err != nil {
		return fmt.Errorf("failed to list scan history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintf(out, "No scan history found for %s\n", devicePath)
		fmt.Fprintln(out, "\nUse 'diskscan <device>' to scan and record a run.")
		return nil
	}

	fmt.Fprintf(out, "Scan history for %s (%d runs):\n\n", devicePath, len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-18s  %s\n", "ID", "Date", "Conclusion", "Errors")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 58))

	for _, run := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-18s  %d\n",
			run.ID,
			run.ScannedAt.Local().Format("2006-01-02 15:04:05"),
			run.Conclusion.Token(),
			run.NumErrors,
		)
	}

	fmt.Fprintln(out, "\nUse 'diskscan history --show-run-id <id>' to print a full report.")
	return nil
}

// showStoredRun replays the full report of one stored run.
func showStoredRun(cmd *cobra.Command, db *history.DB, id int64, jsonOutput bool) error {
	r, err := db.GetReport(cmd.Context(), id)
	if err != nil {
		return err
	}

	var w report.Writer
	if jsonOutput {
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	} else {
		w = report.NewSimpleWriter(cmd.OutOrStdout())
	}
	if _, err := w.Write(r); err != nil {
		return fmt.Errorf("failed to write stored report: %w", err)
	}
	return nil
}
