package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/diskscan/internal/config"
	"github.com/nao1215/diskscan/internal/datalog"
	"github.com/nao1215/diskscan/internal/disk"
	"github.com/nao1215/diskscan/internal/history"
	"github.com/nao1215/diskscan/internal/log"
	"github.com/nao1215/diskscan/internal/model"
	"github.com/nao1215/diskscan/internal/report"
)

// runRootCmd parses the command line into a Config and runs the scan.
// Configuration errors print usage and fail; everything past Validate is a
// runtime error and fails without usage output.
func runRootCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		_ = cmd.Usage() //nolint:errcheck // Best effort usage output
		return err
	}
	if err := cfg.Validate(); err != nil {
		_ = cmd.Usage() //nolint:errcheck // Best effort usage output
		return err
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	return runScan(cmd, cfg, logger)
}

// buildConfig merges flags over the .diskscan configuration file over the
// built-in defaults. Flags the user actually set always win; file values
// only fill in flags left at their defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	if len(args) == 0 {
		return nil, errNoDevice
	}
	if len(args) > 1 {
		return nil, errTooManyDevices
	}

	cfg := config.NewConfig()
	cfg.DevicePath = args[0]

	flags := cmd.Flags()
	var err error
	if cfg.Verbose, err = flags.GetCount("verbose"); err != nil {
		return nil, err
	}
	if cfg.Fix, err = flags.GetBool("fix"); err != nil {
		return nil, err
	}
	if cfg.OutputPath, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.RawLogPath, err = flags.GetString("raw-log"); err != nil {
		return nil, err
	}
	if cfg.MarkdownPath, err = flags.GetString("markdown"); err != nil {
		return nil, err
	}
	if cfg.StartSector, err = flags.GetUint64("start-sector"); err != nil {
		return nil, err
	}
	if cfg.EndSector, err = flags.GetUint64("end-sector"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	// The read-write permission implies the read-only one, so
	// --force-mounted-rw wins when both are given.
	forceMounted, err := flags.GetBool("force-mounted")
	if err != nil {
		return nil, err
	}
	forceMountedRW, err := flags.GetBool("force-mounted-rw")
	if err != nil {
		return nil, err
	}
	switch {
	case forceMountedRW:
		cfg.MountPolicy = model.MountPolicyMountedRW
	case forceMounted:
		cfg.MountPolicy = model.MountPolicyMountedRO
	}

	// Configuration file values apply before the flags the user set, so
	// the merge below only needs to know which flags changed.
	if err := applyConfigFile(cmd, cfg); err != nil {
		return nil, err
	}

	if flags.Changed("scan") {
		modeToken, err := flags.GetString("scan")
		if err != nil {
			return nil, err
		}
		cfg.Mode = model.ParseScanMode(modeToken)
		if cfg.Mode == model.ScanModeUnknown {
			// Matches the original behavior: an unknown mode degrades
			// to sequential with a warning instead of failing the run.
			fmt.Fprintf(cmd.OutOrStdout(), "Unknown scan mode %s given, using sequential\n", modeToken)
			cfg.Mode = model.ScanModeSequential
		}
	}

	if flags.Changed("size") {
		sizeToken, err := flags.GetString("size")
		if err != nil {
			return nil, err
		}
		size, err := config.ParseScanSize(sizeToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errUnknownScanSize, err)
		}
		cfg.ScanSize = size
	}

	return cfg, nil
}

// applyConfigFile loads the .diskscan file and folds its values into cfg.
// An explicitly requested file that does not exist is an error; the
// implicit search locations are allowed to be empty.
func applyConfigFile(cmd *cobra.Command, cfg *config.Config) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	dc := cf.GetDeviceConfig(cfg.DevicePath)
	flags := cmd.Flags()

	if dc.ScanSize != "" && !flags.Changed("size") {
		size, err := config.ParseScanSize(dc.ScanSize)
		if err != nil {
			return fmt.Errorf("%w in %s: %s", errUnknownScanSize, path, err)
		}
		cfg.ScanSize = size
	}
	if dc.Mode != "" && !flags.Changed("scan") {
		mode := model.ParseScanMode(dc.Mode)
		if mode == model.ScanModeUnknown {
			fmt.Fprintf(cmd.OutOrStdout(), "Unknown scan mode %s given, using sequential\n", dc.Mode)
			mode = model.ScanModeSequential
		}
		cfg.Mode = mode
	}
	if dc.MaxLatencyMsec != 0 {
		cfg.MaxLatencyMsec = dc.MaxLatencyMsec
	}
	if dc.PercentileLatencyMsec != 0 {
		cfg.PercentileLatencyMsec = dc.PercentileLatencyMsec
	}

	return nil
}

// runScan executes one scan run: open the device, stream results to the
// data logs and the progress bar, and render the report.
//
// The signal handler is installed before the device is opened so a Ctrl-C
// during a slow open is not lost; once the scan is running, the signal
// requests a cooperative stop and the run concludes Aborted with exit
// status 0.
func runScan(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "diskscan version %s\n\n", getVersion())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()

	dev, err := disk.Open(cfg.DevicePath, cfg.Fix, config.DefaultLatencyGraphLen, cfg.MountPolicy,
		disk.WithLogger(logger),
		disk.WithThresholds(cfg.MaxLatencyMsec, cfg.PercentileLatencyMsec),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.Close(); err != nil {
			logger.Warn("failed to close device", "path", cfg.DevicePath, "error", err)
		}
	}()

	go func() {
		for range sigCh {
			fmt.Fprintln(out, "Stopping the scan, wait a moment please")
			dev.StopScan()
		}
	}()

	// Both log files are created before any device read so a bad path
	// fails the run immediately.
	var rawLog *datalog.RawLog
	if cfg.RawLogPath != "" {
		rawLog, err = datalog.StartRaw(cfg.RawLogPath, cfg.DevicePath, dev.NumBytes, dev.SectorSize)
		if err != nil {
			return err
		}
	}

	var resultLog *datalog.ResultLog
	if cfg.OutputPath != "" {
		resultLog, err = datalog.StartResult(cfg.OutputPath)
		if err != nil {
			if rawLog != nil {
				_ = rawLog.End() //nolint:errcheck // Already failing
			}
			return err
		}
	}

	reporter := &scanReporter{
		progress:  report.NewProgress(out),
		rawLog:    rawLog,
		cfg:       cfg,
		startedAt: time.Now(),
	}

	scanErr := dev.Scan(cfg.Mode, cfg.ScanSize, cfg.StartSector, cfg.EndSector, reporter)

	if rawLog != nil {
		if err := rawLog.End(); err != nil {
			logger.Warn("failed to finalize raw log", "path", cfg.RawLogPath, "error", err)
		}
	}

	// A Scan error means no callbacks ran and no report was built; the
	// downstream outputs still get a report recording the failure.
	if reporter.report == nil {
		reporter.report = buildReport(cfg, dev, reporter.startedAt)
		reporter.report.Conclusion = model.ConclusionScanProblem
	}

	writeReports(out, cfg.MarkdownPath, logger, reporter.report)

	if resultLog != nil {
		if err := resultLog.End(reporter.report); err != nil {
			logger.Warn("failed to write result log", "path", cfg.OutputPath, "error", err)
		}
	}
	if cfg.SaveHistory && scanErr == nil {
		if err := saveHistory(cmd.Context(), out, cfg, reporter.report); err != nil {
			logger.Warn("failed to save scan history", "error", err)
		}
	}

	return scanErr
}

// scanReporter adapts the scan engine callbacks to the progress bar and
// the raw log, and captures the finished report for the writers.
type scanReporter struct {
	progress  *report.Progress
	rawLog    *datalog.RawLog
	cfg       *config.Config
	startedAt time.Time
	report    *model.ScanReport
}

// OnProgress advances the progress bar.
func (r *scanReporter) OnProgress(current, total int) {
	r.progress.Update(current, total)
}

// OnSuccess records a successful read in the raw log.
func (r *scanReporter) OnSuccess(offsetBytes, dataSize uint64, latency time.Duration) {
	if r.rawLog == nil {
		return
	}
	r.rawLog.Add(datalog.RawEntry{
		OffsetBytes: offsetBytes,
		DataSize:    dataSize,
		LatencyUsec: latency.Microseconds(),
	})
}

// OnError records a failed read in the raw log.
func (r *scanReporter) OnError(offsetBytes, dataSize uint64, latency time.Duration) {
	if r.rawLog == nil {
		return
	}
	r.rawLog.Add(datalog.RawEntry{
		OffsetBytes: offsetBytes,
		DataSize:    dataSize,
		LatencyUsec: latency.Microseconds(),
		Error:       true,
	})
}

// OnDone finalizes the progress bar and captures the finished report.
func (r *scanReporter) OnDone(d *disk.Device) {
	r.progress.Finish()
	r.report = buildReport(r.cfg, d, r.startedAt)
}

// buildReport assembles the ScanReport from the device's accumulated
// statistics and the run parameters.
func buildReport(cfg *config.Config, d *disk.Device, startedAt time.Time) *model.ScanReport {
	endSector := cfg.EndSector
	totalSectors := uint64(0)
	if d.SectorSize > 0 {
		totalSectors = d.NumBytes / d.SectorSize
	}
	if endSector == 0 || endSector > totalSectors {
		endSector = totalSectors
	}

	return &model.ScanReport{
		DevicePath:   cfg.DevicePath,
		NumBytes:     d.NumBytes,
		SectorSize:   d.SectorSize,
		Mode:         cfg.Mode,
		ScanSize:     cfg.ScanSize,
		StartSector:  cfg.StartSector,
		EndSector:    endSector,
		Fix:          cfg.Fix,
		StartedAt:    startedAt,
		FinishedAt:   time.Now(),
		NumErrors:    d.NumErrors,
		Conclusion:   d.Conclusion,
		Percentiles:  report.Percentiles(d.Histogram),
		LatencyGraph: d.LatencyGraph,
	}
}

// writeReports emits the finished report to the terminal and, when a
// Markdown path is set, to a file through a single fan-out writer.
func writeReports(out io.Writer, markdownPath string, logger *slog.Logger, r *model.ScanReport) {
	writers := []report.Writer{report.NewSimpleWriter(out)}

	var mdFile *os.File
	if markdownPath != "" {
		f, err := os.Create(markdownPath) //nolint:gosec // User-provided report path is intentional
		if err != nil {
			logger.Warn("failed to create markdown report", "path", markdownPath, "error", err)
		} else {
			mdFile = f
			writers = append(writers, report.NewMarkdownWriter(f))
		}
	}

	if _, err := report.NewMultiWriter(writers...).Write(r); err != nil {
		logger.Warn("failed to write report", "error", err)
	}
	if mdFile != nil {
		if err := mdFile.Close(); err != nil {
			logger.Warn("failed to close markdown report", "path", markdownPath, "error", err)
		}
	}
}

// saveHistory persists the finished run into the history database. When
// earlier runs of the same device exist, the previous verdict is printed so
// a change in the disk's condition stands out.
func saveHistory(ctx context.Context, out io.Writer, cfg *config.Config, r *model.ScanReport) error {
	db, err := history.Open(cfg.DBDir, history.DefaultOptions())
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close() //nolint:errcheck // Read-mostly local database
	}()

	prev, err := db.LastRun(ctx, cfg.DevicePath)
	if err != nil {
		return err
	}
	if prev != nil && prev.Conclusion != r.Conclusion {
		fmt.Fprintf(out, "Previous scan on %s concluded: %s\n",
			prev.ScannedAt.Local().Format("2006-01-02 15:04"), prev.Conclusion)
	}

	if _, err := db.SaveReport(ctx, r); err != nil {
		return err
	}
	return nil
}
