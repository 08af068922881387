package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nao1215/diskscan/internal/model"
)

// Default configuration values.
// These match the original diskscan defaults where applicable.
const (
	// DefaultScanSize is the default scan unit size in bytes (64 KiB).
	// Large enough to amortize per-request overhead, small enough that a
	// single slow unit pins down a narrow region of the disk.
	DefaultScanSize = 64 * 1024

	// MaxScanSize is the largest accepted scan unit size (32 MiB).
	// Transfers above this are rejected at parse time.
	MaxScanSize = 32 * 1024 * 1024

	// MinSectorSize is the smallest logical sector size we support.
	// The scan unit size must be a multiple of it.
	MinSectorSize = 512

	// DefaultLatencyGraphLen is the number of latency-graph columns, and
	// therefore the number of regions the scanned range is divided into.
	// 70 columns fit an 80-column terminal with the axis label margin.
	DefaultLatencyGraphLen = 70

	// DefaultMaxLatencyMsec is the single-read latency above which the
	// disk fails the scan outright.
	DefaultMaxLatencyMsec = 10000

	// DefaultPercentileLatencyMsec is the 99.9th-percentile latency above
	// which the disk fails the scan even when no single read tripped
	// DefaultMaxLatencyMsec.
	DefaultPercentileLatencyMsec = 1000

	// AppName is the application name used for XDG directory paths.
	AppName = "diskscan"
)

// Config holds all configuration for one scan run.
// It is immutable after Validate; the orchestration layer passes it by
// pointer but never modifies it mid-run.
type Config struct {
	// DevicePath is the block device to scan. Exactly one is required.
	DevicePath string

	// Verbose is the verbosity level (0 and up), one per -v flag.
	Verbose int

	// Fix enables fix-intent: the scan engine may attempt to refresh
	// near-failing regions. Nothing can be done for unreadable sectors.
	Fix bool

	// Mode is the scan order. Defaults to sequential.
	Mode model.ScanMode

	// ScanSize is the scan unit size in bytes. Must be positive, a
	// multiple of MinSectorSize, and at most MaxScanSize.
	ScanSize int64

	// OutputPath enables the structured JSON result log when non-empty.
	OutputPath string

	// RawLogPath enables the raw per-read JSON log when non-empty.
	RawLogPath string

	// MarkdownPath enables the Markdown report when non-empty.
	MarkdownPath string

	// MountPolicy governs whether a mounted device may be scanned.
	// Defaults to MountPolicyNotMounted.
	MountPolicy model.MountPolicy

	// StartSector is the first sector to scan.
	StartSector uint64

	// EndSector is the last sector to scan; 0 means the device end.
	EndSector uint64

	// MaxLatencyMsec is the single-read failure threshold.
	MaxLatencyMsec uint32

	// PercentileLatencyMsec is the 99.9th-percentile failure threshold.
	PercentileLatencyMsec uint32

	// ConfigFilePath is the explicit .diskscan path, if any.
	ConfigFilePath string

	// SaveHistory controls persisting the scan report to the history
	// database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	DBDir string
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor rather than relying on zero values
// because several defaults are non-zero (scan size, mode, thresholds), and
// the constructor documents what they are.
func NewConfig() *Config {
	return &Config{
		Mode:                  model.ScanModeSequential,
		ScanSize:              DefaultScanSize,
		MountPolicy:           model.MountPolicyNotMounted,
		MaxLatencyMsec:        DefaultMaxLatencyMsec,
		PercentileLatencyMsec: DefaultPercentileLatencyMsec,
		SaveHistory:           true,
		DBDir:                 XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for diskscan.
// On Linux: ~/.local/share/diskscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after CLI parsing, before the device is opened; any
// error here means the run stops with usage output and exit status 1.
func (c *Config) Validate() error {
	if c.DevicePath == "" {
		return ErrNoDevicePath
	}

	// A zero scan size is the parse-failure marker from ParseScanSize.
	if c.ScanSize <= 0 {
		return ErrInvalidScanSize
	}
	if c.ScanSize > MaxScanSize {
		return ErrScanSizeTooLarge
	}
	if c.ScanSize%MinSectorSize != 0 {
		return ErrScanSizeNotSectorMultiple
	}

	// EndSector 0 means "device end" and is always valid.
	if c.EndSector != 0 && c.EndSector < c.StartSector {
		return ErrInvalidSectorRange
	}

	if c.MaxLatencyMsec == 0 || c.PercentileLatencyMsec == 0 {
		return ErrInvalidLatencyThreshold
	}

	return nil
}
