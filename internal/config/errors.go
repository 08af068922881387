package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic handling while still providing human-readable messages.
var (
	// ErrNoDevicePath is returned when no device path is configured.
	ErrNoDevicePath = errors.New("no disk path provided to scan")

	// ErrInvalidScanSize is returned when the scan unit size is zero or
	// negative. A zero size is also how a failed size parse surfaces.
	ErrInvalidScanSize = errors.New("scan size is invalid, must be a positive number")

	// ErrScanSizeTooLarge is returned when the scan unit size exceeds
	// MaxScanSize (32 MiB).
	ErrScanSizeTooLarge = errors.New("scan size too large: maximum transfer size is 32MB")

	// ErrUnknownSizeSuffix is returned for a size suffix other than
	// b/B, k/K, or m/M.
	ErrUnknownSizeSuffix = errors.New("unknown size suffix")

	// ErrScanSizeNotSectorMultiple is returned when the scan unit size is
	// not a multiple of the 512-byte sector floor.
	ErrScanSizeNotSectorMultiple = errors.New("scan size must be a multiple of 512")

	// ErrInvalidSectorRange is returned when the end sector is before the
	// start sector. An end sector of 0 means the device end and is valid.
	ErrInvalidSectorRange = errors.New("end sector must not be before start sector")

	// ErrInvalidLatencyThreshold is returned when a latency failure
	// threshold is zero.
	ErrInvalidLatencyThreshold = errors.New("latency thresholds must be positive")
)
