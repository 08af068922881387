package config

import (
	"fmt"
	"strconv"
)

// ParseScanSize parses a scan unit size string.
//
// The numeric part accepts C-style literals (decimal, 0x hex, 0 octal) and
// may be followed by a single-letter unit suffix: b/B for bytes, k/K for
// KiB, m/M for MiB. On any failure the returned size is 0, which Validate
// treats as invalid.
//
// Examples: "4k" -> 4096, "2M" -> 2097152, "0x200" -> 512.
func ParseScanSize(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty size", ErrInvalidScanSize)
	}

	numPart := s
	factor := int64(1)

	// Try the whole string first so hex literals ending in a letter
	// (e.g. "0x1b") are not misread as having a suffix.
	if _, err := strconv.ParseInt(s, 0, 64); err != nil {
		if len(s) < 2 {
			return 0, fmt.Errorf("%w: failed to parse %q as a number", ErrInvalidScanSize, s)
		}
		numPart = s[:len(s)-1]
		switch s[len(s)-1] {
		case 'b', 'B':
			factor = 1
		case 'k', 'K':
			factor = 1024
		case 'm', 'M':
			factor = 1024 * 1024
		default:
			return 0, fmt.Errorf("%w: %q (B, K, and M are accepted)", ErrUnknownSizeSuffix, s[len(s)-1:])
		}
	}

	val, err := strconv.ParseInt(numPart, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse %q as a number", ErrInvalidScanSize, s)
	}
	if val <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScanSize, s)
	}

	// Overflow guard before applying the factor.
	if val > MaxScanSize/factor {
		return 0, fmt.Errorf("%w: %q", ErrScanSizeTooLarge, s)
	}

	return val * factor, nil
}
