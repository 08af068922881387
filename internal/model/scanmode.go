package model

import "strings"

// ScanMode selects the order in which scan units are read from the device.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons. The String() method provides human-readable
// output when needed.
type ScanMode int

const (
	// ScanModeUnknown indicates an unrecognized mode token.
	// Callers are expected to degrade this to ScanModeSequential with a
	// warning; an unknown mode is deliberately not a fatal error.
	ScanModeUnknown ScanMode = iota

	// ScanModeSequential reads scan units in ascending device order.
	// This is the default and matches how most media degrade: slow or
	// unreadable regions cluster, and sequential order keeps the latency
	// graph aligned with physical position.
	ScanModeSequential

	// ScanModeRandom reads scan units in a shuffled order.
	// This defeats drive-internal readahead and gives a better picture of
	// true seek latency.
	ScanModeRandom
)

// String returns a human-readable representation of the scan mode.
func (m ScanMode) String() string {
	switch m {
	case ScanModeSequential:
		return "sequential"
	case ScanModeRandom:
		return "random"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m ScanMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ScanMode) UnmarshalText(text []byte) error {
	*m = ParseScanMode(string(text))
	return nil
}

// ParseScanMode maps a mode token to a ScanMode.
// Unrecognized tokens return ScanModeUnknown; the caller decides whether
// that is fatal (it is not: the CLI falls back to sequential).
func ParseScanMode(s string) ScanMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seq", "sequential":
		return ScanModeSequential
	case "random", "rand":
		return ScanModeRandom
	default:
		return ScanModeUnknown
	}
}
