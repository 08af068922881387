package model

// Conclusion is the final health verdict of a scan.
//
// Design decision: The verdict and the reason it was reached are a single
// enum rather than a (passed bool, reason string) pair. The failure reasons
// are a fixed set, and downstream consumers (reports, history database)
// want to compare them programmatically.
type Conclusion int

const (
	// ConclusionScanProblem means the scan itself failed and no verdict
	// about the disk can be drawn.
	ConclusionScanProblem Conclusion = iota

	// ConclusionAborted means the scan was cancelled by the user before
	// completion. Not an error: partial results are still reported.
	ConclusionAborted

	// ConclusionPassed means the disk completed the scan with no errors
	// and acceptable latency.
	ConclusionPassed

	// ConclusionFailedMaxLatency means at least one region exceeded the
	// maximum acceptable access latency.
	ConclusionFailedMaxLatency

	// ConclusionFailedLatencyPercentile means the high-percentile access
	// latency exceeded the acceptable threshold even though no single read
	// tripped the maximum.
	ConclusionFailedLatencyPercentile

	// ConclusionFailedIOErrors means at least one scan unit was unreadable.
	ConclusionFailedIOErrors
)

// String returns the human-readable conclusion text printed at the end of
// the scan report.
func (c Conclusion) String() string {
	switch c {
	case ConclusionScanProblem:
		return "Scan problem, no conclusion"
	case ConclusionAborted:
		return "Scan aborted by user"
	case ConclusionPassed:
		return "Disk passed the scan"
	case ConclusionFailedMaxLatency:
		return "Disk failed the scan due to excessive maximum latency"
	case ConclusionFailedLatencyPercentile:
		return "Disk failed the scan due to excessive latency at high percentiles"
	case ConclusionFailedIOErrors:
		return "Disk failed the scan due to I/O errors"
	default:
		return "Unknown conclusion"
	}
}

// Passed reports whether the conclusion is a clean pass.
func (c Conclusion) Passed() bool {
	return c == ConclusionPassed
}

// conclusionTokens maps conclusions to the short stable tokens used in JSON
// output and the history database. The long String() form is for humans and
// may change; these tokens may not.
var conclusionTokens = map[Conclusion]string{
	ConclusionScanProblem:             "scan-problem",
	ConclusionAborted:                 "aborted",
	ConclusionPassed:                  "passed",
	ConclusionFailedMaxLatency:        "failed-max-latency",
	ConclusionFailedLatencyPercentile: "failed-latency-percentile",
	ConclusionFailedIOErrors:          "failed-io-errors",
}

// Token returns the short stable identifier for the conclusion.
func (c Conclusion) Token() string {
	if t, ok := conclusionTokens[c]; ok {
		return t
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler using the short token form.
func (c Conclusion) MarshalText() ([]byte, error) {
	return []byte(c.Token()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Unrecognized tokens decode as ConclusionScanProblem.
func (c *Conclusion) UnmarshalText(text []byte) error {
	s := string(text)
	for conclusion, token := range conclusionTokens {
		if token == s {
			*c = conclusion
			return nil
		}
	}
	*c = ConclusionScanProblem
	return nil
}
