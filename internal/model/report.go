package model

import "time"

// PercentileRow is one row of the access-time percentile table.
type PercentileRow struct {
	// Percentile is the percentile breakpoint (5, 10, ... 100).
	Percentile float64 `json:"percentile"`

	// ValueMsec is the access latency at this percentile in milliseconds.
	ValueMsec float64 `json:"valueMsec"`
}

// ScanReport is the complete result of one scan run.
//
// It is the shared shape between the human-readable report, the JSON result
// log, the Markdown writer, and the history database: one scan produces
// exactly one ScanReport.
type ScanReport struct {
	// DevicePath is the scanned block device path.
	DevicePath string `json:"devicePath"`

	// NumBytes is the total size of the device in bytes.
	NumBytes uint64 `json:"numBytes"`

	// SectorSize is the logical sector size of the device in bytes.
	SectorSize uint64 `json:"sectorSize"`

	// Mode is the scan order that was used.
	Mode ScanMode `json:"mode"`

	// ScanSize is the size of one scan unit in bytes.
	ScanSize int64 `json:"scanSize"`

	// StartSector is the first sector that was scanned.
	StartSector uint64 `json:"startSector"`

	// EndSector is the sector one past the scanned range.
	EndSector uint64 `json:"endSector"`

	// Fix records whether fix-intent was set for the run.
	Fix bool `json:"fix"`

	// StartedAt is when the scan began.
	StartedAt time.Time `json:"startedAt"`

	// FinishedAt is when the scan finished, failed, or was aborted.
	FinishedAt time.Time `json:"finishedAt"`

	// NumErrors is the number of scan units that could not be read.
	NumErrors uint64 `json:"numErrors"`

	// Conclusion is the final health verdict.
	Conclusion Conclusion `json:"conclusion"`

	// Percentiles is the access-time percentile table in 5-point steps.
	Percentiles []PercentileRow `json:"percentiles,omitempty"`

	// LatencyGraph is the ordered per-region latency sample sequence.
	LatencyGraph []LatencySample `json:"latencyGraph,omitempty"`
}

// Duration returns the wall-clock duration of the scan.
func (r *ScanReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ScannedBytes returns the number of bytes covered by the scanned range.
func (r *ScanReport) ScannedBytes() uint64 {
	if r.EndSector < r.StartSector {
		return 0
	}
	return (r.EndSector - r.StartSector) * r.SectorSize
}
