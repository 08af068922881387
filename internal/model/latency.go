package model

// LatencySample is the per-region latency record behind one column of the
// latency graph. The scan engine appends one sample per graph cell, in scan
// position order; the report writers consume them only after the scan
// completes.
type LatencySample struct {
	// StartSector is the first sector covered by this sample.
	StartSector uint64 `json:"startSector"`

	// EndSector is the sector one past the region covered by this sample.
	EndSector uint64 `json:"endSector"`

	// MinMsec is the minimum observed access latency in the region,
	// in milliseconds.
	MinMsec uint32 `json:"latencyMinMsec"`

	// MedianMsec is the median observed access latency in the region,
	// in milliseconds.
	MedianMsec uint32 `json:"latencyMedianMsec"`

	// MaxMsec is the maximum observed access latency in the region,
	// in milliseconds.
	MaxMsec uint32 `json:"latencyMaxMsec"`
}
