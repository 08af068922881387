package disk

import "github.com/nao1215/diskscan/internal/model"

// Default latency failure thresholds, overridable through WithThresholds.
const (
	defaultMaxLatencyMsec        = 10000
	defaultPercentileLatencyMsec = 1000
)

// percentileBreakpoint is the high-percentile checked against the
// percentile threshold. 99.9 catches a disk with a scattering of slow
// regions that never trips the single-read maximum.
const percentileBreakpoint = 99.9

// WithThresholds overrides the latency failure thresholds, both in
// milliseconds. Zero values keep the defaults.
func WithThresholds(maxLatencyMsec, percentileLatencyMsec uint32) OpenOption {
	return func(d *Device) {
		if maxLatencyMsec != 0 {
			d.maxLatencyMsec = maxLatencyMsec
		}
		if percentileLatencyMsec != 0 {
			d.percentileLatencyMsec = percentileLatencyMsec
		}
	}
}

// conclude derives the health verdict from the accumulated statistics.
// A cancelled run is Aborted regardless of what was seen before the stop;
// otherwise errors dominate latency failures, and the single-read maximum
// dominates the percentile check.
func (d *Device) conclude(aborted bool) model.Conclusion {
	if aborted {
		return model.ConclusionAborted
	}
	if d.NumErrors > 0 {
		return model.ConclusionFailedIOErrors
	}
	if d.Histogram.Max()/1000 >= int64(d.maxLatencyMsec) {
		return model.ConclusionFailedMaxLatency
	}
	if d.Histogram.ValueAtQuantile(percentileBreakpoint)/1000 >= int64(d.percentileLatencyMsec) {
		return model.ConclusionFailedLatencyPercentile
	}
	return model.ConclusionPassed
}
