package report

import (
	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/nao1215/diskscan/internal/model"
)

// percentileStep is the width of the percentile table breakpoints.
const percentileStep = 5.0

// Percentiles reduces the access-time histogram to the fixed-breakpoint
// percentile table (5%, 10%, ... 100%), scaled from the histogram's
// microsecond values to milliseconds.
func Percentiles(h *hdrhistogram.Histogram) []model.PercentileRow {
	rows := make([]model.PercentileRow, 0, int(100/percentileStep))
	for p := percentileStep; p <= 100.0; p += percentileStep {
		rows = append(rows, model.PercentileRow{
			Percentile: p,
			ValueMsec:  float64(h.ValueAtQuantile(p)) / 1000.0,
		})
	}
	return rows
}
