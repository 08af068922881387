package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/diskscan/internal/model"
)

// Latency graph geometry.
const (
	// graphHeight is the number of chart rows.
	graphHeight = 30

	// maxHeightInterval caps the per-row latency band so a single extreme
	// outlier cannot collapse every other bar into the bottom row.
	maxHeightInterval = 10000
)

// RenderLatencyGraph writes the latency-over-position chart: one column per
// latency sample, one row per latency band. Each column carries three
// markers, '^' for the region's maximum latency, '*' for the median and '_'
// for the minimum.
//
// When two of a column's values fall into the same band, the upper marker
// is bumped one row up (max first, then median, re-bumping max if the two
// collide again). The three markers therefore never share a row, keeping
// max, median and min visually distinguishable even when the values are
// numerically equal.
func RenderLatencyGraph(w io.Writer, samples []model.LatencySample) error {
	maxVal := uint32(1)
	for _, s := range samples {
		if s.MaxMsec > maxVal {
			maxVal = s.MaxMsec
		}
	}

	heightInterval := (maxVal + 1) / (graphHeight - 3)
	if heightInterval == 0 {
		heightInterval = 1
	} else if heightInterval > maxHeightInterval {
		heightInterval = maxHeightInterval
	}

	var sb strings.Builder
	for row := uint32(graphHeight); row > 0; row-- {
		// Every fifth row carries the axis label for its latency band.
		if row%5 == 0 {
			fmt.Fprintf(&sb, "%5d | ", uint64(row)*uint64(heightInterval))
		} else {
			sb.WriteString("      | ")
		}

		for _, s := range samples {
			maxHeight := s.MaxMsec/heightInterval + 1
			medHeight := s.MedianMsec/heightInterval + 1
			minHeight := s.MinMsec/heightInterval + 1

			if maxHeight == medHeight {
				maxHeight++
			}
			if medHeight == minHeight {
				medHeight++
				if maxHeight == medHeight {
					maxHeight++
				}
			}

			switch row {
			case maxHeight:
				sb.WriteByte('^')
			case medHeight:
				sb.WriteByte('*')
			case minHeight:
				sb.WriteByte('_')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("      +-")
	sb.WriteString(strings.Repeat("-", len(samples)))
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}
