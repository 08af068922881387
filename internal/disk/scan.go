package disk

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/nao1215/diskscan/internal/model"
)

// Scan errors.
var (
	// ErrInvalidScanRange is returned when the sector range selects
	// nothing to scan.
	ErrInvalidScanRange = errors.New("invalid scan range")

	// ErrScanSizeAlignment is returned when the scan unit size is not a
	// multiple of the device's logical sector size.
	ErrScanSizeAlignment = errors.New("scan size is not a multiple of the device sector size")
)

// Reporter receives the scan engine's callbacks. All callbacks are invoked
// synchronously from within Scan, in scan order; OnDone is always the last
// callback of a run.
type Reporter interface {
	// OnProgress is called after every scan unit with the number of units
	// completed so far and the total unit count.
	OnProgress(current, total int)

	// OnSuccess is called for every unit that was read successfully.
	OnSuccess(offsetBytes, dataSize uint64, latency time.Duration)

	// OnError is called for every unit that could not be read.
	OnError(offsetBytes, dataSize uint64, latency time.Duration)

	// OnDone is called exactly once when the scan finishes, including
	// after a cancelled run.
	OnDone(d *Device)
}

// Scan reads the device in scan units of scanSize bytes, from startSector
// up to endSector (0 means the device end), and accumulates latency
// statistics. Scan order is sequential or shuffled according to mode.
//
// The cooperative stop flag is polled before each unit; a stopped run keeps
// the statistics gathered so far and concludes Aborted. Read errors are
// counted and reported through the Reporter but do not stop the scan; they
// surface in the conclusion, not as a Scan error. A non-nil error from Scan
// means the scan could not run at all; in that case no callbacks were made.
func (d *Device) Scan(mode model.ScanMode, scanSize int64, startSector, endSector uint64, r Reporter) error {
	if d.file == nil {
		return ErrDeviceClosed
	}
	if scanSize <= 0 || uint64(scanSize)%d.SectorSize != 0 {
		return fmt.Errorf("%w: %d bytes with %d-byte sectors", ErrScanSizeAlignment, scanSize, d.SectorSize)
	}

	totalSectors := d.NumBytes / d.SectorSize
	if endSector == 0 || endSector > totalSectors {
		endSector = totalSectors
	}
	if startSector >= endSector {
		return fmt.Errorf("%w: sectors %d..%d", ErrInvalidScanRange, startSector, endSector)
	}

	startByte := startSector * d.SectorSize
	endByte := endSector * d.SectorSize
	numUnits := int((endByte - startByte + uint64(scanSize) - 1) / uint64(scanSize))

	order := make([]int, numUnits)
	for i := range order {
		order[i] = i
	}
	if mode == model.ScanModeRandom {
		rand.Shuffle(numUnits, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	unitsPerCell := 1
	if numUnits > d.graphLen {
		unitsPerCell = (numUnits + d.graphLen - 1) / d.graphLen
	}
	numCells := (numUnits + unitsPerCell - 1) / unitsPerCell
	cells := make([][]uint32, numCells)

	d.logger.Info("scan started",
		"mode", mode.String(),
		"scanSize", scanSize,
		"startSector", startSector,
		"endSector", endSector,
		"units", numUnits,
	)

	buf := alignedBuffer(int(scanSize))
	aborted := false

	for done, unit := range order {
		// Unit boundaries are the cancellation points.
		if d.stopped() {
			aborted = true
			d.logger.Info("scan stopped by request", "unitsDone", done, "units", numUnits)
			break
		}

		offset := startByte + uint64(unit)*uint64(scanSize)
		readSize := uint64(scanSize)
		if offset+readSize > endByte {
			readSize = endByte - offset
		}

		start := time.Now()
		n, err := d.file.ReadAt(buf[:readSize], int64(offset))
		latency := time.Since(start)

		// ReadAt may return io.EOF alongside a full final read.
		if errors.Is(err, io.EOF) && n == int(readSize) {
			err = nil
		}

		usec := latency.Microseconds()
		if usec < histogramMinUsec {
			usec = histogramMinUsec
		} else if usec > histogramMaxUsec {
			usec = histogramMaxUsec
		}
		_ = d.Histogram.RecordValue(usec) //nolint:errcheck // Value is clamped to the histogram range

		cell := unit / unitsPerCell
		cells[cell] = append(cells[cell], uint32(latency.Milliseconds()))

		if err != nil {
			d.NumErrors++
			d.logger.Warn("read error", "offset", offset, "size", readSize, "error", err)
			r.OnError(offset, readSize, latency)
		} else {
			r.OnSuccess(offset, readSize, latency)
		}
		r.OnProgress(done+1, numUnits)
	}

	sectorsPerCell := uint64(unitsPerCell) * uint64(scanSize) / d.SectorSize
	d.LatencyGraph = buildLatencyGraph(cells, startSector, endSector, sectorsPerCell)
	d.Conclusion = d.conclude(aborted)

	d.logger.Info("scan finished",
		"conclusion", d.Conclusion.Token(),
		"errors", d.NumErrors,
		"aborted", aborted,
	)
	r.OnDone(d)
	return nil
}

// buildLatencyGraph reduces the per-cell latency collections into ordered
// LatencySamples. Cells that never received a read (possible after a
// cancelled run) are skipped; the remaining samples stay in position order.
func buildLatencyGraph(cells [][]uint32, startSector, endSector, sectorsPerCell uint64) []model.LatencySample {
	samples := make([]model.LatencySample, 0, len(cells))
	for i, latencies := range cells {
		if len(latencies) == 0 {
			continue
		}
		sort.Slice(latencies, func(a, b int) bool { return latencies[a] < latencies[b] })

		cellStart := startSector + uint64(i)*sectorsPerCell
		cellEnd := cellStart + sectorsPerCell
		if cellEnd > endSector {
			cellEnd = endSector
		}

		samples = append(samples, model.LatencySample{
			StartSector: cellStart,
			EndSector:   cellEnd,
			MinMsec:     latencies[0],
			MedianMsec:  latencies[len(latencies)/2],
			MaxMsec:     latencies[len(latencies)-1],
		})
	}
	return samples
}
