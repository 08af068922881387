package datalog

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// RawEntry is one per-read record in the raw log.
type RawEntry struct {
	// OffsetBytes is the byte offset of the read.
	OffsetBytes uint64 `json:"offsetBytes"`

	// DataSize is the number of bytes requested.
	DataSize uint64 `json:"dataSize"`

	// LatencyUsec is the observed access latency in microseconds.
	LatencyUsec int64 `json:"latencyUsec"`

	// Error marks a failed read.
	Error bool `json:"error,omitempty"`
}

// RawLog streams one JSON entry per read into a file, wrapped in a header
// identifying the device. Entries pass through a buffered channel and are
// encoded by a dedicated goroutine; the scan loop only pays for a channel
// send.
type RawLog struct {
	f       *os.File
	entries chan RawEntry
	g       *errgroup.Group
}

// rawEntryBuffer is the channel capacity. Deep enough that a burst of fast
// reads never blocks the scan loop on the encoder.
const rawEntryBuffer = 256

// StartRaw creates the raw log file, writes the device header, and starts
// the sink goroutine.
func StartRaw(path, devicePath string, numBytes, sectorSize uint64) (*RawLog, error) {
	f, err := os.Create(path) //nolint:gosec // User-provided log path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create raw log: %w", err)
	}

	header := struct {
		DevicePath string `json:"devicePath"`
		NumBytes   uint64 `json:"numBytes"`
		SectorSize uint64 `json:"sectorSize"`
	}{devicePath, numBytes, sectorSize}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := fmt.Fprintf(f, "{\n\"device\": %s,\n\"reads\": [", headerJSON); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write raw log header: %w", err)
	}

	l := &RawLog{
		f:       f,
		entries: make(chan RawEntry, rawEntryBuffer),
		g:       &errgroup.Group{},
	}
	l.g.Go(l.drain)
	return l, nil
}

// Add queues one read record. It blocks only when the sink goroutine has
// fallen rawEntryBuffer entries behind.
func (l *RawLog) Add(e RawEntry) {
	l.entries <- e
}

// drain encodes queued entries until the channel closes.
// The first entry is written without a leading comma so the output stays a
// valid JSON array.
//
// A write failure must not stop consumption: the scan loop blocks in Add
// once the channel fills, so the sink keeps receiving and discards entries
// after the first error. The saved error surfaces from End.
func (l *RawLog) drain() error {
	var firstErr error
	first := true
	for e := range l.entries {
		if firstErr != nil {
			continue
		}
		sep := ","
		if first {
			sep = ""
			first = false
		}
		data, err := json.Marshal(e)
		if err != nil {
			firstErr = err
			continue
		}
		if _, err := fmt.Fprintf(l.f, "%s\n%s", sep, data); err != nil {
			firstErr = fmt.Errorf("failed to write raw log entry: %w", err)
		}
	}
	return firstErr
}

// End flushes remaining entries, closes the JSON structure, and closes the
// file. The log is unusable afterwards.
func (l *RawLog) End() error {
	close(l.entries)
	drainErr := l.g.Wait()

	if _, err := fmt.Fprint(l.f, "\n]\n}\n"); err != nil && drainErr == nil {
		drainErr = err
	}
	if err := l.f.Close(); err != nil && drainErr == nil {
		drainErr = err
	}
	return drainErr
}
