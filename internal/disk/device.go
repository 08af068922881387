package disk

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/nao1215/diskscan/internal/model"
	"github.com/nao1215/diskscan/internal/mount"
)

// Histogram value range. Latencies are recorded in microseconds; one minute
// is far beyond any latency a live device produces, so higher values are
// clamped rather than lost.
const (
	histogramMinUsec = 1
	histogramMaxUsec = 60 * 1000 * 1000
	histogramSigFigs = 3
)

// Device errors.
var (
	// ErrDeviceMounted is returned when the device's mount state is not
	// permitted by the mount policy.
	ErrDeviceMounted = errors.New("device is mounted")

	// ErrDeviceClosed is returned when an operation is attempted on a
	// closed device.
	ErrDeviceClosed = errors.New("device is closed")
)

// Device is the live scan session: the open device handle plus the
// statistics accumulated during the scan. Exactly one Device exists per
// run; it is created by Open and released by Close on every exit path.
type Device struct {
	// Path is the device path as given on the command line.
	Path string

	// NumBytes is the total device size in bytes.
	NumBytes uint64

	// SectorSize is the logical sector size in bytes.
	SectorSize uint64

	// Fix records the fix-intent flag. The engine carries it; nothing can
	// be done for unreadable sectors.
	Fix bool

	// Histogram accumulates per-read access times in microseconds.
	Histogram *hdrhistogram.Histogram

	// LatencyGraph is the ordered per-region latency sample sequence,
	// populated when the scan finishes.
	LatencyGraph []model.LatencySample

	// NumErrors counts scan units that could not be read.
	NumErrors uint64

	// Conclusion is the health verdict, set when the scan finishes.
	Conclusion model.Conclusion

	file                  *os.File
	direct                bool
	graphLen              int
	stop                  atomic.Bool
	logger                *slog.Logger
	maxLatencyMsec        uint32
	percentileLatencyMsec uint32
}

// OpenOption configures Open.
type OpenOption func(*Device)

// WithLogger sets the logger used by the device and the scan engine.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) OpenOption {
	return func(d *Device) {
		d.logger = logger
	}
}

// Open opens a block device for scanning after checking its mount state
// against the allowed mount policy. graphLen is the number of latency-graph
// columns the scanned range is divided into.
//
// The mount check happens before the device is touched: a policy violation
// means no file descriptor is ever opened.
func Open(path string, fix bool, graphLen int, allowedMount model.MountPolicy, opts ...OpenOption) (*Device, error) {
	state, err := mount.Check(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check mount state of %s: %w", path, err)
	}
	if !mount.Allowed(state, allowedMount) {
		return nil, fmt.Errorf("%w: %s is %s (policy: %s)", ErrDeviceMounted, path, state, allowedMount)
	}

	d := &Device{
		Path:                  path,
		Fix:                   fix,
		graphLen:              graphLen,
		maxLatencyMsec:        defaultMaxLatencyMsec,
		percentileLatencyMsec: defaultPercentileLatencyMsec,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	f, direct, err := openDevice(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	d.file = f
	d.direct = direct
	if !direct {
		d.logger.Debug("direct I/O unavailable, using buffered reads", "path", path)
	}

	numBytes, sectorSize, err := deviceSize(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to determine size of %s: %w", path, err)
	}
	if numBytes == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("device %s has zero size", path)
	}
	d.NumBytes = numBytes
	d.SectorSize = sectorSize

	d.Histogram = hdrhistogram.New(histogramMinUsec, histogramMaxUsec, histogramSigFigs)

	d.logger.Info("device opened",
		"path", path,
		"numBytes", numBytes,
		"sectorSize", sectorSize,
		"mountState", state.String(),
		"directIO", direct,
	)
	return d, nil
}

// Close releases the device handle. It is idempotent and safe to call on
// every exit path; the strict cleanup invariant is that Close runs once
// Open has succeeded, regardless of scan outcome.
func (d *Device) Close() error {
	if d.file == nil {
		return nil
	}
	f := d.file
	d.file = nil
	return f.Close()
}

// StopScan requests cooperative cancellation of a running scan.
//
// It only flips an atomic flag and is therefore safe to call from a signal
// handling goroutine. The transition is one-way for the run: calling it
// again has no further effect, and the flag is never cleared mid-run.
func (d *Device) StopScan() {
	d.stop.Store(true)
}

// stopped reports whether cancellation has been requested.
func (d *Device) stopped() bool {
	return d.stop.Load()
}
