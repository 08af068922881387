package report

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Progress drives the textual progress indicator from the scan engine's
// progress callbacks.
//
// The bar is constructed lazily on the first callback because the total
// unit count is only known once the scan starts. Updates are monotone; the
// bar is only ever touched from the main orchestration context, so no
// locking is needed.
type Progress struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// NewProgress creates a progress indicator writing to out.
func NewProgress(out io.Writer) *Progress {
	return &Progress{out: out}
}

// Update advances the indicator to current of total units.
func (p *Progress) Update(current, total int) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Disk scan"),
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionThrottle(65*time.Millisecond),
		)
	}
	_ = p.bar.Set(current) //nolint:errcheck // Display only, never fails the scan
}

// Finish flushes and finalizes the indicator. Safe to call when no
// progress callback ever arrived.
func (p *Progress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish() //nolint:errcheck // Display only
	fmt.Fprintln(p.out)
}
