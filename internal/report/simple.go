package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/diskscan/internal/model"
)

// SimpleWriter outputs the human-readable terminal report: the device
// summary, the access-time percentile table, the latency graph, and the
// final conclusion line.
//
// Design decision: plain ASCII without ANSI colors, so the output works in
// every terminal and pipes cleanly to files.
type SimpleWriter struct {
	baseWriter

	// printer formats byte counts with thousands grouping.
	printer *message.Printer
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	w.writeSummary(&sb, report)
	w.writeHistogram(&sb, report)
	w.writeGraph(&sb, report)

	fmt.Fprintf(&sb, "\nConclusion: %s\n", report.Conclusion)

	return w.output.Write([]byte(sb.String()))
}

// writeSummary writes the device and scan parameter summary.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Device:      %s\n", report.DevicePath)
	fmt.Fprintf(sb, "Size:        %s bytes (%s-byte sectors)\n",
		w.printer.Sprintf("%d", report.NumBytes),
		w.printer.Sprintf("%d", report.SectorSize))
	fmt.Fprintf(sb, "Scan:        %s, %s bytes per unit, sectors %d..%d\n",
		report.Mode,
		w.printer.Sprintf("%d", report.ScanSize),
		report.StartSector, report.EndSector)
	fmt.Fprintf(sb, "Duration:    %s\n", report.Duration().Round(time.Millisecond))
	if report.NumErrors > 0 {
		fmt.Fprintf(sb, "Read errors: %d\n", report.NumErrors)
	}
}

// writeHistogram writes the access-time percentile table.
func (w *SimpleWriter) writeHistogram(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\nAccess time histogram:\n")
	if len(report.Percentiles) == 0 {
		sb.WriteString("  no data\n")
		return
	}

	sb.WriteString("  Percentile   Latency (ms)\n")
	for _, row := range report.Percentiles {
		fmt.Fprintf(sb, "  %9.1f%%  %12.2f\n", row.Percentile, row.ValueMsec)
	}
}

// writeGraph writes the latency-over-position chart.
func (w *SimpleWriter) writeGraph(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\nLatency graph:\n")
	if len(report.LatencyGraph) == 0 {
		sb.WriteString("  no data\n")
		return
	}
	// strings.Builder never returns a write error.
	_ = RenderLatencyGraph(sb, report.LatencyGraph) //nolint:errcheck
}
