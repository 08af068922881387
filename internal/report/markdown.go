package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/diskscan/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown.
// This format is designed for documentation and sharing scan results.
//
// Design decision: We use the nao1215/markdown library for fluent,
// type-safe markdown generation with tables and alert blocks.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeVerdict(md, report)
	w.writePercentiles(md, report)
	w.writeGraph(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and the scan parameter table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("Diskscan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Device", "`" + report.DevicePath + "`"},
			{"Size", fmt.Sprintf("%d bytes", report.NumBytes)},
			{"Sector size", fmt.Sprintf("%d bytes", report.SectorSize)},
			{"Scan mode", report.Mode.String()},
			{"Scan unit", fmt.Sprintf("%d bytes", report.ScanSize)},
			{"Sector range", fmt.Sprintf("%d..%d", report.StartSector, report.EndSector)},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration().Round(time.Millisecond).String()},
			{"Read errors", strconv.FormatUint(report.NumErrors, 10)},
		},
	})
	md.PlainText("")
}

// writeVerdict writes an alert block matching the conclusion.
func (w *MarkdownWriter) writeVerdict(md *markdown.Markdown, report *model.ScanReport) {
	switch report.Conclusion {
	case model.ConclusionPassed:
		md.Tip(report.Conclusion.String())
	case model.ConclusionAborted, model.ConclusionScanProblem:
		md.Note(report.Conclusion.String())
	default:
		md.Cautionf("%s", report.Conclusion.String())
	}
	md.PlainText("")
}

// writePercentiles writes the access-time percentile table.
func (w *MarkdownWriter) writePercentiles(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Access Time Percentiles")
	md.PlainText("")

	if len(report.Percentiles) == 0 {
		md.PlainText("No data collected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Percentiles))
	for _, row := range report.Percentiles {
		rows = append(rows, []string{
			fmt.Sprintf("%.1f%%", row.Percentile),
			fmt.Sprintf("%.2f", row.ValueMsec),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Percentile", "Latency (ms)"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeGraph writes the latency graph inside a code block to preserve its
// fixed-width layout.
func (w *MarkdownWriter) writeGraph(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Latency Graph")
	md.PlainText("")

	if len(report.LatencyGraph) == 0 {
		md.PlainText("No data collected.")
		md.PlainText("")
		return
	}

	var sb strings.Builder
	_ = RenderLatencyGraph(&sb, report.LatencyGraph) //nolint:errcheck // strings.Builder cannot fail
	md.CodeBlocks(markdown.SyntaxHighlightText, strings.TrimRight(sb.String(), "\n"))
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainTextf("*Report generated by [diskscan](https://github.com/nao1215/diskscan)*")
}
