package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/diskscan/internal/log"
	"github.com/nao1215/diskscan/internal/model"
)

// reportFixture returns a finished report for the writer fan-out tests.
func reportFixture() *model.ScanReport {
	start := time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)
	return &model.ScanReport{
		DevicePath:  "/dev/sdc",
		NumBytes:    64 * 1024 * 1024,
		SectorSize:  512,
		Mode:        model.ScanModeSequential,
		ScanSize:    64 * 1024,
		StartSector: 0,
		EndSector:   131072,
		StartedAt:   start,
		FinishedAt:  start.Add(7 * time.Second),
		NumErrors:   0,
		Conclusion:  model.ConclusionPassed,
	}
}

// TestWriteReports tests the terminal and Markdown fan-out of the report.
func TestWriteReports(t *testing.T) {
	t.Parallel()

	t.Run("terminal only", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		writeReports(&out, "", log.NewLogger(io.Discard, 0), reportFixture())

		if !strings.Contains(out.String(), "Conclusion: Disk passed the scan") {
			t.Error("expected the conclusion in the terminal output")
		}
	})

	t.Run("terminal and markdown file", func(t *testing.T) {
		t.Parallel()

		mdPath := filepath.Join(t.TempDir(), "report.md")
		var out bytes.Buffer
		writeReports(&out, mdPath, log.NewLogger(io.Discard, 0), reportFixture())

		if !strings.Contains(out.String(), "/dev/sdc") {
			t.Error("expected the device path in the terminal output")
		}

		data, err := os.ReadFile(mdPath) //nolint:gosec // Test-owned path
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		md := string(data)
		if !strings.Contains(md, "# Diskscan Report") {
			t.Error("expected the report title in the markdown file")
		}
		if !strings.Contains(md, "`/dev/sdc`") {
			t.Error("expected the device path in the markdown file")
		}
	})

	t.Run("unwritable markdown path still reports to the terminal", func(t *testing.T) {
		t.Parallel()

		mdPath := filepath.Join(t.TempDir(), "missing", "report.md")
		var out bytes.Buffer
		writeReports(&out, mdPath, log.NewLogger(io.Discard, 0), reportFixture())

		if !strings.Contains(out.String(), "Conclusion: Disk passed the scan") {
			t.Error("expected the terminal report despite the markdown failure")
		}
	})
}
