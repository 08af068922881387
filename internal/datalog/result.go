package datalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nao1215/diskscan/internal/model"
)

// ResultLog writes the full scan report as indented JSON when the scan
// ends. The file is created at start time so a bad path fails before any
// device I/O happens, matching the raw log's behavior.
type ResultLog struct {
	f *os.File
}

// StartResult creates the result log file.
func StartResult(path string) (*ResultLog, error) {
	f, err := os.Create(path) //nolint:gosec // User-provided log path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create result log: %w", err)
	}
	return &ResultLog{f: f}, nil
}

// End writes the report and closes the file.
func (l *ResultLog) End(report *model.ScanReport) error {
	enc := json.NewEncoder(l.f)
	enc.SetIndent("", "  ")
	encErr := enc.Encode(report)

	if err := l.f.Close(); err != nil && encErr == nil {
		encErr = err
	}
	return encErr
}
