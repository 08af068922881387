package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/diskscan/internal/model"
)

// JSONWriter outputs reports in JSON format for tool integration.
//
// Design decision: standard encoding/json is sufficient here; the report
// is written once per run, so encoding speed is irrelevant.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables indented JSON output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report as JSON.
func (w *JSONWriter) Write(report *model.ScanReport) (int, error) {
	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for clean terminal output.
	data = append(data, '\n')
	return w.output.Write(data)
}
