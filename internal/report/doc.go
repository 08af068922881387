// Package report renders scan results for humans and machines.
//
// It contains the progress indicator driven by the scan engine's progress
// callbacks, the ASCII latency-graph renderer, and writers for the three
// output formats:
//   - SimpleWriter: human-readable terminal output
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for documentation
//
// Writers implement the Writer interface, allowing them to be composed for
// multi-format output.
package report
