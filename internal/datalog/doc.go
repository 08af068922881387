// Package datalog implements the machine-readable scan logs: a raw log
// that streams one JSON entry per read, and a result log that writes the
// full scan report as JSON when the scan ends.
//
// The raw log accepts entries through a buffered channel drained by its own
// goroutine, so JSON encoding and file I/O never sit on the timed read
// path.
package datalog
