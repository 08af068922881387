// Package main provides the entry point for the diskscan CLI.
//
// Diskscan scans a block device to pinpoint failing and degraded regions
// before they take data with them. It measures per-region access latency,
// renders the distribution as a percentile table and an ASCII latency
// graph, and concludes with a health verdict.
//
// Usage:
//
//	diskscan [flags] /dev/sdX
//	diskscan history /dev/sdX
//
// See --help for all available options.
package main

// main is the entry point for diskscan.
func main() {
	Execute()
}
