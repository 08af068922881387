// Package disk implements the scan engine: it opens a block device under
// the configured mount policy, reads it in fixed-size scan units while
// measuring per-read access latency, and accumulates the latency histogram
// and the per-region latency samples behind the latency graph.
//
// The engine pushes progress and per-unit results to a Reporter
// synchronously, in scan order, with the done callback always last. It
// polls a cooperative stop flag at scan-unit boundaries, so cancellation
// latency is bounded by the duration of a single read.
package disk
