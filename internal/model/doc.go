// Package model defines the core data structures shared across diskscan.
//
// This package contains the scan-mode, mount-policy, and conclusion
// enumerations, the per-region latency sample, and the ScanReport structure
// consumed by the report writers, the JSON data log, and the history
// database.
//
// Design decision: We keep all shared types in a single leaf package with no
// dependencies on other internal packages. This prevents import cycles
// between the scan engine, the configuration layer, and the report writers.
package model
