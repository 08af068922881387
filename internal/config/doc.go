// Package config holds scan configuration and its validation.
//
// The configuration is populated from CLI flags and, optionally, a
// .diskscan YAML file with global defaults and per-device overrides.
// Validation happens once, after parsing and before any device is opened;
// no partially-valid configuration is ever handed to the orchestration
// layer.
package config
