package config

// DeviceConfig holds per-device scan settings from the .diskscan file.
// Zero values mean "not set" and fall back to the defaults section, then
// to the built-in defaults.
type DeviceConfig struct {
	// ScanSize is the scan unit size in the same format accepted by the
	// -e flag (e.g. "64k", "1M").
	ScanSize string `yaml:"scanSize,omitempty"`

	// Mode is the scan order token ("seq" or "random").
	Mode string `yaml:"mode,omitempty"`

	// MaxLatencyMsec overrides the single-read failure threshold.
	MaxLatencyMsec uint32 `yaml:"maxLatencyMsec,omitempty"`

	// PercentileLatencyMsec overrides the 99.9th-percentile failure
	// threshold.
	PercentileLatencyMsec uint32 `yaml:"percentileLatencyMsec,omitempty"`
}

// File represents the structure of the .diskscan configuration file.
type File struct {
	// Defaults contains settings applied to every device unless
	// overridden in the device-specific section.
	Defaults DeviceConfig `yaml:"defaults,omitempty"`

	// Devices maps device paths (e.g. "/dev/sdb") to their settings.
	Devices map[string]DeviceConfig `yaml:"devices,omitempty"`
}

// GetDeviceConfig returns the configuration for a device path, merging the
// device-specific section over the defaults section.
func (cf *File) GetDeviceConfig(devicePath string) DeviceConfig {
	result := cf.Defaults

	if dc, ok := cf.Devices[devicePath]; ok {
		if dc.ScanSize != "" {
			result.ScanSize = dc.ScanSize
		}
		if dc.Mode != "" {
			result.Mode = dc.Mode
		}
		if dc.MaxLatencyMsec != 0 {
			result.MaxLatencyMsec = dc.MaxLatencyMsec
		}
		if dc.PercentileLatencyMsec != 0 {
			result.PercentileLatencyMsec = dc.PercentileLatencyMsec
		}
	}

	return result
}
