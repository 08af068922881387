package config

import (
	"errors"
	"testing"

	"github.com/nao1215/diskscan/internal/model"
)

// TestNewConfig verifies the default values. The defaults double as the
// documented behavior of a bare `diskscan <device>` invocation, so changes
// here should be intentional.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Mode is sequential", func(t *testing.T) {
		t.Parallel()
		if cfg.Mode != model.ScanModeSequential {
			t.Errorf("expected sequential mode, got %v", cfg.Mode)
		}
	})

	t.Run("default ScanSize is 64 KiB", func(t *testing.T) {
		t.Parallel()
		if cfg.ScanSize != 64*1024 {
			t.Errorf("expected 65536, got %d", cfg.ScanSize)
		}
	})

	t.Run("default MountPolicy refuses mounted devices", func(t *testing.T) {
		t.Parallel()
		if cfg.MountPolicy != model.MountPolicyNotMounted {
			t.Errorf("expected MountPolicyNotMounted, got %v", cfg.MountPolicy)
		}
	})

	t.Run("default latency thresholds", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxLatencyMsec != 10000 {
			t.Errorf("expected MaxLatencyMsec 10000, got %d", cfg.MaxLatencyMsec)
		}
		if cfg.PercentileLatencyMsec != 1000 {
			t.Errorf("expected PercentileLatencyMsec 1000, got %d", cfg.PercentileLatencyMsec)
		}
	})

	t.Run("default SaveHistory is enabled", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveHistory {
			t.Error("expected SaveHistory to be true")
		}
	})
}

// TestConfigValidate tests the validation rules one by one.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.DevicePath = "/dev/sdb"
		return cfg
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing device path", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.DevicePath = ""
		if err := cfg.Validate(); !errors.Is(err, ErrNoDevicePath) {
			t.Errorf("expected ErrNoDevicePath, got %v", err)
		}
	})

	t.Run("zero scan size", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ScanSize = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidScanSize) {
			t.Errorf("expected ErrInvalidScanSize, got %v", err)
		}
	})

	t.Run("scan size above maximum", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ScanSize = MaxScanSize + 512
		if err := cfg.Validate(); !errors.Is(err, ErrScanSizeTooLarge) {
			t.Errorf("expected ErrScanSizeTooLarge, got %v", err)
		}
	})

	t.Run("scan size not sector aligned", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ScanSize = 1000
		if err := cfg.Validate(); !errors.Is(err, ErrScanSizeNotSectorMultiple) {
			t.Errorf("expected ErrScanSizeNotSectorMultiple, got %v", err)
		}
	})

	t.Run("end sector before start sector", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.StartSector = 100
		cfg.EndSector = 50
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidSectorRange) {
			t.Errorf("expected ErrInvalidSectorRange, got %v", err)
		}
	})

	t.Run("end sector zero means device end", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.StartSector = 100
		cfg.EndSector = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("zero latency threshold", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxLatencyMsec = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidLatencyThreshold) {
			t.Errorf("expected ErrInvalidLatencyThreshold, got %v", err)
		}
	})
}
