package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/diskscan/internal/config"
	"github.com/nao1215/diskscan/internal/model"
)

// TestNewRootCmd tests the root command surface.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if !strings.HasPrefix(cmd.Use, "diskscan") {
			t.Errorf("expected use to start with 'diskscan', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for flag, shorthand := range map[string]string{
			"verbose":          "v",
			"fix":              "f",
			"scan":             "s",
			"size":             "e",
			"output":           "o",
			"raw-log":          "r",
			"start-sector":     "S",
			"end-sector":       "E",
			"force-mounted":    "",
			"force-mounted-rw": "",
			"markdown":         "m",
			"config":           "c",
			"no-history":       "",
		} {
			f := cmd.Flags().Lookup(flag)
			if f == nil {
				t.Errorf("expected flag %q", flag)
				continue
			}
			if f.Shorthand != shorthand {
				t.Errorf("expected shorthand %q for %q, got %q", shorthand, flag, f.Shorthand)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{"history [device]": false, "init": false, "version": false}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Use]; ok {
				want[sub.Use] = true
			}
		}
		for use, found := range want {
			if !found {
				t.Errorf("expected subcommand %q", use)
			}
		}
	})
}

// parseConfig runs the flag parser and buildConfig the way runRootCmd does.
func parseConfig(t *testing.T, argv []string) (*config.Config, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.ParseFlags(argv); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	cfg, err := buildConfig(cmd, cmd.Flags().Args())
	return cfg, out.String(), err
}

// TestBuildConfig tests command line to Config translation.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("device only uses the defaults", func(t *testing.T) {
		t.Parallel()
		cfg, _, err := parseConfig(t, []string{"/dev/sdb"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DevicePath != "/dev/sdb" {
			t.Errorf("expected device '/dev/sdb', got %q", cfg.DevicePath)
		}
		if cfg.ScanSize != 64*1024 {
			t.Errorf("expected default scan size 65536, got %d", cfg.ScanSize)
		}
		if cfg.Mode != model.ScanModeSequential {
			t.Errorf("expected sequential mode, got %v", cfg.Mode)
		}
		if cfg.MountPolicy != model.MountPolicyNotMounted {
			t.Errorf("expected the not-mounted policy, got %v", cfg.MountPolicy)
		}
		if !cfg.SaveHistory {
			t.Error("expected history saving by default")
		}
	})

	t.Run("no device fails", func(t *testing.T) {
		t.Parallel()
		_, _, err := parseConfig(t, nil)
		if !errors.Is(err, errNoDevice) {
			t.Errorf("expected errNoDevice, got %v", err)
		}
	})

	t.Run("two devices fail", func(t *testing.T) {
		t.Parallel()
		_, _, err := parseConfig(t, []string{"/dev/sda", "/dev/sdb"})
		if !errors.Is(err, errTooManyDevices) {
			t.Errorf("expected errTooManyDevices, got %v", err)
		}
	})

	t.Run("size flag with suffix", func(t *testing.T) {
		t.Parallel()
		cfg, _, err := parseConfig(t, []string{"-e", "4k", "/dev/sdb"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ScanSize != 4096 {
			t.Errorf("expected 4096, got %d", cfg.ScanSize)
		}
	})

	t.Run("oversized scan size fails", func(t *testing.T) {
		t.Parallel()
		_, _, err := parseConfig(t, []string{"-e", "64M", "/dev/sdb"})
		if !errors.Is(err, errUnknownScanSize) {
			t.Errorf("expected errUnknownScanSize, got %v", err)
		}
	})

	t.Run("random scan mode", func(t *testing.T) {
		t.Parallel()
		cfg, _, err := parseConfig(t, []string{"-s", "random", "/dev/sdb"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Mode != model.ScanModeRandom {
			t.Errorf("expected random mode, got %v", cfg.Mode)
		}
	})

	t.Run("unknown scan mode degrades to sequential", func(t *testing.T) {
		t.Parallel()
		cfg, out, err := parseConfig(t, []string{"-s", "butterfly", "/dev/sdb"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Mode != model.ScanModeSequential {
			t.Errorf("expected sequential fallback, got %v", cfg.Mode)
		}
		if !strings.Contains(out, "Unknown scan mode butterfly given, using sequential") {
			t.Errorf("expected a fallback warning, got %q", out)
		}
	})

	t.Run("force-mounted allows read-only mounts", func(t *testing.T) {
		t.Parallel()
		cfg, _, err := parseConfig(t, []string{"--force-mounted", "/dev/sdb"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MountPolicy != model.MountPolicyMountedRO {
			t.Errorf("expected the mounted-ro policy, got %v", cfg.MountPolicy)
		}
	})

	t.Run("force-mounted-rw wins over force-mounted", func(t *testing.T) {
		t.Parallel()
		cfg, _, err := parseConfig(t, []string{"--force-mounted", "--force-mounted-rw", "/dev/sdb"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MountPolicy != model.MountPolicyMountedRW {
			t.Errorf("expected the mounted-rw policy, got %v", cfg.MountPolicy)
		}
	})

	t.Run("sector range flags", func(t *testing.T) {
		t.Parallel()
		cfg, _, err := parseConfig(t, []string{"-S", "2048", "-E", "409600", "/dev/sdb"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.StartSector != 2048 || cfg.EndSector != 409600 {
			t.Errorf("expected sectors 2048..409600, got %d..%d", cfg.StartSector, cfg.EndSector)
		}
	})

	t.Run("no-history disables saving", func(t *testing.T) {
		t.Parallel()
		cfg, _, err := parseConfig(t, []string{"--no-history", "/dev/sdb"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.SaveHistory {
			t.Error("expected SaveHistory to be false")
		}
	})

	t.Run("explicit missing config file fails", func(t *testing.T) {
		t.Parallel()
		_, _, err := parseConfig(t, []string{"-c", filepath.Join(t.TempDir(), "nope"), "/dev/sdb"})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

// TestBuildConfigWithFile tests the flag-over-file-over-defaults merge.
func TestBuildConfigWithFile(t *testing.T) {
	t.Parallel()

	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), ".diskscan")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		return path
	}

	t.Run("file values fill unset flags", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `defaults:
  scanSize: "128k"
  mode: "random"
devices:
  "/dev/sdb":
    maxLatencyMsec: 5000
`)
		cfg, _, err := parseConfig(t, []string{"-c", path, "/dev/sdb"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ScanSize != 128*1024 {
			t.Errorf("expected scan size from file, got %d", cfg.ScanSize)
		}
		if cfg.Mode != model.ScanModeRandom {
			t.Errorf("expected mode from file, got %v", cfg.Mode)
		}
		if cfg.MaxLatencyMsec != 5000 {
			t.Errorf("expected threshold from file, got %d", cfg.MaxLatencyMsec)
		}
	})

	t.Run("flags beat the file", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `defaults:
  scanSize: "128k"
  mode: "random"
`)
		cfg, _, err := parseConfig(t, []string{"-c", path, "-e", "4k", "-s", "seq", "/dev/sdb"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ScanSize != 4096 {
			t.Errorf("expected the flag scan size, got %d", cfg.ScanSize)
		}
		if cfg.Mode != model.ScanModeSequential {
			t.Errorf("expected the flag mode, got %v", cfg.Mode)
		}
	})

	t.Run("bad size in file fails", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `defaults:
  scanSize: "64G"
`)
		_, _, err := parseConfig(t, []string{"-c", path, "/dev/sdb"})
		if !errors.Is(err, errUnknownScanSize) {
			t.Errorf("expected errUnknownScanSize, got %v", err)
		}
	})
}
