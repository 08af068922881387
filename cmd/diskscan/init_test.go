package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "init" {
			t.Errorf("expected use 'init', got %q", cmd.Use)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.DefValue != configFileName {
			t.Errorf("expected default %q, got %q", configFileName, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("force") == nil {
			t.Fatal("expected force flag")
		}
	})
}

// TestRunInitCmd tests the init command execution.
func TestRunInitCmd(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), ".diskscan")

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", outputPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read generated config: %v", err)
		}
		if !strings.Contains(string(content), "defaults:") {
			t.Error("expected config to contain 'defaults:'")
		}
		if !strings.Contains(string(content), "devices:") {
			t.Error("expected config to contain 'devices:'")
		}
	})

	t.Run("fails if file exists without force", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), ".diskscan")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", outputPath})

		if err := cmd.Execute(); err == nil {
			t.Error("expected an error for an existing file")
		}
	})

	t.Run("force overwrites existing file", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), ".diskscan")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", outputPath, "-f"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read generated config: %v", err)
		}
		if string(content) == "existing" {
			t.Error("expected the file to be overwritten")
		}
	})

	t.Run("generated file loads as valid configuration", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), ".diskscan")

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", outputPath})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg, _, err := parseConfig(t, []string{"-c", outputPath, "/dev/sdb"})
		if err != nil {
			t.Fatalf("generated config failed to load: %v", err)
		}
		if cfg.ScanSize != 64*1024 {
			t.Errorf("expected the documented default scan size, got %d", cfg.ScanSize)
		}
	})
}
