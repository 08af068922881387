package config

import (
	"errors"
	"testing"
)

// TestParseScanSize tests the scan size string parser.
// The accepted format mirrors the -e flag documentation: a C-style number
// with an optional B, K, or M suffix.
func TestParseScanSize(t *testing.T) {
	t.Parallel()

	t.Run("plain decimal number", func(t *testing.T) {
		t.Parallel()
		got, err := ParseScanSize("65536")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 65536 {
			t.Errorf("expected 65536, got %d", got)
		}
	})

	t.Run("kilobyte suffix lowercase", func(t *testing.T) {
		t.Parallel()
		got, err := ParseScanSize("4k")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 4096 {
			t.Errorf("expected 4096, got %d", got)
		}
	})

	t.Run("kilobyte suffix uppercase", func(t *testing.T) {
		t.Parallel()
		got, err := ParseScanSize("64K")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 64*1024 {
			t.Errorf("expected %d, got %d", 64*1024, got)
		}
	})

	t.Run("megabyte suffix", func(t *testing.T) {
		t.Parallel()
		got, err := ParseScanSize("2M")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 2*1024*1024 {
			t.Errorf("expected %d, got %d", 2*1024*1024, got)
		}
	})

	t.Run("byte suffix is a no-op multiplier", func(t *testing.T) {
		t.Parallel()
		got, err := ParseScanSize("512b")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 512 {
			t.Errorf("expected 512, got %d", got)
		}
	})

	t.Run("hex literal", func(t *testing.T) {
		t.Parallel()
		got, err := ParseScanSize("0x200")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 512 {
			t.Errorf("expected 512, got %d", got)
		}
	})

	t.Run("hex literal ending in b is not a suffix", func(t *testing.T) {
		t.Parallel()
		got, err := ParseScanSize("0x1b")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 27 {
			t.Errorf("expected 27, got %d", got)
		}
	})

	t.Run("maximum size is accepted", func(t *testing.T) {
		t.Parallel()
		got, err := ParseScanSize("32M")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != MaxScanSize {
			t.Errorf("expected %d, got %d", MaxScanSize, got)
		}
	})

	t.Run("above maximum with suffix is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParseScanSize("64M")
		if !errors.Is(err, ErrScanSizeTooLarge) {
			t.Errorf("expected ErrScanSizeTooLarge, got %v", err)
		}
	})

	t.Run("above maximum without suffix is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParseScanSize("33554433")
		if !errors.Is(err, ErrScanSizeTooLarge) {
			t.Errorf("expected ErrScanSizeTooLarge, got %v", err)
		}
	})

	t.Run("unknown suffix is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParseScanSize("4g")
		if !errors.Is(err, ErrUnknownSizeSuffix) {
			t.Errorf("expected ErrUnknownSizeSuffix, got %v", err)
		}
	})

	t.Run("empty string is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParseScanSize("")
		if !errors.Is(err, ErrInvalidScanSize) {
			t.Errorf("expected ErrInvalidScanSize, got %v", err)
		}
	})

	t.Run("non-numeric string is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParseScanSize("abc")
		if err == nil {
			t.Error("expected an error for non-numeric input")
		}
	})

	t.Run("suffix without number is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParseScanSize("k")
		if !errors.Is(err, ErrInvalidScanSize) {
			t.Errorf("expected ErrInvalidScanSize, got %v", err)
		}
	})

	t.Run("zero is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParseScanSize("0")
		if !errors.Is(err, ErrInvalidScanSize) {
			t.Errorf("expected ErrInvalidScanSize, got %v", err)
		}
	})

	t.Run("negative is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParseScanSize("-512")
		if !errors.Is(err, ErrInvalidScanSize) {
			t.Errorf("expected ErrInvalidScanSize, got %v", err)
		}
	})
}
