//go:build linux

package disk

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// openDevice opens the path with O_DIRECT so reads hit the medium instead
// of the page cache. Filesystems and kernels that refuse O_DIRECT get a
// buffered fallback; latency numbers are then optimistic but still useful.
func openDevice(path string) (*os.File, bool, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECT, 0)
	if err == nil {
		return os.NewFile(uintptr(fd), path), true, nil
	}

	f, err := os.Open(path) //nolint:gosec // User-provided device path is intentional
	if err != nil {
		return nil, false, err
	}
	return f, false, nil
}

// deviceSize returns the size and logical sector size of the open device.
// Regular files (used by tests) fall back to stat size and 512-byte
// sectors.
func deviceSize(f *os.File) (uint64, uint64, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, 0, err
	}
	if fi.Mode().IsRegular() {
		return uint64(fi.Size()), 512, nil
	}

	// BLKGETSIZE64 writes 8 bytes, so the target must be a uint64 even on
	// 32-bit platforms where a Go int is only 4 bytes wide.
	fd := f.Fd()
	var numBytes uint64
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, unix.BLKGETSIZE64,
		uintptr(unsafe.Pointer(&numBytes))); errno != 0 {
		return 0, 0, os.NewSyscallError("ioctl", errno)
	}
	sectorSize, err := unix.IoctlGetUint32(int(fd), unix.BLKSSZGET)
	if err != nil {
		return 0, 0, err
	}
	return numBytes, uint64(sectorSize), nil
}

// alignedBuffer returns a page-aligned buffer as required by O_DIRECT.
func alignedBuffer(size int) []byte {
	const align = 4096
	buf := make([]byte, size+align)
	offset := int(align - uintptr(unsafe.Pointer(&buf[0]))%align)
	if offset == align {
		offset = 0
	}
	return buf[offset : offset+size]
}
