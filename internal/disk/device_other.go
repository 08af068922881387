//go:build !linux

package disk

import "os"

// openDevice opens the path with buffered reads. Direct I/O is a Linux
// only optimization in this engine.
func openDevice(path string) (*os.File, bool, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided device path is intentional
	if err != nil {
		return nil, false, err
	}
	return f, false, nil
}

// deviceSize returns the stat size and a 512-byte sector size.
func deviceSize(f *os.File) (uint64, uint64, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, 0, err
	}
	return uint64(fi.Size()), 512, nil
}

// alignedBuffer has no alignment requirement without direct I/O.
func alignedBuffer(size int) []byte {
	return make([]byte, size)
}
