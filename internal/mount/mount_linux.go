//go:build linux

package mount

import (
	"bufio"
	"os"
	"strings"
)

// mountsFile is the kernel mount table. /proc/self/mounts reflects the
// caller's mount namespace, unlike the legacy /etc/mtab.
const mountsFile = "/proc/self/mounts"

// check scans the mount table for the device or any of its partitions.
// A whole-disk path like /dev/sdb also matches mounted partitions such as
// /dev/sdb1, since scanning the disk touches the partition's blocks too.
func check(devicePath string) (State, error) {
	f, err := os.Open(mountsFile)
	if err != nil {
		// No mount table (e.g. minimal container): treat as unmounted
		// rather than refusing to scan.
		if os.IsNotExist(err) {
			return NotMounted, nil
		}
		return NotMounted, err
	}
	defer f.Close()

	state := NotMounted
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		source, options := fields[0], fields[3]

		if !matchesDevice(source, devicePath) {
			continue
		}

		if hasReadWriteOption(options) {
			// Read-write is the worst case; no need to keep looking.
			return MountedRW, nil
		}
		state = MountedRO
	}
	if err := scanner.Err(); err != nil {
		return NotMounted, err
	}

	return state, nil
}

// matchesDevice reports whether a mount table source refers to the device
// itself or a partition of it.
func matchesDevice(source, devicePath string) bool {
	if source == devicePath {
		return true
	}
	if !strings.HasPrefix(source, devicePath) {
		return false
	}
	// Partition suffixes are digits, optionally preceded by "p"
	// (/dev/sdb1, /dev/nvme0n1p2, /dev/mmcblk0p1).
	rest := strings.TrimPrefix(source, devicePath)
	rest = strings.TrimPrefix(rest, "p")
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// hasReadWriteOption reports whether a mount options string contains "rw".
func hasReadWriteOption(options string) bool {
	for _, opt := range strings.Split(options, ",") {
		if opt == "rw" {
			return true
		}
	}
	return false
}
