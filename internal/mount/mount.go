// Package mount detects the mount state of block devices and checks it
// against the configured mount policy before any device I/O begins.
package mount

import "github.com/nao1215/diskscan/internal/model"

// State is the observed mount state of a device.
type State int

const (
	// NotMounted means no filesystem on the device is currently mounted.
	NotMounted State = iota

	// MountedRO means the device (or a partition on it) is mounted
	// read-only.
	MountedRO

	// MountedRW means the device (or a partition on it) is mounted
	// read-write.
	MountedRW
)

// String returns a human-readable representation of the mount state.
func (s State) String() string {
	switch s {
	case NotMounted:
		return "not mounted"
	case MountedRO:
		return "mounted read-only"
	case MountedRW:
		return "mounted read-write"
	default:
		return "unknown"
	}
}

// Check returns the mount state of the given device path.
// On platforms without mount table support it reports NotMounted.
func Check(devicePath string) (State, error) {
	return check(devicePath)
}

// Allowed reports whether a device in the given state may be scanned under
// the given policy. Each policy level permits everything the previous level
// permits: NotMounted permits only unmounted devices, MountedRO additionally
// permits read-only mounts, MountedRW permits everything.
func Allowed(state State, policy model.MountPolicy) bool {
	switch state {
	case NotMounted:
		return true
	case MountedRO:
		return policy >= model.MountPolicyMountedRO
	case MountedRW:
		return policy >= model.MountPolicyMountedRW
	default:
		return false
	}
}
