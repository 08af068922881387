package model

// MountPolicy is the rule governing whether a scan may proceed against a
// currently-mounted device and in what mode.
//
// The policy is ordered: each level permits everything the previous level
// permits. NotMounted is the default because scanning a device while a
// filesystem is writing to it produces misleading latency numbers and, with
// fix-intent set, can corrupt the filesystem.
type MountPolicy int

const (
	// MountPolicyNotMounted requires the target device to be unmounted.
	// This is the default.
	MountPolicyNotMounted MountPolicy = iota

	// MountPolicyMountedRO additionally allows a device that is mounted
	// read-only.
	MountPolicyMountedRO

	// MountPolicyMountedRW additionally allows a device that is mounted
	// read-write. This is the most permissive level.
	MountPolicyMountedRW
)

// String returns a human-readable representation of the mount policy.
func (p MountPolicy) String() string {
	switch p {
	case MountPolicyNotMounted:
		return "not-mounted"
	case MountPolicyMountedRO:
		return "mounted-ro"
	case MountPolicyMountedRW:
		return "mounted-rw"
	default:
		return "unknown"
	}
}
