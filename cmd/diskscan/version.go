package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildMetadata is the resolved version information of the running binary.
type buildMetadata struct {
	version string
	commit  string
	date    string
}

// currentBuild resolves the build metadata. Values injected via ldflags
// win; binaries built without them fall back to what the Go toolchain
// embedded, then to placeholders.
func currentBuild() buildMetadata {
	b := buildMetadata{version: version, commit: commit, date: date}

	if info, ok := debug.ReadBuildInfo(); ok {
		if b.version == "" {
			b.version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.commit == "" && s.Value != "" {
					b.commit = s.Value
					if len(b.commit) > 7 {
						b.commit = b.commit[:7]
					}
				}
			case "vcs.time":
				if b.date == "" {
					b.date = s.Value
				}
			}
		}
	}

	if b.version == "" {
		b.version = "(devel)"
	}
	if b.commit == "" {
		b.commit = "unknown"
	}
	if b.date == "" {
		b.date = "unknown"
	}
	return b
}

// getVersion returns the version string shown in the scan banner.
func getVersion() string {
	return currentBuild().version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of diskscan.`,
		Run: func(cmd *cobra.Command, _ []string) {
			b := currentBuild()
			fmt.Fprintf(cmd.OutOrStdout(), "diskscan %s (commit %s, built %s)\n", b.version, b.commit, b.date)
		},
	}
}
