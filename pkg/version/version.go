// Package version provides version information for the application.
//
// This package defines version constants and utilities for accessing version
// information throughout the application. It centralizes version management
// to ensure consistent version reporting across all components.
package version

import "runtime/debug"

// Version is the gantry release version. It is overridden at build time via
// -ldflags for tagged releases.
var Version = "0.0.0-dev"

// Revision is the VCS revision compiled into the binary, with a "-dirty"
// suffix when the working tree had local modifications.
var Revision = getRevision()

func getRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	revision := "unknown"
	modified := false

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if modified {
		revision += "-dirty"
	}

	return revision
}
