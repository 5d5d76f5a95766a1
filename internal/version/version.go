// Package version reports the tmux-alert build.
package version

import "runtime/debug"

// Version is the version of tmux-alert. This can be overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. This can be overridden at build time using ldflags.
var Commit = "unknown"

var readBuildInfo = debug.ReadBuildInfo

// String returns the full version string including the commit hash if available.
func String() string {
	if c := commit(); c != "unknown" {
		return Version + "+" + c
	}
	return Version
}

// commit falls back to the revision stamped by the go tool when no ldflags were given.
func commit() string {
	if Commit != "unknown" {
		return Commit
	}
	info, ok := readBuildInfo()
	if !ok {
		return Commit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return Commit
}
