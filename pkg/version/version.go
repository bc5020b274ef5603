// Package version reports the orgboard build version, set at link time with
//
//	-ldflags "-X github.com/rshade/orgboard/pkg/version.version=v1.2.3"
package version

import "runtime/debug"

//nolint:gochecknoglobals // Set via -ldflags at build time.
var (
	version   = ""
	gitCommit = ""
)

// GetVersion returns the linked version, the module version recorded in the build
// info, or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// GetGitCommit returns the linked commit hash, or "unknown".
func GetGitCommit() string {
	if gitCommit != "" {
		return gitCommit
	}
	return "unknown"
}
