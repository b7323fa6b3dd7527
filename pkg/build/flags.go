// SPDX-License-Identifier: MIT
//
// Package build exposes build metadata (name, version, commit, timestamp)
// embedded into the binary via -ldflags. Unset values fall back to
// development defaults so the binary runs without any linker configuration.
package build

// Package-level variables populated by -ldflags during compilation.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
)

// Info holds the resolved build metadata for the running binary.
type Info struct {
	Name    string
	Time    string
	Commit  string
	Version string
}

// GetInfo returns the build metadata, substituting development defaults for
// any field not set at link time.
func GetInfo() Info {
	info := Info{
		Name:    buildName,
		Time:    buildTime,
		Commit:  buildCommit,
		Version: buildVersion,
	}
	if info.Name == "" {
		info.Name = "quantum-chord-display"
	}
	if info.Time == "" {
		info.Time = "unknown"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	return info
}
