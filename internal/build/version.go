// Package build holds version information set via ldflags at release time.
// It has no dependencies on other internal packages.
package build

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)
