// Package version exposes build metadata set at link time.
package version

var (
	// Version is the release version, set via -ldflags at build time.
	Version = "dev"

	// Commit is the git commit hash the binary was built from.
	Commit = "unknown"
)
