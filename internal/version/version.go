// Package version holds the hl build information.
package version

// Set with -ldflags "-X github.com/open-cli-collective/highlight-cli/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
