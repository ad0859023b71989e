// Package version holds build information injected at link time.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/waylandify/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/waylandify/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/waylandify/internal/version.Date={{.Date}}
)

// Full returns the version followed by the commit and build date, as shown
// by --version.
func Full() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
