// Package version carries build information stamped in by the linker:
//
//	-X github.com/arthur-debert/svcgen/internal/version.Version=v1.2.0
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String is the multi-line form printed by `svcgen version`
func String() string {
	return fmt.Sprintf("svcgen version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
