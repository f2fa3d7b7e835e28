// Package version holds build information set by the linker.
package version

import "fmt"

var (
	// Version is the semantic version of the console.
	Version = "0.1.0"

	// GitCommit is set with -ldflags "-X .../internal/version.GitCommit=...".
	GitCommit = ""
)

// HumanVersion returns the version with the commit, if known.
func HumanVersion() string {
	if GitCommit == "" {
		return "v" + Version
	}
	return fmt.Sprintf("v%s (%s)", Version, GitCommit)
}
