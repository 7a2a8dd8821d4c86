// Package version holds build information injected at link time via
// -ldflags "-X github.com/jackzampolin/sides/version.GitRelease=...".
package version

import "runtime"

var (
	// GitRelease is the release tag or branch name.
	GitRelease = "dev"

	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the date of that commit.
	GitCommitDate = "unknown"

	// GoInfo is the Go toolchain used for the build.
	GoInfo = runtime.Version()
)
