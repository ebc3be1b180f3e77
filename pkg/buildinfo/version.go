// Package buildinfo carries build-time version information, injected via
// ldflags:
//
//	go build -ldflags "-X github.com/loadstone/loadstone/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/loadstone/loadstone/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/loadstone/loadstone/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version, "dev" for untagged builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template for cobra's --version output.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
