package cmd

import "fmt"

// Version information - these can be set during build with ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func versionString() string {
	return fmt.Sprintf("fetch_tool %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
