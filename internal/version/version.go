package version

import "fmt"

var (
	// Version is set via ldflags during build
	Version = "dev"
	// Commit is set via ldflags during build
	Commit = ""
)

// Short returns the version string
func Short() string {
	return Version
}

// Long returns the version string with the commit when one was stamped
func Long() string {
	if Commit == "" {
		return fmt.Sprintf("beacon %s", Version)
	}
	return fmt.Sprintf("beacon %s (%s)", Version, Commit)
}
