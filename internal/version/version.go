// Package version holds build metadata. The variables are set via ldflags:
//
//	go build -ldflags "-X github.com/dshills/duet/internal/version.Version=1.2.0"
package version

import "fmt"

// Name is the program name shown in the title bar.
const Name = "duet"

// Build information.
var (
	Version = "0.1.0"
	Commit  = "unknown"
	Date    = "unknown"
)

// Title returns "<name> v<version>".
func Title() string {
	return fmt.Sprintf("%s v%s", Name, Version)
}

// Long returns the multi-line text printed by --version.
func Long() string {
	return fmt.Sprintf("%s %s\nCommit: %s\nBuilt: %s\n", Name, Version, Commit, Date)
}
