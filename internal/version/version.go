package version

import "fmt"

// These variables are overridden at build time using -ldflags.
// Keep sensible defaults for local development.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// String renders the build metadata on one line, e.g. "v1.2.0 (abc123, dirty)".
func String() string {
	s := fmt.Sprintf("%s (%s", Version, Commit)
	if Dirty == "true" {
		s += ", dirty"
	}
	if Date != "" {
		s += ", " + Date
	}
	return s + ")"
}
