package version

import "fmt"

// Set at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func String() string {
	return fmt.Sprintf("chat-gateway version=%s commit=%s build_date=%s", Version, Commit, BuildDate)
}
