package stamp

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version is the release version. Release builds may override it with
// -ldflags "-X github.com/totocaster/stamp.Version=...".
var Version = strings.TrimSpace(embeddedVersion)

// Commit and Date are stamped by the release pipeline.
var (
	Commit = "none"
	Date   = "unknown"
)
