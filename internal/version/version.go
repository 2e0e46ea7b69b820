// Package version exposes build metadata injected via -ldflags.
package version

// Populated at build time with
// -ldflags "-X .../internal/version.Version=v1.2.3 ...".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)
