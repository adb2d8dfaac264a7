// Package version reports build information set through -ldflags
package version

// BuildInfo holds version information about the build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Set at build time:
//
//	-ldflags "-X 'qrforge/internal/core/version.version=v0.1.0' -X 'qrforge/internal/core/version.commit=abcd'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information
func Info() BuildInfo {
	return BuildInfo{Service: "qrforge", Version: version, Commit: commit, Date: date}
}
