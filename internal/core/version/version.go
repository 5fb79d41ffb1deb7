// Package version reports what build is running
package version

import (
	"runtime"
	"runtime/debug"
)

// BuildInfo describes one binary's build
type BuildInfo struct {
	Service   string `json:"service" example:"babyfood-api"`
	Version   string `json:"version" example:"v0.3.0"`
	Commit    string `json:"commit" example:"4f1c2ab"`
	Date      string `json:"date" example:"2024-03-06"`
	GoVersion string `json:"go_version" example:"go1.25.0"`
}

// set with -ldflags "-X babyfood/internal/core/version.version=v0.3.0 -X ...commit=4f1c2ab -X ...date=2024-03-06"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	readBuildInfo = debug.ReadBuildInfo // seam
)

// Info returns service's build info; an unstamped build falls back to the vcs settings go embeds
func Info(service string) BuildInfo {
	bi := BuildInfo{
		Service:   service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
	if commit != "none" {
		return bi
	}
	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				bi.Commit = s.Value
				if len(bi.Commit) > 12 {
					bi.Commit = bi.Commit[:12]
				}
			case "vcs.time":
				bi.Date = s.Value
			}
		}
	}
	return bi
}
