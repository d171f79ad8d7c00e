// Package version reports what build is running
package version

import (
	"runtime/debug"
	"sync"
)

// Service is the name the API, the CLI and the logs go by
const Service = "lookalike"

// set with -ldflags "-X lookalike/internal/core/version.version=v0.3.0 -X ...commit=... -X ...date=..."
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build stamp. Commit and date fall back to the vcs
// settings go embeds when ldflags left them empty.
func Info() BuildInfo { return info() }

var info = sync.OnceValue(func() BuildInfo {
	bi := BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
	if d, ok := debug.ReadBuildInfo(); ok {
		fillVCS(&bi, d.Settings)
	}
	if bi.Commit == "" {
		bi.Commit = "unknown"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
})

func fillVCS(bi *BuildInfo, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch {
		case s.Key == "vcs.revision" && bi.Commit == "":
			bi.Commit = s.Value
		case s.Key == "vcs.time" && bi.Date == "":
			bi.Date = s.Value
		}
	}
}

// Short trims a commit hash to seven characters
func Short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
