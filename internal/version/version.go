// Package version reports how the swatch binary was built.
//
// Release builds inject Version, Commit and Date with ldflags, e.g.
//
//	-ldflags "-X github.com/jmylchreest/swatch/internal/version.Version=1.0.0"
//
// Builds without ldflags fall back to the module version and VCS stamps the
// Go toolchain records in the binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

// Injected at build time.
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// Info describes a build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo merges injected values with the binary's embedded build info.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if build, ok := debug.ReadBuildInfo(); ok {
		info = fromBuildInfo(info, build)
	}
	return info
}

// fromBuildInfo fills fields left at their defaults from build.
func fromBuildInfo(info Info, build *debug.BuildInfo) Info {
	if info.Version == "dev" && build.Main.Version != "" && build.Main.Version != "(devel)" {
		info.Version = build.Main.Version
	}
	for _, s := range build.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unknown {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String returns a one-line description of the build.
func String() string {
	return GetInfo().String()
}

// String formats the build as "swatch version v (commit: c, built: d, go, os/arch)".
func (i Info) String() string {
	if i.Commit == unknown || i.Date == unknown {
		return fmt.Sprintf("swatch version %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	}
	commit := shortCommit(i.Commit)
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("swatch version %s (commit: %s, built: %s, %s, %s)",
		i.Version, commit, i.Date, i.GoVersion, i.Platform)
}

// Short returns the version alone, for cobra's --version.
func Short() string {
	return GetInfo().Version
}

func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
