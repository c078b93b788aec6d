package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/idiomset/internal/app.Version=1.0.0"
// Unset values fall back to the module and VCS info embedded by the go tool.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs and the version command.
func BuildVersion() string {
	v, c, b := Version, Commit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		v, c, b = fromBuildInfo(info, v, c, b)
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", v, c, b)
}

func fromBuildInfo(info *debug.BuildInfo, version, commit, built string) (string, string, string) {
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" {
				commit = s.Value
			}
		case "vcs.time":
			if built == "unknown" {
				built = s.Value
			}
		}
	}
	return version, commit, built
}
