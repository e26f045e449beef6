package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build stamps, set with -ldflags "-X github.com/cachekit/treekey/pkg/version.Version=...".
// Stamps left empty are filled from the module build info when possible.
var (
	Version   string
	Vcs       string
	Timestamp string
)

// Info describes the running binary.
type Info struct {
	Program   string `json:"program"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	Platform  string `json:"platform"`
	GoVersion string `json:"goVersion"`
}

// Get returns the Info of program.
func Get(program string) Info {
	info := Info{
		Program:   program,
		Version:   Version,
		Commit:    Vcs,
		BuildTime: Timestamp,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fill(bi)
	}
	return info
}

// fill sets the fields the build stamps left empty from bi.
func (i *Info) fill(bi *debug.BuildInfo) {
	if i.Version == "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	var modified bool
	commit := i.Commit
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "" {
				i.Commit = s.Value
			}
		case "vcs.time":
			if i.BuildTime == "" {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if modified && commit == "" && i.Commit != "" {
		i.Commit += "-dirty"
	}
}

// UserAgent formats i as <program>/<version> (<goos>/<goarch>) <commit>/<build time>.
func (i Info) UserAgent() string {
	return fmt.Sprintf("%s/%s (%s) %s/%s", i.Program, i.Version, i.Platform, i.Commit, i.BuildTime)
}

// GetUserAgent returns the user agent of program.
func GetUserAgent(program string) string {
	return Get(program).UserAgent()
}
