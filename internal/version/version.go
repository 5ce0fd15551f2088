// Package version reports which build of jeopardy is running. The value shows
// in `jeopardy version`, the terminal board header and the mDNS TXT record of
// an announced browser board, so boards found by `jeopardy scan` can be told
// apart.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Release builds stamp these through ldflags:
//
//	go build -ldflags="-X github.com/muurk/jeopardy/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/jeopardy/internal/version.Commit=abc123" ./cmd/jeopardy
var (
	Version = ""
	Commit  = ""
)

const shortCommit = 7

func init() {
	info, _ := debug.ReadBuildInfo()
	Version, Commit = resolve(Version, Commit, info, time.Now())
}

// resolve fills whatever ldflags left empty. `go install ...@v1.2.3` records
// the module version; a checkout build only has VCS settings, which give a
// dated dev version and a short commit marked -dirty for uncommitted edits.
func resolve(v, commit string, info *debug.BuildInfo, now time.Time) (string, string) {
	if info != nil {
		if v == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}

		settings := make(map[string]string, len(info.Settings))
		for _, s := range info.Settings {
			settings[s.Key] = s.Value
		}

		if rev := settings["vcs.revision"]; commit == "" && rev != "" {
			if len(rev) > shortCommit {
				rev = rev[:shortCommit]
			}
			commit = rev
			if settings["vcs.modified"] == "true" {
				commit += "-dirty"
			}
		}

		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); v == "" && err == nil {
			v = "dev-" + t.Format("20060102")
		}
	}

	if v == "" {
		v = "dev-" + now.Format("20060102-150405")
	}
	if commit == "" {
		commit = "unknown"
	}
	return v, commit
}

// Full returns the version with its commit, as printed by `jeopardy version`.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
