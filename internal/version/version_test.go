package version

import (
	"runtime/debug"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	vcs := func(modified string) *debug.BuildInfo {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2026-02-01T10:00:00Z"},
				{Key: "vcs.modified", Value: modified},
			},
		}
	}

	tests := []struct {
		name       string
		v, commit  string
		info       *debug.BuildInfo
		wantV      string
		wantCommit string
	}{
		{"ldflags win", "v1.2.3", "abc123", vcs("true"), "v1.2.3", "abc123"},
		{"checkout build", "", "", vcs("false"), "dev-20260201", "0123456"},
		{"dirty checkout", "", "", vcs("true"), "dev-20260201", "0123456-dirty"},
		{"go install", "", "", &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}}, "v0.4.0", "unknown"},
		{"no build info", "", "", nil, "dev-20260304-050607", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, commit := resolve(tt.v, tt.commit, tt.info, now)
			if v != tt.wantV {
				t.Errorf("version = %q, want %q", v, tt.wantV)
			}
			if commit != tt.wantCommit {
				t.Errorf("commit = %q, want %q", commit, tt.wantCommit)
			}
		})
	}
}
