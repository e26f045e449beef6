package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestGetUserAgent(t *testing.T) {
	Version, Vcs, Timestamp = "v1.2.3", "abc123", "2026-01-02"
	t.Cleanup(func() { Version, Vcs, Timestamp = "", "", "" })

	want := "fqnctl/v1.2.3 (" + runtime.GOOS + "/" + runtime.GOARCH + ") abc123/2026-01-02"
	require.Equal(t, want, GetUserAgent("fqnctl"))
}

func TestFill(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "f00d"},
			{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name string
		in   Info
		want Info
	}{
		{
			name: "unstamped",
			want: Info{Version: "v0.4.0", Commit: "f00d-dirty", BuildTime: "2026-03-04T05:06:07Z"},
		},
		{
			name: "stamps win",
			in:   Info{Version: "v1.0.0", Commit: "abc", BuildTime: "today"},
			want: Info{Version: "v1.0.0", Commit: "abc", BuildTime: "today"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.fill(bi)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Info (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFillDevelBuild(t *testing.T) {
	var got Info
	got.fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	require.Empty(t, got.Version)
	require.Empty(t, got.Commit)
}
