/*

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package region

import (
	"testing"
	"time"

	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const testConfig = `
lookupCacheSize: 16
regions:
  - name: users
    root: /app/users
    maxNodes: 1000
    ttl: 10m
  - name: sessions
    root: app/sessions
    active: false
  - name: everything
    root: /
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig([]byte(testConfig))
	require.NoError(t, err)
	require.Equal(t, 16, cfg.LookupCacheSize)
	require.Len(t, cfg.Regions, 3)

	type view struct {
		Name     string
		Root     []string
		MaxNodes int
		TTL      time.Duration
		Inactive bool
	}
	var got []view
	for _, rc := range cfg.Regions {
		region, err := rc.Region()
		require.NoError(t, err)
		got = append(got, view{
			Name:     region.Name,
			Root:     region.Root.PeekElements(),
			MaxNodes: region.MaxNodes,
			TTL:      region.TTL,
			Inactive: region.Inactive,
		})
	}
	want := []view{
		{Name: "users", Root: []string{"app", "users"}, MaxNodes: 1000, TTL: 10 * time.Minute},
		{Name: "sessions", Root: []string{"app", "sessions"}, Inactive: true},
		{Name: "everything", Root: nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("regions (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "unknown field",
			input: "regions:\n  - name: a\n    root: /a\n    color: blue\n",
		},
		{
			name:  "not yaml",
			input: "regions: [",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig([]byte(tt.input))
			require.Error(t, err)
		})
	}
}

func TestRegionConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		rc   RegionConfig
	}{
		{name: "empty root", rc: RegionConfig{Name: "a"}},
		{name: "empty name", rc: RegionConfig{Root: "/a"}},
		{name: "bad ttl", rc: RegionConfig{Name: "a", Root: "/a", TTL: "soon"}},
		{name: "negative ttl", rc: RegionConfig{Name: "a", Root: "/a", TTL: "-1s"}},
		{name: "negative max nodes", rc: RegionConfig{Name: "a", Root: "/a", MaxNodes: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rc.Region()
			require.ErrorIs(t, err, ErrInvalidRegion)
		})
	}
}

func TestFromConfig(t *testing.T) {
	cfg, err := LoadConfig([]byte(testConfig))
	require.NoError(t, err)

	r, err := FromConfig(cfg)
	require.NoError(t, err)
	require.Len(t, r.Regions(), 3)

	users, ok := r.Get("users")
	require.True(t, ok)
	require.True(t, users.Root.Equal(fqn.FromString("/app/users")))
}

func TestFromConfigConflict(t *testing.T) {
	cfg := &Config{Regions: []RegionConfig{
		{Name: "a", Root: "/x"},
		{Name: "b", Root: "x/"},
	}}
	_, err := FromConfig(cfg)
	require.ErrorIs(t, err, ErrConflict)
	require.Contains(t, err.Error(), "regions[1]")
}
