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
	"slices"
	"testing"

	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/dominikbraun/graph"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestHierarchy(t *testing.T) {
	r := newTestRegistry(t, "/", "/app", "/app/users/admins", "/app/users", "/cache")
	require.NoError(t, r.Register(&Region{Name: "sessions", Root: fqn.FromString("/app/sessions"), Inactive: true}))

	g, err := r.Hierarchy()
	require.NoError(t, err)

	adjacency, err := g.AdjacencyMap()
	require.NoError(t, err)
	got := map[string][]string{}
	for from, edges := range adjacency {
		for to := range edges {
			got[from] = append(got[from], to)
		}
	}
	for _, children := range got {
		slices.Sort(children)
	}
	want := map[string][]string{
		"/":          {"/app", "/cache"},
		"/app":       {"/app/users", "sessions"},
		"/app/users": {"/app/users/admins"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("hierarchy (-want +got):\n%s", diff)
	}

	order, err := graph.TopologicalSort(g)
	require.NoError(t, err)
	require.Equal(t, "/", order[0])

	region, err := g.Vertex("/app/users")
	require.NoError(t, err)
	require.Equal(t, "/app/users", region.Root.String())
}

func TestHierarchyEmpty(t *testing.T) {
	g, err := newTestRegistry(t).Hierarchy()
	require.NoError(t, err)
	order, err := g.Order()
	require.NoError(t, err)
	require.Equal(t, 0, order)
}
