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

package fqnmap

import (
	"testing"

	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/google/go-cmp/cmp"
)

func paths(ss ...string) []fqn.Fqn[string] {
	out := make([]fqn.Fqn[string], len(ss))
	for i, s := range ss {
		out[i] = fqn.FromString(s)
	}
	return out
}

func strs(keys []fqn.Fqn[string]) []string {
	var out []string
	for _, k := range keys {
		out = append(out, k.String())
	}
	return out
}

func TestOrderedKeys_Insert(t *testing.T) {
	testCases := []struct {
		name   string
		before []string
		insert string
		want   []string
	}{
		{
			name:   "add to empty",
			before: nil,
			insert: "/a",
			want:   []string{"/a"},
		},
		{
			name:   "add to beginning",
			before: []string{"/b"},
			insert: "/a",
			want:   []string{"/a", "/b"},
		},
		{
			name:   "add to end",
			before: []string{"/a"},
			insert: "/b",
			want:   []string{"/a", "/b"},
		},
		{
			name:   "child after parent",
			before: []string{"/a", "/b"},
			insert: "/a/z",
			want:   []string{"/a", "/a/z", "/b"},
		},
		{
			name:   "root first",
			before: []string{"/a", "/b"},
			insert: "/",
			want:   []string{"/", "/a", "/b"},
		},
		{
			name:   "duplicate",
			before: []string{"/a", "/b"},
			insert: "/b",
			want:   []string{"/a", "/b"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := orderedKeys[string]{}
			for _, k := range paths(tc.before...) {
				o.insert(k)
			}
			o.insert(fqn.FromString(tc.insert))

			if diff := cmp.Diff(tc.want, strs(o.keys)); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestOrderedKeys_Remove(t *testing.T) {
	testCases := []struct {
		name    string
		before  []string
		remove  string
		want    []string
		removed bool
	}{
		{
			name:    "remove from empty",
			remove:  "/a",
			removed: false,
		},
		{
			name:    "remove only",
			before:  []string{"/a"},
			remove:  "/a",
			removed: true,
		},
		{
			name:    "remove middle",
			before:  []string{"/a", "/a/b", "/c"},
			remove:  "/a/b",
			want:    []string{"/a", "/c"},
			removed: true,
		},
		{
			name:    "missing",
			before:  []string{"/a", "/c"},
			remove:  "/b",
			want:    []string{"/a", "/c"},
			removed: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := orderedKeys[string]{}
			for _, k := range paths(tc.before...) {
				o.insert(k)
			}
			if got := o.remove(fqn.FromString(tc.remove)); got != tc.removed {
				t.Errorf("remove() = %t, want %t", got, tc.removed)
			}
			if diff := cmp.Diff(tc.want, strs(o.keys)); diff != "" {
				t.Error(diff)
			}
		})
	}
}
