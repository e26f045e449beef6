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
	"slices"

	"github.com/cachekit/treekey/pkg/fqn"
)

// orderedKeys keeps the keys of a Map sorted by fqn.Compare. Because a parent
// sorts directly before its descendants, every subtree is a contiguous run.
type orderedKeys[E comparable] struct {
	keys []fqn.Fqn[E]
}

func (o *orderedKeys[E]) insert(key fqn.Fqn[E]) {
	i, found := o.find(key)
	if found {
		o.keys[i] = key
		return
	}
	o.keys = slices.Insert(o.keys, i, key)
}

// remove returns false if key was not present.
func (o *orderedKeys[E]) remove(key fqn.Fqn[E]) bool {
	i, found := o.find(key)
	if !found {
		return false
	}
	o.keys = slices.Delete(o.keys, i, i+1)
	return true
}

func (o *orderedKeys[E]) find(key fqn.Fqn[E]) (int, bool) {
	return slices.BinarySearchFunc(o.keys, key, fqn.Compare[E])
}

// subtree returns the range [start, end) of keys equal to or below root.
func (o *orderedKeys[E]) subtree(root fqn.Fqn[E]) (int, int) {
	start, _ := o.find(root)
	end := start
	for end < len(o.keys) && o.keys[end].IsChildOrEquals(root) {
		end++
	}
	return start, end
}
