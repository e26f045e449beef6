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

package fqn

import (
	"cmp"
	"slices"
)

// Comparator orders Fqns with Compare. It holds no state; the zero value is
// ready to use.
type Comparator[E comparable] struct{}

// Compare returns Compare(a, b).
func (Comparator[E]) Compare(a, b Fqn[E]) int {
	return Compare(a, b)
}

// Compare returns -1, 0 or +1 as a sorts before, equal to or after b.
//
// Elements are compared pairwise from the root and the first difference
// decides. Strings, numbers and bools use their natural order, types with a
// Compare(E) int method use it, and anything else is ordered by its string
// form. When one Fqn is a prefix of the other the shorter one sorts first, so
// a parent precedes its children. Compare returns 0 only for equal Fqns.
func Compare[E comparable](a, b Fqn[E]) int {
	if a.n == b.n {
		return 0
	}
	ae, be := a.elements(), b.elements()
	for i := range min(len(ae), len(be)) {
		if c := compareElements(ae[i], be[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ae), len(be))
}

// Sort sorts fqns in place in Compare order.
func Sort[E comparable](fqns []Fqn[E]) {
	slices.SortFunc(fqns, Compare[E])
}
