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
	"fmt"
	"iter"
	"slices"
	"strings"

	"go.uber.org/atomic"
)

// Separator separates the elements of an Fqn in its string form.
const Separator = "/"

// Fqn is a fully qualified name: the path of elements leading from the root of
// a tree to one of its nodes. An Fqn never changes once built; operations that
// derive a new name return a new Fqn.
//
// The zero value is the root Fqn. Element equality is Go's ==, so an Fqn[any]
// holding uncomparable dynamic values panics when compared.
type Fqn[E comparable] struct {
	n *names[E]
}

type names[E comparable] struct {
	elements []E

	// Zero means not yet computed for both cells. Concurrent callers may
	// compute the same value twice.
	hash atomic.Uint64
	str  atomic.String
}

// newFqn takes ownership of elements.
func newFqn[E comparable](elements []E) Fqn[E] {
	if len(elements) == 0 {
		return Fqn[E]{}
	}
	return Fqn[E]{n: &names[E]{elements: elements}}
}

func (f Fqn[E]) elements() []E {
	if f.n == nil {
		return nil
	}
	return f.n.elements
}

// Root returns the root Fqn, which has no elements.
func Root[E comparable]() Fqn[E] {
	return Fqn[E]{}
}

// FromElements returns an Fqn made of elements, in order. Elements are never
// split on Separator.
func FromElements[E comparable](elements ...E) Fqn[E] {
	return newFqn(slices.Clone(elements))
}

// FromList returns an Fqn made of the elements of list. Later changes to list
// do not affect the returned Fqn.
func FromList[E comparable](list []E) Fqn[E] {
	return newFqn(slices.Clone(list))
}

// FromRelativeElements returns the Fqn of relative below base.
func FromRelativeElements[E comparable](base Fqn[E], relative ...E) Fqn[E] {
	if len(relative) == 0 {
		return base
	}
	be := base.elements()
	out := make([]E, 0, len(be)+len(relative))
	out = append(out, be...)
	out = append(out, relative...)
	return newFqn(out)
}

// FromRelativeFqn returns the Fqn of relative below base.
func FromRelativeFqn[E comparable](base, relative Fqn[E]) Fqn[E] {
	return FromRelativeElements(base, relative.elements()...)
}

// FromString parses a Separator delimited string such as "/a/b/c".
// "" and "/" are the root. One leading separator is optional. Trailing empty
// elements are dropped but empty elements between separators are kept, so
// "/a//b" has three elements.
func FromString(s string) Fqn[string] {
	if s == "" || s == Separator {
		return Root[string]()
	}
	elements := strings.Split(strings.TrimPrefix(s, Separator), Separator)
	for len(elements) > 0 && elements[len(elements)-1] == "" {
		elements = elements[:len(elements)-1]
	}
	return newFqn(elements)
}

// Size returns the number of elements. The root has none.
func (f Fqn[E]) Size() int {
	return len(f.elements())
}

// IsRoot reports whether f is the root Fqn.
func (f Fqn[E]) IsRoot() bool {
	return f.n == nil
}

// Get returns the element at index n.
func (f Fqn[E]) Get(n int) (E, error) {
	elements := f.elements()
	if n < 0 || n >= len(elements) {
		var zero E
		return zero, fmt.Errorf("%w: index %d of %q with %d elements", ErrOutOfRange, n, f, len(elements))
	}
	return elements[n], nil
}

// LastElement returns the last element, or false for the root.
func (f Fqn[E]) LastElement() (E, bool) {
	elements := f.elements()
	if len(elements) == 0 {
		var zero E
		return zero, false
	}
	return elements[len(elements)-1], true
}

// LastElementAsString returns the string form of the last element, or
// Separator for the root.
func (f Fqn[E]) LastElementAsString() string {
	last, ok := f.LastElement()
	if !ok {
		return Separator
	}
	return elementString(last)
}

// HasElement reports whether any element of f equals e.
func (f Fqn[E]) HasElement(e E) bool {
	return slices.Contains(f.elements(), e)
}

// Parent returns f without its last element. The parent of the root is the
// root.
func (f Fqn[E]) Parent() Fqn[E] {
	elements := f.elements()
	if len(elements) <= 1 {
		return Root[E]()
	}
	return f.sub(0, len(elements)-1)
}

// Ancestor returns the first generation elements of f. Ancestor(0) is the root
// and Ancestor(f.Size()) is f.
func (f Fqn[E]) Ancestor(generation int) (Fqn[E], error) {
	if generation < 0 || generation > f.Size() {
		return Fqn[E]{}, fmt.Errorf("%w: generation %d of %q", ErrOutOfRange, generation, f)
	}
	return f.sub(0, generation), nil
}

// SubFqn returns the elements of f in [start, end).
func (f Fqn[E]) SubFqn(start, end int) (Fqn[E], error) {
	if end < start {
		return Fqn[E]{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, start, end)
	}
	if start < 0 || end > f.Size() {
		return Fqn[E]{}, fmt.Errorf("%w: [%d, %d) of %q with %d elements", ErrOutOfRange, start, end, f, f.Size())
	}
	return f.sub(start, end), nil
}

// sub shares the backing array, elements are never written after construction.
func (f Fqn[E]) sub(start, end int) Fqn[E] {
	if start == 0 && end == f.Size() {
		return f
	}
	return newFqn(f.elements()[start:end:end])
}

// IsChildOf reports whether f is a descendant of parent. An Fqn is not a child
// of itself.
func (f Fqn[E]) IsChildOf(parent Fqn[E]) bool {
	return parent.Size() != f.Size() && f.IsChildOrEquals(parent)
}

// IsDirectChildOf reports whether f is a child of parent exactly one level
// below it.
func (f Fqn[E]) IsDirectChildOf(parent Fqn[E]) bool {
	return f.Size() == parent.Size()+1 && f.IsChildOf(parent)
}

// IsChildOrEquals reports whether parent is a prefix of f.
func (f Fqn[E]) IsChildOrEquals(parent Fqn[E]) bool {
	pe, e := parent.elements(), f.elements()
	if len(pe) > len(e) {
		return false
	}
	// Siblings usually share a long prefix, so differences show up at the end.
	for i := len(pe) - 1; i >= 0; i-- {
		if pe[i] != e[i] {
			return false
		}
	}
	return true
}

// ReplaceAncestor returns f with its oldAncestor prefix replaced by
// newAncestor. f must be a child of oldAncestor.
func (f Fqn[E]) ReplaceAncestor(oldAncestor, newAncestor Fqn[E]) (Fqn[E], error) {
	if !f.IsChildOf(oldAncestor) {
		return Fqn[E]{}, fmt.Errorf("%w: %q is not an ancestor of %q", ErrInvalidArgument, oldAncestor, f)
	}
	return FromRelativeElements(newAncestor, f.elements()[oldAncestor.Size():]...), nil
}

// PeekElements returns a copy of the elements of f.
func (f Fqn[E]) PeekElements() []E {
	return slices.Clone(f.elements())
}

// All iterates over the index and value of each element without copying.
func (f Fqn[E]) All() iter.Seq2[int, E] {
	return slices.All(f.elements())
}

// Equal reports whether f and other have the same elements in the same order.
func (f Fqn[E]) Equal(other Fqn[E]) bool {
	if f.n == other.n {
		return true
	}
	a, b := f.elements(), other.elements()
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Hash returns a hash of the elements of f. Equal Fqns have equal hashes, and
// the hash is never zero.
func (f Fqn[E]) Hash() uint64 {
	if f.n == nil {
		return hashElements[E](nil)
	}
	if h := f.n.hash.Load(); h != 0 {
		return h
	}
	h := hashElements(f.n.elements)
	f.n.hash.Store(h)
	return h
}

// Compare orders f relative to other, see Compare.
func (f Fqn[E]) Compare(other Fqn[E]) int {
	return Compare(f, other)
}

// String returns f as "/e1/e2/.../en", or "/" for the root. Elements whose
// string form is empty or Separator are left out.
func (f Fqn[E]) String() string {
	if f.n == nil {
		return Separator
	}
	if s := f.n.str.Load(); s != "" {
		return s
	}
	s := render(f.n.elements)
	f.n.str.Store(s)
	return s
}

func render[E comparable](elements []E) string {
	result := strings.Builder{}
	for _, e := range elements {
		s := elementString(e)
		if s == Separator || s == "" {
			continue
		}
		result.WriteString(Separator)
		result.WriteString(s)
	}
	if result.Len() == 0 {
		return Separator
	}
	return result.String()
}
