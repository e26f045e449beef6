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

// Package fqnmap provides a map keyed by fqn.Fqn.
//
// Fqn values share state through a pointer, so Go's == on two Fqns tests
// identity rather than structure and Fqns cannot key a built in map directly.
// Map buckets keys by Fqn.Hash and matches them with Fqn.Equal.
package fqnmap

import (
	"iter"
	"slices"

	"github.com/cachekit/treekey/pkg/fqn"
)

type entry[E comparable, V any] struct {
	key   fqn.Fqn[E]
	value V
}

// Map maps Fqns to values and iterates in fqn.Compare order. The zero value is
// an empty map ready to use. A Map is not safe for concurrent use.
type Map[E comparable, V any] struct {
	buckets map[uint64][]entry[E, V]
	ordered orderedKeys[E]
}

// New returns an empty Map.
func New[E comparable, V any]() *Map[E, V] {
	return &Map[E, V]{}
}

func (m *Map[E, V]) lookup(key fqn.Fqn[E]) (uint64, int) {
	h := key.Hash()
	for i, e := range m.buckets[h] {
		if e.key.Equal(key) {
			return h, i
		}
	}
	return h, -1
}

// Put stores value under key and returns the value it replaced, if any.
func (m *Map[E, V]) Put(key fqn.Fqn[E], value V) (V, bool) {
	if m.buckets == nil {
		m.buckets = make(map[uint64][]entry[E, V])
	}
	h, i := m.lookup(key)
	if i >= 0 {
		old := m.buckets[h][i].value
		m.buckets[h][i].value = value
		return old, true
	}
	m.buckets[h] = append(m.buckets[h], entry[E, V]{key: key, value: value})
	m.ordered.insert(key)
	var zero V
	return zero, false
}

// Get returns the value stored under key.
func (m *Map[E, V]) Get(key fqn.Fqn[E]) (V, bool) {
	h, i := m.lookup(key)
	if i < 0 {
		var zero V
		return zero, false
	}
	return m.buckets[h][i].value, true
}

// Delete removes key and reports whether it was present.
func (m *Map[E, V]) Delete(key fqn.Fqn[E]) bool {
	h, i := m.lookup(key)
	if i < 0 {
		return false
	}
	m.deleteAt(h, i)
	m.ordered.remove(key)
	return true
}

func (m *Map[E, V]) deleteAt(h uint64, i int) {
	bucket := slices.Delete(m.buckets[h], i, i+1)
	if len(bucket) == 0 {
		delete(m.buckets, h)
		return
	}
	m.buckets[h] = bucket
}

// DeleteSubtree removes root and all keys below it, returning how many keys
// were removed.
func (m *Map[E, V]) DeleteSubtree(root fqn.Fqn[E]) int {
	start, end := m.ordered.subtree(root)
	for _, key := range m.ordered.keys[start:end] {
		h, i := m.lookup(key)
		m.deleteAt(h, i)
	}
	m.ordered.keys = slices.Delete(m.ordered.keys, start, end)
	return end - start
}

// Len returns the number of keys.
func (m *Map[E, V]) Len() int {
	return len(m.ordered.keys)
}

// Keys returns the keys in fqn.Compare order.
func (m *Map[E, V]) Keys() []fqn.Fqn[E] {
	return slices.Clone(m.ordered.keys)
}

// All iterates over all entries in fqn.Compare order. The map must not be
// modified during iteration.
func (m *Map[E, V]) All() iter.Seq2[fqn.Fqn[E], V] {
	return m.rangeOf(0, len(m.ordered.keys))
}

// Subtree iterates over root and the keys below it in fqn.Compare order.
func (m *Map[E, V]) Subtree(root fqn.Fqn[E]) iter.Seq2[fqn.Fqn[E], V] {
	return m.rangeOf(m.ordered.subtree(root))
}

func (m *Map[E, V]) rangeOf(start, end int) iter.Seq2[fqn.Fqn[E], V] {
	return func(yield func(fqn.Fqn[E], V) bool) {
		for _, key := range m.ordered.keys[start:end] {
			v, _ := m.Get(key)
			if !yield(key, v) {
				return
			}
		}
	}
}
