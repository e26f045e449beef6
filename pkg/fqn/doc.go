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

// Package fqn provides Fqn, the fully qualified name of a node in a
// tree-structured cache keyspace.
//
// An Fqn is an immutable ordered list of elements. The root Fqn has no
// elements and is the zero value. Only FromString parses the "/" separator:
//
//	fqn.FromString("/people/Smith/Joe")       // three elements
//	fqn.FromElements("people", "Smith", "Joe") // the same Fqn
//	fqn.FromElements("/people/Smith/Joe")      // a single element under root
//
// Fqn values are cheap to copy and safe to share between goroutines.
package fqn
