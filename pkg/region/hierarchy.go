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
	"github.com/dominikbraun/graph"
	pkgerrors "github.com/pkg/errors"
)

func regionName(r *Region) string {
	return r.Name
}

// Hierarchy returns how the registered regions nest, as a directed graph
// keyed by region name. Every region has an edge to each region directly
// nested in it, so regions without predecessors are top level.
func (r *Registry) Hierarchy() (graph.Graph[string, *Region], error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	g := graph.New(regionName, graph.Directed(), graph.Acyclic())
	for _, region := range r.regions.All() {
		if err := g.AddVertex(region); err != nil {
			return nil, pkgerrors.Wrapf(err, "adding region %q", region.Name)
		}
	}
	for _, region := range r.regions.All() {
		parent := r.enclosingLocked(region)
		if parent == nil {
			continue
		}
		if err := g.AddEdge(parent.Name, region.Name); err != nil {
			return nil, pkgerrors.Wrapf(err, "nesting region %q in %q", region.Name, parent.Name)
		}
	}
	return g, nil
}

// enclosingLocked returns the region with the deepest root strictly above the
// root of region, active or not.
func (r *Registry) enclosingLocked(region *Region) *Region {
	for generation := region.Root.Size() - 1; generation >= 0; generation-- {
		ancestor, err := region.Root.Ancestor(generation)
		if err != nil {
			return nil
		}
		if parent, ok := r.regions.Get(ancestor); ok {
			return parent
		}
	}
	return nil
}
