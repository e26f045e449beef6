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

// Package region maps subtrees of the cache keyspace to regions. A region owns
// its root Fqn and everything below it unless a deeper region claims part of
// that subtree.
package region

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/cachekit/treekey/pkg/fqnmap"
	"github.com/cachekit/treekey/pkg/logging"
	"github.com/go-logr/logr"
	lru "github.com/hashicorp/golang-lru/v2"
	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const defaultLookupCacheSize = 128

// Base errors for registering regions.
var (
	ErrConflict      = errors.New("conflicting region")
	ErrInvalidRegion = errors.New("invalid region")
)

// Region is a named subtree of the keyspace with its own eviction settings.
type Region struct {
	Name string
	Root fqn.Fqn[string]
	// MaxNodes bounds the number of nodes kept in the region, 0 is unbounded.
	MaxNodes int
	// TTL is how long an idle node stays in the region, 0 never expires.
	TTL time.Duration
	// Inactive regions are registered but own nothing; Find passes over them
	// to the nearest active ancestor region.
	Inactive bool
}

// Contains reports whether f is the root of the region or below it.
func (r *Region) Contains(f fqn.Fqn[string]) bool {
	return f.IsChildOrEquals(r.Root)
}

func (r *Region) validate() error {
	if r.Name == "" {
		return pkgerrors.Wrap(ErrInvalidRegion, "name must not be empty")
	}
	if r.MaxNodes < 0 {
		return pkgerrors.Wrapf(ErrInvalidRegion, "region %q: maxNodes must not be negative, got %d", r.Name, r.MaxNodes)
	}
	if r.TTL < 0 {
		return pkgerrors.Wrapf(ErrInvalidRegion, "region %q: ttl must not be negative, got %s", r.Name, r.TTL)
	}
	return nil
}

// lookup is a cached Find result. region is nil when no region owns key.
type lookup struct {
	key    fqn.Fqn[string]
	region *Region
}

// Registry holds the regions of a cache. It is safe for concurrent use.
type Registry struct {
	mux     sync.RWMutex
	regions fqnmap.Map[string, *Region]
	names   map[string]*Region

	// lookups is keyed by Fqn.Hash, entries are checked with Fqn.Equal.
	lookups  *lru.Cache[uint64, lookup]
	reporter *reporter
	log      logr.Logger

	cacheSize     int
	meterProvider metric.MeterProvider
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used by the Registry.
func WithLogger(log logr.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithLookupCacheSize sets how many Find results are cached.
func WithLookupCacheSize(size int) Option {
	return func(r *Registry) {
		r.cacheSize = size
	}
}

// WithMeterProvider sets where lookup metrics are reported. The global otel
// MeterProvider is used by default.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Registry) {
		r.meterProvider = mp
	}
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		names:     make(map[string]*Region),
		log:       logr.Discard(),
		cacheSize: defaultLookupCacheSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.meterProvider == nil {
		r.meterProvider = otel.GetMeterProvider()
	}

	var err error
	r.lookups, err = lru.New[uint64, lookup](r.cacheSize)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "creating lookup cache of size %d", r.cacheSize)
	}
	r.reporter, err = newStatsReporter(r.meterProvider.Meter("treekey"), r.count)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "creating stats reporter")
	}
	return r, nil
}

func (r *Registry) count() int64 {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return int64(r.regions.Len())
}

// Register adds region. Two regions may not share a name or a root.
func (r *Registry) Register(region *Region) error {
	if region == nil {
		return pkgerrors.Wrap(ErrInvalidRegion, "nil region")
	}
	if err := region.validate(); err != nil {
		return err
	}

	r.mux.Lock()
	defer r.mux.Unlock()

	if existing, ok := r.regions.Get(region.Root); ok {
		return pkgerrors.Wrapf(ErrConflict, "root %q of region %q is already the root of region %q", region.Root, region.Name, existing.Name)
	}
	if existing, ok := r.names[region.Name]; ok {
		return pkgerrors.Wrapf(ErrConflict, "region %q already exists with root %q", region.Name, existing.Root)
	}

	r.regions.Put(region.Root, region)
	r.names[region.Name] = region
	r.lookups.Purge()
	r.log.Info("registered region", logging.Region, region.Name, logging.RegionRoot, region.Root.String())
	return nil
}

// Unregister removes the region rooted at root and reports whether there was
// one.
func (r *Registry) Unregister(root fqn.Fqn[string]) bool {
	r.mux.Lock()
	defer r.mux.Unlock()

	region, ok := r.regions.Get(root)
	if !ok {
		return false
	}
	r.regions.Delete(root)
	delete(r.names, region.Name)
	r.lookups.Purge()
	r.log.Info("unregistered region", logging.Region, region.Name, logging.RegionRoot, root.String())
	return true
}

// Get returns the region named name.
func (r *Registry) Get(name string) (*Region, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	region, ok := r.names[name]
	return region, ok
}

// Find returns the region owning f: the active region with the deepest root
// that f is equal to or below.
func (r *Registry) Find(ctx context.Context, f fqn.Fqn[string]) (*Region, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	h := f.Hash()
	if l, ok := r.lookups.Get(h); ok && l.key.Equal(f) {
		r.reporter.reportLookup(ctx, lookupCached)
		return l.region, l.region != nil
	}

	region := r.findLocked(f)
	r.lookups.Add(h, lookup{key: f, region: region})

	result := lookupHit
	if region == nil {
		result = lookupMiss
	}
	r.reporter.reportLookup(ctx, result)
	r.log.V(1).Info("region lookup", logging.Fqn, f.String(), logging.LookupResult, string(result))
	return region, region != nil
}

func (r *Registry) findLocked(f fqn.Fqn[string]) *Region {
	for generation := f.Size(); generation >= 0; generation-- {
		ancestor, err := f.Ancestor(generation)
		if err != nil {
			return nil
		}
		if region, ok := r.regions.Get(ancestor); ok && !region.Inactive {
			return region
		}
	}
	return nil
}

// Regions returns all regions ordered by root.
func (r *Registry) Regions() []*Region {
	r.mux.RLock()
	defer r.mux.RUnlock()

	out := make([]*Region, 0, r.regions.Len())
	for _, region := range r.regions.All() {
		out = append(out, region)
	}
	return out
}

// Subregions returns the regions whose roots are strictly below root, ordered
// by root.
func (r *Registry) Subregions(root fqn.Fqn[string]) []*Region {
	r.mux.RLock()
	defer r.mux.RUnlock()

	var out []*Region
	for key, region := range r.regions.Subtree(root) {
		if key.IsChildOf(root) {
			out = append(out, region)
		}
	}
	return out
}
