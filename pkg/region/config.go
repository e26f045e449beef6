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
	"time"

	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// Config describes the regions of a cache. It is usually read from YAML:
//
//	lookupCacheSize: 256
//	regions:
//	  - name: users
//	    root: /app/users
//	    maxNodes: 1000
//	    ttl: 10m
type Config struct {
	LookupCacheSize int            `json:"lookupCacheSize,omitempty"`
	Regions         []RegionConfig `json:"regions"`
}

// RegionConfig describes a single region. Active defaults to true.
type RegionConfig struct {
	Name     string `json:"name"`
	Root     string `json:"root"`
	MaxNodes int    `json:"maxNodes,omitempty"`
	TTL      string `json:"ttl,omitempty"`
	Active   *bool  `json:"active,omitempty"`
}

// LoadConfig parses a YAML or JSON Config. Unknown fields are rejected.
func LoadConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing region config")
	}
	return cfg, nil
}

// Region converts c into a Region.
func (c RegionConfig) Region() (*Region, error) {
	if c.Root == "" {
		return nil, errors.Wrapf(ErrInvalidRegion, "region %q: root must not be empty, use %q for the whole keyspace", c.Name, fqn.Separator)
	}
	region := &Region{
		Name:     c.Name,
		Root:     fqn.FromString(c.Root),
		MaxNodes: c.MaxNodes,
		Inactive: c.Active != nil && !*c.Active,
	}
	if c.TTL != "" {
		ttl, err := time.ParseDuration(c.TTL)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidRegion, "region %q: %v", c.Name, err)
		}
		region.TTL = ttl
	}
	if err := region.validate(); err != nil {
		return nil, err
	}
	return region, nil
}

// FromConfig builds a Registry holding every region of cfg. A lookup cache
// size set in cfg overrides WithLookupCacheSize.
func FromConfig(cfg *Config, opts ...Option) (*Registry, error) {
	if cfg.LookupCacheSize > 0 {
		opts = append(opts, WithLookupCacheSize(cfg.LookupCacheSize))
	}
	r, err := NewRegistry(opts...)
	if err != nil {
		return nil, err
	}
	for i, rc := range cfg.Regions {
		region, err := rc.Region()
		if err != nil {
			return nil, errors.Wrapf(err, "regions[%d]", i)
		}
		if err := r.Register(region); err != nil {
			return nil, errors.Wrapf(err, "regions[%d]", i)
		}
	}
	return r, nil
}
