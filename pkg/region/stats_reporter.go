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
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	lookupMetricName  = "region_lookups"
	regionsMetricName = "regions"
	resultKey         = "result"
)

type lookupResult string

const (
	// lookupHit is a lookup that found a region.
	lookupHit lookupResult = "hit"
	// lookupMiss is a lookup that found no region.
	lookupMiss lookupResult = "miss"
	// lookupCached is a lookup answered from the lookup cache.
	lookupCached lookupResult = "cached"
)

type reporter struct {
	lookups metric.Int64Counter
}

// newStatsReporter creates a reporter for region metrics. count is called on
// every collection of the regions gauge.
func newStatsReporter(meter metric.Meter, count func() int64) (*reporter, error) {
	r := &reporter{}
	var err error
	r.lookups, err = meter.Int64Counter(
		lookupMetricName,
		metric.WithDescription("Number of region lookups by result"))
	if err != nil {
		return nil, err
	}
	_, err = meter.Int64ObservableGauge(
		regionsMetricName,
		metric.WithDescription("Number of registered regions"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			observer.Observe(count())
			return nil
		}))
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *reporter) reportLookup(ctx context.Context, result lookupResult) {
	r.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String(resultKey, string(result))))
}
