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
	"testing"

	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/metric/metricdata/metricdatatest"
)

func findMetric(t *testing.T, rm *metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	t.Fatalf("metric %q not collected", name)
	return metricdata.Metrics{}
}

func TestReportLookups(t *testing.T) {
	ctx := context.Background()
	rdr := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(rdr))

	r, err := NewRegistry(WithMeterProvider(mp))
	require.NoError(t, err)
	require.NoError(t, r.Register(&Region{Name: "users", Root: fqn.FromString("/app/users")}))

	r.Find(ctx, fqn.FromString("/app/users/42"))
	r.Find(ctx, fqn.FromString("/app/users/42"))
	r.Find(ctx, fqn.FromString("/other"))

	rm := &metricdata.ResourceMetrics{}
	require.NoError(t, rdr.Collect(ctx, rm))

	want := metricdata.Metrics{
		Name:        lookupMetricName,
		Description: "Number of region lookups by result",
		Data: metricdata.Sum[int64]{
			Temporality: metricdata.CumulativeTemporality,
			IsMonotonic: true,
			DataPoints: []metricdata.DataPoint[int64]{
				{Attributes: attribute.NewSet(attribute.String(resultKey, string(lookupHit))), Value: 1},
				{Attributes: attribute.NewSet(attribute.String(resultKey, string(lookupCached))), Value: 1},
				{Attributes: attribute.NewSet(attribute.String(resultKey, string(lookupMiss))), Value: 1},
			},
		},
	}
	metricdatatest.AssertEqual(t, want, findMetric(t, rm, lookupMetricName), metricdatatest.IgnoreTimestamp())
}

func TestReportRegionCount(t *testing.T) {
	ctx := context.Background()
	rdr := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(rdr))

	r, err := NewRegistry(WithMeterProvider(mp))
	require.NoError(t, err)
	for _, root := range []string{"/a", "/b"} {
		require.NoError(t, r.Register(&Region{Name: root, Root: fqn.FromString(root)}))
	}

	rm := &metricdata.ResourceMetrics{}
	require.NoError(t, rdr.Collect(ctx, rm))

	want := metricdata.Metrics{
		Name:        regionsMetricName,
		Description: "Number of registered regions",
		Data: metricdata.Gauge[int64]{
			DataPoints: []metricdata.DataPoint[int64]{
				{Attributes: attribute.NewSet(), Value: 2},
			},
		},
	}
	metricdatatest.AssertEqual(t, want, findMetric(t, rm, regionsMetricName), metricdatatest.IgnoreTimestamp())
}
