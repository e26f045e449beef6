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

// Package metrics builds the otel MeterProvider that treekey components
// report to, backed by a Prometheus registry or an OTLP endpoint.
package metrics

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const (
	NoneBackend        = "none"
	PrometheusBackend  = "prometheus"
	OTLPBackend        = "opentelemetry"
	StackdriverBackend = "stackdriver"

	defaultMetricsCollectInterval = 10 * time.Second
	defaultMetricsTimeout         = 30 * time.Second
)

// Options selects and configures a metrics backend.
type Options struct {
	// Backend is one of NoneBackend, PrometheusBackend, OTLPBackend or
	// StackdriverBackend.
	Backend string
	// ServiceName is attached to every exported metric as service.name.
	ServiceName string
	// OTLPEndpoint is the host:port of an OTLP/HTTP collector.
	OTLPEndpoint string
	// Interval is how often metrics are pushed to OTLPEndpoint or Cloud
	// Monitoring.
	Interval time.Duration
	Views    []sdkmetric.View
}

// Provider is a MeterProvider bound to one backend.
type Provider struct {
	metric.MeterProvider

	sdk      *sdkmetric.MeterProvider
	registry *prometheus.Registry
}

// NewProvider creates the Provider for opts.Backend. NoneBackend returns a
// Provider that drops every measurement.
func NewProvider(ctx context.Context, opts Options) (*Provider, error) {
	var (
		reader sdkmetric.Reader
		res    *resource.Resource
	)
	p := &Provider{}

	switch strings.ToLower(opts.Backend) {
	case "", NoneBackend:
		p.MeterProvider = noop.NewMeterProvider()
		return p, nil
	case PrometheusBackend:
		p.registry = prometheus.NewRegistry()
		exp, err := otelprom.New(otelprom.WithRegisterer(p.registry))
		if err != nil {
			return nil, errors.Wrap(err, "creating prometheus exporter")
		}
		reader = exp
	case OTLPBackend:
		if opts.OTLPEndpoint == "" {
			return nil, errors.New("an otlp endpoint must be specified")
		}
		exp, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithInsecure(), otlpmetrichttp.WithEndpoint(opts.OTLPEndpoint))
		if err != nil {
			return nil, errors.Wrap(err, "creating otlp exporter")
		}
		reader = sdkmetric.NewPeriodicReader(exp,
			sdkmetric.WithTimeout(defaultMetricsTimeout),
			sdkmetric.WithInterval(interval(opts)))
	case StackdriverBackend:
		var err error
		reader, res, err = newStackdriverReader(ctx, interval(opts))
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unsupported metrics backend %q", opts.Backend)
	}

	if opts.ServiceName != "" {
		service := resource.NewSchemaless(attribute.String("service.name", opts.ServiceName))
		if res == nil {
			res = service
		} else {
			merged, err := resource.Merge(res, service)
			if err != nil {
				return nil, errors.Wrap(err, "merging resources")
			}
			res = merged
		}
	}

	options := []sdkmetric.Option{sdkmetric.WithReader(reader), sdkmetric.WithView(opts.Views...)}
	if res != nil {
		options = append(options, sdkmetric.WithResource(res))
	}
	p.sdk = sdkmetric.NewMeterProvider(options...)
	p.MeterProvider = p.sdk
	return p, nil
}

func interval(opts Options) time.Duration {
	if opts.Interval <= 0 {
		return defaultMetricsCollectInterval
	}
	return opts.Interval
}

// WriteText writes the current metrics in the Prometheus text format. It only
// writes for the Prometheus backend.
func (p *Provider) WriteText(w io.Writer) error {
	if p.registry == nil {
		return nil
	}
	families, err := p.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "writing metric %q", mf.GetName())
		}
	}
	return nil
}

// Shutdown flushes pending measurements and stops the backend.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
