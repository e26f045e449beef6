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

package metrics

import (
	"context"
	"fmt"
	"time"

	traceapi "cloud.google.com/go/trace/apiv2"
	stackdriver "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/metric"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/detectors/aws/ec2"
	"go.opentelemetry.io/contrib/detectors/gcp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	"golang.org/x/oauth2/google"
)

const stackdriverMetricPrefix = "custom.googleapis.com/treekey"

// newStackdriverReader exports to Google Cloud Monitoring. The resource
// describes the EC2 or GCE instance the process runs on, when there is one.
func newStackdriverReader(ctx context.Context, interval time.Duration) (sdkmetric.Reader, *resource.Resource, error) {
	if _, err := google.FindDefaultCredentials(ctx, traceapi.DefaultAuthScopes()...); err != nil {
		return nil, nil, errors.Wrap(err, "finding google default credentials")
	}

	exp, err := stackdriver.New(stackdriver.WithMetricDescriptorTypeFormatter(func(desc metricdata.Metrics) string {
		return fmt.Sprintf("%s/%s", stackdriverMetricPrefix, desc.Name)
	}))
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating stackdriver exporter")
	}

	res, err := detectResource(ctx)
	if err != nil {
		return nil, nil, err
	}
	return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval)), res, nil
}

// detectResource prefers a GCE resource over an EC2 one. Both detectors
// return an empty resource off their cloud.
func detectResource(ctx context.Context) (*resource.Resource, error) {
	res, err := ec2.NewResourceDetector().Detect(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "detecting ec2 resource")
	}
	gcpRes, err := gcp.NewDetector().Detect(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "detecting gcp resource")
	}
	if gcpRes != nil && gcpRes.Len() > 0 {
		res = gcpRes
	}
	return res, nil
}
