/*
Package telemetry wires the resolved instance attribute set into the
OpenTelemetry SDK: a resource detector exposing the attributes, and the
OTLP tracer-provider bootstrap.
*/

package telemetry

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"gitlab.com/davidxarnold/costglance/pkg/core"
)

// AttributeResolver yields the cost-attribution attribute set for an
// instance. *cloud.Resolver satisfies it.
type AttributeResolver interface {
	Resolve(ctx context.Context, instanceID string) (core.AttributeSet, error)
}

// Detector is an OpenTelemetry resource detector that attaches the resolved
// instance attributes to every exported span.
type Detector struct {
	resolver   AttributeResolver
	instanceID string
}

// NewDetector creates a detector for the given instance. An empty instanceID
// targets the sole instance in the account.
func NewDetector(resolver AttributeResolver, instanceID string) *Detector {
	return &Detector{
		resolver:   resolver,
		instanceID: instanceID,
	}
}

// Detect implements resource.Detector. A resolution failure fails detection;
// there is no degraded half-attributed resource.
func (d *Detector) Detect(ctx context.Context) (*resource.Resource, error) {
	set, err := d.resolver.Resolve(ctx, d.instanceID)
	if err != nil {
		return nil, fmt.Errorf("resolve instance attributes: %w", err)
	}
	return resource.NewWithAttributes(semconv.SchemaURL, Attributes(set)...), nil
}

// Attributes converts an attribute set into OpenTelemetry key/values, sorted
// by key so output is deterministic.
func Attributes(set core.AttributeSet) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(set))
	for key, value := range set {
		switch v := value.(type) {
		case string:
			attrs = append(attrs, attribute.String(key, v))
		case bool:
			attrs = append(attrs, attribute.Bool(key, v))
		case int:
			attrs = append(attrs, attribute.Int(key, v))
		case int64:
			attrs = append(attrs, attribute.Int64(key, v))
		default:
			attrs = append(attrs, attribute.String(key, fmt.Sprint(v)))
		}
	}

	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Key < attrs[j].Key
	})
	return attrs
}
