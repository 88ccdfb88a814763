package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	v "gitlab.com/davidxarnold/costglance/version"
)

const defaultServiceName = "costglance"

// ServiceName resolves the exported service name. Precedence: flag > env
// var > default.
func ServiceName(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("OTEL_SERVICE_NAME"); env != "" {
		return env
	}
	return defaultServiceName
}

// NewResource builds the process resource: service identity plus the
// instance attribute set contributed by the detector.
func NewResource(ctx context.Context, serviceName string, detector resource.Detector) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithDetectors(detector),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(v.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build telemetry resource: %w", err)
	}
	return res, nil
}

// InitTracerProvider creates an OTLP/gRPC tracer provider over the given
// resource and installs it globally. The exporter endpoint comes from the
// OTEL_EXPORTER_OTLP_* environment variables. Callers own Shutdown.
func InitTracerProvider(ctx context.Context, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create otlp trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter)),
	)
	otel.SetTracerProvider(tp)

	return tp, nil
}
