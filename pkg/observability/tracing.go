package observability

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/applitest/testrunner-mcp"

// Span attribute keys.
var (
	AttrTool      = attribute.Key("testrunner.tool.name")
	AttrOperation = attribute.Key("testrunner.engine.operation")
	AttrSessionID = attribute.Key("testrunner.session.id")
	AttrOutcome   = attribute.Key("testrunner.outcome")
)

// NewTracerProvider creates a provider exporting spans as JSON to w and installs it globally.
// w must not be the stdio transport.
func NewTracerProvider(w io.Writer, serviceName, version string) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return provider, nil
}

// Tracer returns the server tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
