// Package observability sets up OpenTelemetry tracing for investigation sessions.
package observability

import (
	"context"
	"github.com/myrjola/detectivequest/internal/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"log/slog"
	"time"
)

// Config holds the configuration for OpenTelemetry tracing.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	// Endpoint is the host:port of an OTLP HTTP collector.
	Endpoint string
	// Insecure sends spans over plain HTTP.
	Insecure bool
}

// TracerProvider wraps the OpenTelemetry tracer provider with cleanup.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	enabled  bool
}

// InitTracing initializes tracing with an OTLP HTTP exporter. When tracing is disabled the returned provider hands
// out no-op tracers and nothing is exported.
func InitTracing(ctx context.Context, config Config) (*TracerProvider, error) {
	if !config.Enabled {
		return &TracerProvider{provider: nil, enabled: false}, nil
	}

	options := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(config.Endpoint),
		otlptracehttp.WithCompression(otlptracehttp.GzipCompression),
		otlptracehttp.WithTimeout(10 * time.Second), //nolint:mnd // generous for a local collector
	}
	if config.Insecure {
		options = append(options, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, options...)
	if err != nil {
		return nil, errors.Wrap(err, "create otlp exporter", slog.String("endpoint", config.Endpoint))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(5*time.Second), //nolint:mnd // export at least every five seconds
		),
		sdktrace.WithResource(newResource(config)),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return &TracerProvider{
		provider: tp,
		enabled:  true,
	}, nil
}

// Tracer returns a tracer for the given instrumentation name.
func (tp *TracerProvider) Tracer(name string, options ...trace.TracerOption) trace.Tracer {
	if !tp.enabled {
		return noop.NewTracerProvider().Tracer(name, options...)
	}
	return tp.provider.Tracer(name, options...)
}

// Shutdown flushes pending spans and stops the provider.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if !tp.enabled || tp.provider == nil {
		return nil
	}
	return errors.Wrap(tp.provider.Shutdown(ctx), "shutdown tracer provider")
}

// IsEnabled returns whether tracing is enabled.
func (tp *TracerProvider) IsEnabled() bool {
	return tp.enabled
}

func newResource(config Config) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", config.ServiceName),
		attribute.String("service.version", config.ServiceVersion),
	)
}
