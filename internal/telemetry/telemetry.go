// Package telemetry sets up OpenTelemetry tracing.
package telemetry

import (
	"context"
	"github.com/OPSAF/Anime/internal/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"log/slog"
	"net/url"
)

var ErrInvalidEndpoint = errors.NewSentinel("endpoint must be an http or https URL")

// Setup initialises tracing for serviceName and exports spans to the OTLP/HTTP endpoint.
//
// Tracing is opt-in: with an empty endpoint Setup registers nothing and returns a no-op shutdown function.
// The returned shutdown function flushes pending spans and should be deferred by the caller.
func Setup(ctx context.Context, serviceName, endpoint string, logger *slog.Logger) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if endpoint == "" {
		return noop, nil
	}

	if u, err := url.Parse(endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return noop, errors.Wrap(ErrInvalidEndpoint, "parse endpoint", slog.String("endpoint", endpoint))
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, errors.Wrap(err, "create trace exporter", slog.String("endpoint", endpoint))
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, errors.Wrap(err, "create resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	logger.LogAttrs(ctx, slog.LevelInfo, "tracing enabled", slog.String("endpoint", endpoint))

	return func(ctx context.Context) error {
		return errors.Wrap(tp.Shutdown(ctx), "shutdown tracer provider")
	}, nil
}
