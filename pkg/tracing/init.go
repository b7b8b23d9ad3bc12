package tracing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func NewTraceProvider(ctx context.Context, serviceName string, sample int, opts ...otlptracegrpc.Option) (*trace.TracerProvider, *otlptrace.Exporter, error) {
	exporter, err := otlptracegrpc.New(
		ctx,
		opts...,
	)
	if err != nil {
		return nil, nil, err
	}

	traceOpt := trace.WithSampler(trace.AlwaysSample())
	if sample != 0 && sample != 100 {
		traceOpt = trace.WithSampler(trace.TraceIDRatioBased(float64(sample) / 100))
	}

	tp := trace.NewTracerProvider(
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
		trace.WithBatcher(exporter),
		traceOpt,
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	otel.SetTracerProvider(tp)

	return tp, exporter, nil
}

// Enable installs a global OTLP trace provider for serviceName and returns its
// cleanup function together with the span attributes every component should
// add: the configured attributes and the hostname.
func Enable(logger *slog.Logger, serviceName string, dialAddr string, sample int, attributes map[string]string) (func(), []attribute.KeyValue, error) {
	if dialAddr == "" {
		return nil, nil, errors.New("tracing enabled, but tracing address empty")
	}

	ctx := context.Background()

	tp, exporter, err := NewTraceProvider(ctx, serviceName, sample, otlptracegrpc.WithEndpointURL(dialAddr), otlptracegrpc.WithInsecure())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace provider: %v", err)
	}

	cleanup := func() {
		err = exporter.Shutdown(ctx)
		if err != nil {
			logger.Error("Failed to shutdown exporter", slog.String("err", err.Error()))
		}

		err = tp.Shutdown(ctx)
		if err != nil {
			logger.Error("Failed to shutdown tracing provider", slog.String("err", err.Error()))
		}
	}

	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]attribute.KeyValue, 0, len(attributes)+1)
	for _, key := range keys {
		attrs = append(attrs, attribute.String(key, attributes[key]))
	}

	hostname, err := os.Hostname()
	if err == nil {
		attrs = append(attrs, attribute.String("hostname", hostname))
	}

	return cleanup, attrs, nil
}
