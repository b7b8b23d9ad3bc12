package tracing

import (
	"context"
	"errors"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/chainstamp/chainstamp"

// clientError is implemented by errors the caller caused, e.g. a failed validation.
type clientError interface {
	ClientError() bool
}

// StartTracing starts a span when tracing is enabled. Otherwise ctx is
// returned unchanged together with a nil span, which EndTracing accepts.
func StartTracing(ctx context.Context, spanName string, tracingEnabled bool, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	if !tracingEnabled {
		return ctx, nil
	}

	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(attributes...))
}

// EndTracing records err on span and ends it. Client errors are recorded as
// events only so they do not show up as failed spans.
func EndTracing(span trace.Span, err error) {
	if span == nil {
		return
	}
	defer span.End()

	if err == nil {
		return
	}

	span.RecordError(err)

	var ce clientError
	if errors.As(err, &ce) && ce.ClientError() {
		return
	}

	span.SetStatus(codes.Error, err.Error())
}

// CallerAttributes appends the file of the caller's caller to attr. Used by the
// WithTracer options of the services.
func CallerAttributes(attr ...attribute.KeyValue) []attribute.KeyValue {
	_, file, _, ok := runtime.Caller(2)
	if ok {
		attr = append(attr, attribute.String("file", file))
	}

	return attr
}
