package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type testClientError struct{}

func (testClientError) Error() string     { return "bad input" }
func (testClientError) ClientError() bool { return true }

func TestStartEndTracing(t *testing.T) {
	tt := []struct {
		name    string
		enabled bool
		err     error

		expectedSpans  int
		expectedStatus codes.Code
		expectedEvents int
	}{
		{
			name: "disabled",
		},
		{
			name:    "success",
			enabled: true,

			expectedSpans:  1,
			expectedStatus: codes.Unset,
		},
		{
			name:    "server error",
			enabled: true,
			err:     errors.New("cache unavailable"),

			expectedSpans:  1,
			expectedStatus: codes.Error,
			expectedEvents: 1,
		},
		{
			name:    "client error",
			enabled: true,
			err:     testClientError{},

			expectedSpans:  1,
			expectedStatus: codes.Unset,
			expectedEvents: 1,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			recorder := tracetest.NewSpanRecorder()
			provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
			previous := otel.GetTracerProvider()
			otel.SetTracerProvider(provider)
			t.Cleanup(func() { otel.SetTracerProvider(previous) })

			// when
			_, span := StartTracing(context.Background(), "Prepare", tc.enabled, attribute.String("dataHash", "abc"))
			EndTracing(span, tc.err)

			// then
			spans := recorder.Ended()
			require.Len(t, spans, tc.expectedSpans)
			if tc.expectedSpans == 0 {
				require.Nil(t, span)
				return
			}

			require.Equal(t, "Prepare", spans[0].Name())
			require.Equal(t, tc.expectedStatus, spans[0].Status().Code)
			require.Len(t, spans[0].Events(), tc.expectedEvents)
			require.Contains(t, spans[0].Attributes(), attribute.String("dataHash", "abc"))
		})
	}
}

func TestCallerAttributes(t *testing.T) {
	// when
	attrs := func() []attribute.KeyValue {
		return CallerAttributes(attribute.String("service", "api"))
	}()

	// then
	require.Len(t, attrs, 2)
	require.Equal(t, attribute.Key("file"), attrs[1].Key)
}
