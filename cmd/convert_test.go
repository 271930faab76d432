package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"dimens/internal/registry"
	"dimens/internal/tracing"
	"dimens/internal/unit"
)

func mustUnit(t *testing.T, expression string) unit.Unit {
	t.Helper()
	u, err := unit.Parse(registry.Default(), expression)
	require.NoError(t, err)
	return u
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (string, bool) {
	for _, attr := range span.Attributes() {
		if string(attr.Key) == key {
			return attr.Value.AsString(), true
		}
	}
	return "", false
}

func TestTracedCoefficients_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")

	coeffs, err := tracedCoefficients(context.Background(), tracer,
		mustUnit(t, "kg"), mustUnit(t, "g"))
	require.NoError(t, err)
	assert.InDelta(t, 1000, coeffs.Factor, 1e-9)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, tracing.SpanConversion, spans[0].Name())

	from, ok := spanAttr(spans[0], tracing.AttrUnitSymbol)
	require.True(t, ok)
	assert.Equal(t, "kg", from)
	to, ok := spanAttr(spans[0], tracing.AttrTargetSymbol)
	require.True(t, ok)
	assert.Equal(t, "g", to)
}

func TestTracedCoefficients_RecordsFailure(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")

	_, err := tracedCoefficients(context.Background(), tracer,
		mustUnit(t, "kg"), mustUnit(t, "m"))
	require.ErrorIs(t, err, unit.ErrNotConvertible)

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, tracing.EventErrorOccurred, spans[0].Events()[0].Name)
	msg, ok := spanAttr(spans[0], tracing.AttrErrorMessage)
	require.True(t, ok)
	assert.Contains(t, msg, "not convertible")
}
