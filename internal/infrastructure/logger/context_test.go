package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func contextWithSpan(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func fieldMap(entry observer.LoggedEntry) map[string]any {
	return entry.ContextMap()
}

func TestWithContext(t *testing.T) {
	l := zap.NewExample()
	ctx := WithContext(context.Background(), l)

	assert.Same(t, l, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestRequestAndStoreIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetStoreID(ctx))

	ctx = WithStoreID(WithRequestID(ctx, "req-1"), "2")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "2", GetStoreID(ctx))
}

func TestTraceIDs(t *testing.T) {
	t.Run("no span", func(t *testing.T) {
		ctx := context.Background()
		assert.Empty(t, GetTraceID(ctx))
		assert.Empty(t, GetSpanID(ctx))

		base := zap.NewNop()
		assert.Same(t, base, WithTraceContext(ctx, base))
	})

	t.Run("valid span", func(t *testing.T) {
		ctx := contextWithSpan(t)
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", GetTraceID(ctx))
		assert.Equal(t, "00f067aa0ba902b7", GetSpanID(ctx))
	})
}

func TestContextLogger_EnrichesWithContextFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	ctx := WithContext(contextWithSpan(t), zap.New(core))
	ctx = WithStoreID(WithRequestID(ctx, "req-42"), "1")

	L(ctx).Info("listing orders", zap.String("filter", "eq(status,'pending')"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	fields := fieldMap(logs[0])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "1", fields["store_id"])
	assert.Equal(t, "eq(status,'pending')", fields["filter"])
}

func TestContextLogger_EmptyContextFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)

	WithLogger(context.Background(), zap.New(core)).Warn("no correlation")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Empty(t, fieldMap(logs[0]))
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
}

func TestContextLogger_With(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	cl := WithLogger(WithRequestID(context.Background(), "req-7"), zap.New(core))

	cl.With(zap.String("method", "salesOrderList")).
		With(zap.String("gateway_request_id", "abc")).
		Debug("storefront call succeeded")

	logs := recorded.All()
	require.Len(t, logs, 1)
	fields := fieldMap(logs[0])
	assert.Equal(t, "salesOrderList", fields["method"])
	assert.Equal(t, "abc", fields["gateway_request_id"])
	assert.Equal(t, "req-7", fields["request_id"])
}

func TestContextLogger_LogLevels(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	cl := WithLogger(context.Background(), zap.New(core))

	cl.Debug("debug")
	cl.Info("info")
	cl.Warn("warn")
	cl.Error("error")

	levels := make([]zapcore.Level, 0, 4)
	for _, entry := range recorded.All() {
		levels = append(levels, entry.Level)
	}
	assert.Equal(t, []zapcore.Level{
		zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel,
	}, levels)
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := WithLogger(context.Background(), nil)

	assert.NotPanics(t, func() {
		cl.Info("dropped")
		cl.With(zap.Int("n", 1)).Error("dropped")
	})
	assert.NotNil(t, cl.Zap())
}
