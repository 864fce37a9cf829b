package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo)

	logger.Info("standings recomputed", "teams", 6, "error", errors.New("boom"))
	logger.Debug("dropped below level")

	out := buf.String()
	require.Contains(t, out, `"msg":"standings recomputed"`)
	require.Contains(t, out, `"teams":6`)
	require.Contains(t, out, `"error":"boom"`)
	require.NotContains(t, out, "dropped below level")
}

func TestLogger_OddArgsDoNotPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelDebug)

	logger.Warn("dangling", "game_id")

	require.True(t, strings.Contains(buf.String(), `"game_id":null`), buf.String())
}

func TestLogger_MirrorReceivesEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo)

	var got []string
	SetMirror(func(_ context.Context, _ Level, msg string, _ ...any) {
		got = append(got, msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.InfoContext(context.Background(), "mirrored")
	logger.DebugContext(context.Background(), "not mirrored")

	require.Equal(t, []string{"mirrored"}, got)
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	var logger *Logger
	require.NotPanics(t, func() {
		logger.Info("no logger configured")
	})
}

func TestLogger_WithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo).With("job", "league-recompute")

	logger.Info("job finished")

	require.Contains(t, buf.String(), `"job":"league-recompute"`)
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.InfoContext(ctx, "standings table served")

	require.Contains(t, buf.String(), `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`)
	require.Contains(t, buf.String(), `"span_id":"00f067aa0ba902b7"`)
}
