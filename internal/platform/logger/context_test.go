package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	ctx := context.Background()

	// An empty context falls back to the default logger.
	assert.Equal(t, slog.Default(), FromContext(ctx))

	var buf bytes.Buffer
	attached := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx = WithLogger(ctx, attached)

	assert.Same(t, attached, FromContext(ctx))
}

func TestFromContextOrDefault(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	fallback := slog.New(slog.NewJSONHandler(&buf, nil))

	// Without a context logger the fallback wins.
	assert.Same(t, fallback, FromContextOrDefault(ctx, fallback))

	// A nil fallback still yields a usable logger.
	assert.Equal(t, slog.Default(), FromContextOrDefault(ctx, nil))

	// With a context logger, the context wins over the fallback.
	attached := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx = WithLogger(ctx, attached)
	assert.Same(t, attached, FromContextOrDefault(ctx, fallback))
}

func TestContextLoggerCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithLogger(context.Background(), base.With(slog.String("trace_id", "abc123")))
	FromContext(ctx).Info("task created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "task created", entry["msg"])
	assert.Equal(t, "abc123", entry["trace_id"])
}
