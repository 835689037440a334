package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogHandler_WritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewLogHandler(zap.New(core))

	require.NoError(t, h.Handle(paymentError("declined")))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "errors", entry.LoggerName)
	assert.Equal(t, "declined", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "81000", fields["error.code"])
	assert.Equal(t, "Payment error", fields["error.category"])
	assert.Equal(t, "A-17", fields["error.context.order"])
	assert.Equal(t, "81000", fields["error.type_id"])
}

func TestLogHandler_PlainError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewLogHandler(zap.New(core))

	require.NoError(t, h.Handle(errors.New("disk full")))

	entry := logs.All()[0]
	assert.Equal(t, "disk full", entry.Message)
	assert.Equal(t, "*errors.errorString", entry.ContextMap()["error.type_id"])
	assert.NotContains(t, entry.ContextMap(), "error.code")
}

func TestLogHandler_LevelBelowCoreIsDropped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	h := NewLogHandlerAt(zap.New(core), zapcore.InfoLevel)

	require.NoError(t, h.Handle(paymentError("declined")))
	assert.Equal(t, 0, logs.Len())
}

func TestLogHandler_NilLogger(t *testing.T) {
	h := NewLogHandler(nil)
	assert.NoError(t, h.Handle(paymentError("declined")))
}
