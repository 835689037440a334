package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"faultline/pkg/errx"
)

func TestSentinelCategories(t *testing.T) {
	tests := []struct {
		sentinel error
		code     string
	}{
		{ErrCodeRequired, errx.CodeCLI},
		{ErrConfigInvalid, errx.CodeConfig},
		{ErrUnresolvedHandlers, errx.CodeRegistry},
		{ErrHandlerFailures, errx.CodeDispatch},
		{ErrCloseHandlerFailed, errx.CodeSink},
		{errors.New("unregistered"), errx.CodeCLI},
	}
	for _, tt := range tests {
		t.Run(tt.sentinel.Error(), func(t *testing.T) {
			err := newWithSentinel(tt.sentinel, "msg")
			var e *errx.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.code, e.Code())
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestWrapWithSentinelAndContext(t *testing.T) {
	cause := errors.New("permission denied")
	err := wrapWithSentinelAndContext(ErrConfigInvalid, cause, "cannot read", map[string]any{"path": "/etc/x"})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "cannot read", e.Message())
	assert.Equal(t, "/etc/x", e.Context()["path"])
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrConfigInvalid)

	plain := wrapWithSentinel(nil, cause, "no base")
	require.ErrorAs(t, plain, &e)
	assert.Equal(t, errx.CodeCLI, e.Code())
}

func TestLogStructuredError(t *testing.T) {
	t.Cleanup(func() { SetDebugMode(false) })
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	err := wrapWithSentinelAndContext(ErrConfigInvalid, errors.New("eof"), "bad yaml", map[string]any{"path": "a.yaml"})

	SetDebugMode(false)
	logStructuredError(logger, err, "Check failed")
	assert.Equal(t, 0, logs.Len())

	SetDebugMode(true)
	assert.True(t, IsDebugMode())
	logStructuredError(logger, err, "Check failed")
	logStructuredError(logger, nil, "ignored")
	logStructuredError(nil, err, "ignored")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, errx.CodeConfig, fields[errx.FieldCode])
	assert.Equal(t, "a.yaml", fields[errx.FieldContext+"path"])
	assert.Equal(t, "eof", fields[errx.FieldCause])
}

func TestNormalizeError(t *testing.T) {
	assert.NoError(t, NormalizeError(nil))

	flagErr := errors.New(`required flag(s) "code" not set`)
	err := NormalizeError(flagErr)
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errx.CodeCLI, e.Code())
	assert.ErrorIs(t, err, flagErr)
	assert.Equal(t, "[70000] required flag(s) \"code\" not set", ErrorLine(err))

	own := newWithSentinel(ErrUnresolvedHandlers, "1 handler(s) could not be resolved: clickhouse")
	assert.Same(t, own, NormalizeError(own))
	assert.Equal(t, "[72000] 1 handler(s) could not be resolved: clickhouse", ErrorLine(own))

	assert.Equal(t, "plain", ErrorLine(errors.New("plain")))
	assert.Empty(t, ErrorLine(nil))
}
