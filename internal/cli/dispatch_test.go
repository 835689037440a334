package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faultline/pkg/errx"
)

func TestNewDispatchCmd(t *testing.T) {
	env := newTestEnv(t)
	cmd := NewDispatchCmdWithManager(env.mgr)

	assert.Equal(t, "dispatch", cmd.Use)
	for _, flag := range []string{"config", "code", "message", "cause"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}

	cmd.SetArgs([]string{"--message", "no code"})
	cmd.SilenceUsage = true
	assert.Error(t, cmd.Execute())
}

func TestManager_Dispatch(t *testing.T) {
	t.Run("mapped type uses its handlers", func(t *testing.T) {
		env := newTestEnv(t)
		path := env.writeConfig(t, "handlers.yaml", sampleConfig)

		report, err := env.mgr.Dispatch(DispatchRequest{ConfigPath: path, Code: "81000", Message: "declined"})
		require.NoError(t, err)
		assert.Equal(t, "81000", report.TypeID)
		assert.Equal(t, []string{"log", "counter"}, report.Invoked)

		assert.Contains(t, env.out.String(), "Dispatched to 2 handler(s)")
		assert.Contains(t, env.out.String(), `faultline_errors_total{type_id="81000"} = 1`)

		count, ok := env.mgr.errorCount("81000")
		assert.True(t, ok)
		assert.Equal(t, 1.0, count)
		assert.Equal(t, 1, env.logs.FilterMessage("declined").Len())
	})

	t.Run("unmapped type falls back to defaults", func(t *testing.T) {
		env := newTestEnv(t)
		path := env.writeConfig(t, "handlers.yaml", sampleConfig)

		report, err := env.mgr.Dispatch(DispatchRequest{
			ConfigPath: path,
			Code:       "99000",
			Message:    "unexpected",
			Cause:      "timeout",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"trace"}, report.Invoked)

		_, counted := env.mgr.errorCount("99000")
		assert.False(t, counted)

		out := env.out.String()
		assert.NotContains(t, out, "faultline_errors_total")
		assert.Contains(t, out, "code=99000")
		assert.Contains(t, out, `description="Ad hoc error"`)
		assert.Contains(t, out, "timeout")
	})

	t.Run("known code keeps its description", func(t *testing.T) {
		env := newTestEnv(t)
		path := env.writeConfig(t, "handlers.yaml", "defaultHandlers: [trace]\n")

		_, err := env.mgr.Dispatch(DispatchRequest{ConfigPath: path, Code: errx.CodeConfig, Message: "bad"})
		require.NoError(t, err)
		assert.Contains(t, env.out.String(), `description="Configuration error"`)
	})

	t.Run("no handlers is a warning", func(t *testing.T) {
		env := newTestEnv(t)

		report, err := env.mgr.Dispatch(DispatchRequest{Code: "81000", Message: "declined"})
		require.NoError(t, err)
		assert.False(t, report.Handled())
		assert.Contains(t, env.out.String(), "no handler processed the error for 81000")
	})

	t.Run("handler failure fails the command", func(t *testing.T) {
		env := newTestEnv(t)
		env.withFlakyHandler()
		path := env.writeConfig(t, "handlers.yaml", "defaultHandlers: [flaky, trace]\n")

		report, err := env.mgr.Dispatch(DispatchRequest{ConfigPath: path, Code: "81000", Message: "declined"})
		require.ErrorIs(t, err, ErrHandlerFailures)
		assert.Equal(t, []string{"trace"}, report.Invoked)
		assert.Contains(t, report.Failed, "flaky")
		assert.Contains(t, env.out.String(), "sink offline")

		var e *errx.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, errx.CodeDispatch, e.Code())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.mgr.Dispatch(DispatchRequest{Code: "  "})
		assert.ErrorIs(t, err, ErrCodeRequired)

		_, err = env.mgr.Dispatch(DispatchRequest{Code: "81000", Message: "line\nbreak"})
		assert.ErrorIs(t, err, ErrControlCharsNotAllowed)
	})
}
