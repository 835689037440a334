package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"faultline/pkg/dispatch"
	"faultline/pkg/handlers"
)

type testEnv struct {
	mgr  *Manager
	out  *bytes.Buffer
	logs *observer.ObservedLogs
	dir  string
}

// newTestEnv returns a Manager printing plain text to a buffer. ClickHouse
// and Kubernetes are left unconfigured so their handlers never resolve.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	core, logs := observer.New(zapcore.DebugLevel)
	out := &bytes.Buffer{}
	dir := t.TempDir()
	mgr := NewManager(zap.New(core), NewPrinter(out), &CLIConfig{
		ConfigPath:      filepath.Join(dir, "faultline.yaml"),
		ClickHouseTable: handlers.DefaultClickHouseTable,
		EventKind:       defaultEventKind,
	})
	return &testEnv{mgr: mgr, out: out, logs: logs, dir: dir}
}

func (e *testEnv) writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// withFlakyHandler adds a "flaky" ref whose handler always fails.
func (e *testEnv) withFlakyHandler() {
	e.mgr.newRegistry = func(opts handlers.Options) (*dispatch.Registry, error) {
		reg, err := builtinRegistry(opts)
		if err != nil {
			return nil, err
		}
		reg.MustRegister("flaky", func() (dispatch.Handler, error) {
			return dispatch.HandlerFunc(func(error) error { return errors.New("sink offline") }), nil
		})
		return reg, nil
	}
}
