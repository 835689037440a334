package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"faultline/pkg/dispatch"
	"faultline/pkg/errx"
)

const yamlDoc = `# error handling policy
defaultHandlers:
  - log
handlers:
  - handlerRef: counter
    exceptions:
      - "81000"
      - "*fs.PathError"
  - handlerRef: trace
    exceptions: ["81000"]
`

const jsonDoc = `{
  "defaultHandlers": ["log"],
  "handlers": [
    {"handlerRef": "counter", "exceptions": ["81000", "*fs.PathError"]},
    {"handlerRef": "trace", "exceptions": ["81000"]}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func assertPolicy(t *testing.T, cfg *dispatch.Configuration) {
	t.Helper()
	assert.Equal(t, []string{"log"}, cfg.DefaultHandlers())
	assert.Equal(t, []string{"counter", "trace"}, cfg.ExceptionHandlersFor("81000", false))
	assert.Equal(t, []string{"counter"}, cfg.ExceptionHandlersFor("*fs.PathError", false))
	assert.Equal(t, []string{"log"}, cfg.ExceptionHandlers("99999"))
}

func TestFile_LoadYAML(t *testing.T) {
	for _, name := range []string{"faultline.yaml", "faultline.yml", "policy"} {
		t.Run(name, func(t *testing.T) {
			assertPolicy(t, NewFile(writeFile(t, name, yamlDoc), nil).Load())
		})
	}
}

func TestFile_LoadJSON(t *testing.T) {
	assertPolicy(t, NewFile(writeFile(t, "faultline.json", jsonDoc), nil).Load())
}

func TestFile_MissingFileYieldsEmptyConfiguration(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := NewFile(filepath.Join(t.TempDir(), "absent.yaml"), zap.New(core))

	cfg := f.Load()

	require.NotNil(t, cfg)
	assert.Empty(t, cfg.AllHandlers())
	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, f.Path, warnings[0].ContextMap()["path"])
}

func TestFile_MalformedDocuments(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"broken yaml", "bad.yaml", "defaultHandlers: [log\nhandlers: {"},
		{"unknown yaml field", "unknown.yaml", "defaultHandler:\n  - log\n"},
		{"wrong yaml shape", "shape.yaml", "handlers: log\n"},
		{"broken json", "bad.json", `{"defaultHandlers": [`},
		{"unknown json field", "unknown.json", `{"defaultHandler": ["log"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			f := NewFile(writeFile(t, tt.file, tt.content), zap.New(core))

			_, err := f.Read()
			var e *errx.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, errx.CodeConfig, e.Code())

			cfg := f.Load()
			require.NotNil(t, cfg)
			assert.Empty(t, cfg.AllHandlers())
			assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
		})
	}
}

func TestFile_EmptyDocuments(t *testing.T) {
	for _, content := range []string{"", "   \n", "# nothing configured yet\n"} {
		cfg := NewFile(writeFile(t, "empty.yaml", content), nil).Load()
		assert.Empty(t, cfg.AllHandlers())
	}
}

func TestFile_ResolvedPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewFile("", nil).ResolvedPath())
	assert.Equal(t, DefaultPath, NewFile("   ", nil).ResolvedPath())
	assert.Equal(t, "custom.yaml", NewFile("custom.yaml", nil).ResolvedPath())
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, err := Decode([]byte("a: b"), Format("toml"))
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errx.CodeConfig, e.Code())
	assert.Equal(t, "toml", e.Context()["format"])
}

func TestFunc(t *testing.T) {
	cfg := dispatch.NewConfiguration()
	cfg.AddDefaultHandler("log")

	assert.Same(t, cfg, Static(cfg).Load())
	assert.NotNil(t, Func(func() *dispatch.Configuration { return nil }).Load())
	assert.NotNil(t, Func(nil).Load())
}
