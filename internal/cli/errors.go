package cli

// This file defines error handling utilities for the CLI, including:
//   - Sentinel errors for each command's failure modes
//   - Error wrapping functions that integrate with the errx error system
//   - Structured error logging in debug mode

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"faultline/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError writes structured error logs to the terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

type errorSpec struct {
	code        string
	description string
}

// newSentinelError creates a sentinel error and registers its category in
// errorSpecs in one step.
func newSentinelError(msg string, code, description string) error {
	err := errors.New(msg)
	errorSpecs[err] = errorSpec{code: code, description: description}
	return err
}

// errorSpecs must be declared before the sentinels so it is initialized first.
var errorSpecs = make(map[error]errorSpec)

func lookupSpec(sentinel error) (code, description string) {
	spec := specFor(sentinel)
	return spec.code, spec.description
}

func newWithSentinel(base error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, nil)
	}
	return errx.FromSentinel(base, lookupSpec, msg, nil)
}

func wrapWithSentinel(base, cause error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, cause)
	}
	return errx.FromSentinel(base, lookupSpec, msg, cause)
}

// wrapWithSentinelAndContext wraps an error and attaches structured context
// such as the configuration path or handler ref.
func wrapWithSentinelAndContext(base, cause error, msg string, context map[string]any) error {
	err := wrapWithSentinel(base, cause, msg)
	var errxErr *errx.Error
	if errors.As(err, &errxErr) && len(context) > 0 {
		return errxErr.WithContextMap(context)
	}
	return err
}

var (
	// CLI errors.
	ErrCodeRequired           = newSentinelError("error code is required", errx.CodeCLI, errx.DescCLI)
	ErrControlCharsNotAllowed = newSentinelError("value must not contain control characters", errx.CodeCLI, errx.DescCLI)
	ErrRenderOutputFailed     = newSentinelError("failed to render output", errx.CodeCLI, errx.DescCLI)

	// Config errors.
	ErrConfigNotFound    = newSentinelError("error handling configuration not found", errx.CodeConfig, errx.DescConfig)
	ErrConfigInvalid     = newSentinelError("error handling configuration is invalid", errx.CodeConfig, errx.DescConfig)
	ErrLoadDotEnvFailed  = newSentinelError("failed to load .env file", errx.CodeConfig, errx.DescConfig)
	ErrInvalidEnvSetting = newSentinelError("invalid environment setting", errx.CodeConfig, errx.DescConfig)

	// Registry errors.
	ErrRegisterBuiltinsFailed = newSentinelError("failed to register built-in handlers", errx.CodeRegistry, errx.DescRegistry)
	ErrUnresolvedHandlers     = newSentinelError("some handlers could not be resolved", errx.CodeRegistry, errx.DescRegistry)

	// Dispatch errors.
	ErrNotHandled         = newSentinelError("no handler processed the error", errx.CodeDispatch, errx.DescDispatch)
	ErrHandlerFailures    = newSentinelError("one or more handlers failed", errx.CodeDispatch, errx.DescDispatch)
	ErrCloseHandlerFailed = newSentinelError("failed to close handlers", errx.CodeSink, errx.DescSink)
)

func specFor(base error) errorSpec {
	spec, ok := errorSpecs[base]
	if ok {
		return spec
	}
	return errorSpec{code: errx.CodeCLI, description: errx.DescCLI}
}

// NormalizeError puts errors raised outside faultline code, such as cobra's
// flag parsing errors, in the CLI category. errx errors pass through.
func NormalizeError(err error) error {
	if err == nil || errx.IsError(err) {
		return err
	}
	return errx.WrapCLI(err.Error(), err)
}

// ErrorLine renders err for the terminal as "[code] message".
func ErrorLine(err error) string {
	if err == nil {
		return ""
	}
	var e *errx.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	return fmt.Sprintf("[%s] %s", e.Code(), errx.UserString(err))
}

// logStructuredError logs err with the errx structured fields. It only logs
// when debug mode is enabled (via --debug).
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}
	logger.Error(msg, errx.ZapFields(err)...)
}
