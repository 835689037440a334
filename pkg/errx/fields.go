package errx

import (
	"errors"
	"sort"

	"go.uber.org/zap"
)

// Structured log keys shared by every logger in faultline.
const (
	FieldCode     = "error.code"
	FieldCategory = "error.category"
	FieldMessage  = "error.message"
	FieldCause    = "error.cause"
	FieldContext  = "error.context."
)

// ZapFields extracts code, category, message, context and cause from err as
// zap fields. Errors that are not an *Error yield only zap.Error(err).
//
// Context keys are emitted in sorted order so log lines are stable.
func ZapFields(err error) []zap.Field {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		return []zap.Field{zap.Error(err)}
	}
	fields := []zap.Field{
		zap.String(FieldCode, e.Code()),
		zap.String(FieldCategory, e.Description()),
		zap.String(FieldMessage, e.Message()),
		zap.Error(err),
	}
	for _, key := range sortedKeys(e.context) {
		fields = append(fields, zap.Any(FieldContext+key, e.context[key]))
	}
	// distinct name so it does not collide with the "error" field
	if cause := e.Cause(); cause != nil {
		fields = append(fields, zap.NamedError(FieldCause, cause))
	}
	return fields
}

// KeysAndValues is the logr counterpart of ZapFields. The error itself is not
// included because logr.Logger.Error takes it as a separate argument.
func KeysAndValues(err error) []any {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		return nil
	}
	kv := []any{
		FieldCode, e.Code(),
		FieldCategory, e.Description(),
		FieldMessage, e.Message(),
	}
	for _, key := range sortedKeys(e.context) {
		kv = append(kv, FieldContext+key, e.context[key])
	}
	if cause := e.Cause(); cause != nil {
		kv = append(kv, FieldCause, cause.Error())
	}
	return kv
}

func sortedKeys(ctx map[string]any) []string {
	if len(ctx) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
