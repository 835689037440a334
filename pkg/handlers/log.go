package handlers

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"faultline/pkg/dispatch"
	"faultline/pkg/errx"
)

// LogHandler writes dispatched errors to a zap logger with the errx fields.
type LogHandler struct {
	logger *zap.Logger
	level  zapcore.Level
}

// NewLogHandler logs at Error level. A nil logger discards everything.
func NewLogHandler(logger *zap.Logger) *LogHandler {
	return NewLogHandlerAt(logger, zapcore.ErrorLevel)
}

// NewLogHandlerAt logs at the given level.
func NewLogHandlerAt(logger *zap.Logger, level zapcore.Level) *LogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogHandler{logger: logger.Named("errors"), level: level}
}

// Handle implements dispatch.Handler.
func (h *LogHandler) Handle(err error) error {
	ce := h.logger.Check(h.level, errx.UserString(err))
	if ce == nil {
		return nil
	}
	ce.Write(append(errx.ZapFields(err), zap.String("error.type_id", dispatch.TypeID(err)))...)
	return nil
}
