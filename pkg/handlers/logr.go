package handlers

import (
	"github.com/go-logr/logr"

	"faultline/pkg/dispatch"
	"faultline/pkg/errx"
)

// LogrHandler reports dispatched errors through a logr.Logger, the logging
// interface used by controller-runtime based operators.
type LogrHandler struct {
	logger logr.Logger
}

// NewLogrHandler returns a LogrHandler for logger.
func NewLogrHandler(logger logr.Logger) *LogrHandler {
	return &LogrHandler{logger: logger.WithName("errors")}
}

// Handle implements dispatch.Handler.
func (h *LogrHandler) Handle(err error) error {
	kv := append(errx.KeysAndValues(err), "error.type_id", dispatch.TypeID(err))
	h.logger.Error(err, errx.UserString(err), kv...)
	return nil
}
