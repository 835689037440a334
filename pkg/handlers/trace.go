package handlers

import (
	"io"
	"sync"

	"faultline/pkg/errx"
)

// TraceHandler prints the full error chain to a writer.
type TraceHandler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTraceHandler returns a TraceHandler writing to w.
func NewTraceHandler(w io.Writer) *TraceHandler {
	return &TraceHandler{w: w}
}

// Handle writes the trace; concurrent dispatches never interleave lines.
func (h *TraceHandler) Handle(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	errx.PrintTrace(h.w, err)
	return nil
}
