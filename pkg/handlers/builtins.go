package handlers

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"faultline/pkg/dispatch"
)

// Built-in handler refs.
const (
	RefTrace      = "trace"
	RefLog        = "log"
	RefLogr       = "logr"
	RefCounter    = "counter"
	RefClickHouse = "clickhouse"
	RefKubeEvent  = "kube-event"
)

// Options carries the dependencies of the built-in handlers.
type Options struct {
	// Writer receives traces; defaults to os.Stderr.
	Writer io.Writer
	// Logger backs the log handler and, when Logr is unset, the logr handler.
	Logger *zap.Logger
	Logr   *logr.Logger
	// Registerer receives the error counter; defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	ClickHouse ClickHouseOptions
	KubeEvent  KubeEventOptions
}

// Factories returns a factory for every built-in ref.
func Factories(opts Options) map[string]dispatch.Factory {
	return map[string]dispatch.Factory{
		RefTrace: func() (dispatch.Handler, error) {
			w := opts.Writer
			if w == nil {
				w = os.Stderr
			}
			return NewTraceHandler(w), nil
		},
		RefLog: func() (dispatch.Handler, error) {
			return NewLogHandler(opts.Logger), nil
		},
		RefLogr: func() (dispatch.Handler, error) {
			if opts.Logr != nil {
				return NewLogrHandler(*opts.Logr), nil
			}
			logger := opts.Logger
			if logger == nil {
				logger = zap.NewNop()
			}
			return NewLogrHandler(zapr.NewLogger(logger)), nil
		},
		RefCounter: func() (dispatch.Handler, error) {
			h, err := NewCounterHandler(opts.Registerer)
			if err != nil {
				return nil, err
			}
			return h, nil
		},
		RefClickHouse: func() (dispatch.Handler, error) {
			h, err := OpenClickHouse(opts.ClickHouse)
			if err != nil {
				return nil, err
			}
			return h, nil
		},
		RefKubeEvent: func() (dispatch.Handler, error) {
			h, err := OpenKubeEvents(opts.KubeEvent)
			if err != nil {
				return nil, err
			}
			return h, nil
		},
	}
}

// RegisterBuiltins registers every built-in factory with reg.
func RegisterBuiltins(reg *dispatch.Registry, opts Options) error {
	factories := Factories(opts)
	for _, ref := range BuiltinRefs() {
		if err := reg.Register(ref, factories[ref]); err != nil {
			return err
		}
	}
	return nil
}

// BuiltinRefs lists the built-in refs in a stable order.
func BuiltinRefs() []string {
	return []string{RefTrace, RefLog, RefLogr, RefCounter, RefClickHouse, RefKubeEvent}
}
