package handlers

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"faultline/pkg/dispatch"
	"faultline/pkg/errx"
)

// CounterName is the metric registered by the counter handler; its single
// label is CounterLabel.
const (
	CounterName  = "faultline_errors_total"
	CounterLabel = "type_id"
	counterHelp = "Number of errors dispatched, partitioned by error type."
)

// CounterHandler counts dispatched errors per type identifier.
type CounterHandler struct {
	counter *prometheus.CounterVec
}

// NewCounterHandler registers the faultline_errors_total counter with reg, or
// reuses it when an identical counter is already registered there, so several
// dispatchers can share one metric. A nil reg uses the default registerer.
func NewCounterHandler(reg prometheus.Registerer) (*CounterHandler, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: CounterName,
		Help: counterHelp,
	}, []string{CounterLabel})

	if err := reg.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, errx.WrapSink("failed to register error counter", err).
				WithContext("metric", CounterName)
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, errx.Sink("a different collector is registered as " + CounterName).
				WithContext("metric", CounterName)
		}
		counter = existing
	}
	return &CounterHandler{counter: counter}, nil
}

// Handle implements dispatch.Handler.
func (h *CounterHandler) Handle(err error) error {
	h.counter.WithLabelValues(dispatch.TypeID(err)).Inc()
	return nil
}

// Collector exposes the underlying counter, mainly for tests and custom
// exposition.
func (h *CounterHandler) Collector() *prometheus.CounterVec {
	return h.counter
}
