package cli

// This file holds the Manager shared by every faultline command. It wires the
// CLI configuration, the built-in handlers and the dispatcher together.

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"faultline/pkg/dispatch"
	"faultline/pkg/handlers"
)

// Manager runs faultline commands with injected dependencies.
type Manager struct {
	logger  *zap.Logger
	printer *Printer
	config  *CLIConfig
	metrics *prometheus.Registry

	// newRegistry is a test seam for the handler registry.
	newRegistry func(opts handlers.Options) (*dispatch.Registry, error)
}

// NewManager creates a Manager with the given dependencies.
func NewManager(logger *zap.Logger, printer *Printer, config *CLIConfig) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if printer == nil {
		printer = NewPrinter(os.Stdout)
	}
	if config == nil {
		config = LoadCLIConfig()
	}
	return &Manager{
		logger:      logger,
		printer:     printer,
		config:      config,
		metrics:     prometheus.NewRegistry(),
		newRegistry: builtinRegistry,
	}
}

// DefaultManager returns a Manager printing to stdout and configured from the
// environment.
func DefaultManager(logger *zap.Logger) *Manager {
	return NewManager(logger, NewPrinter(os.Stdout), LoadCLIConfig())
}

func builtinRegistry(opts handlers.Options) (*dispatch.Registry, error) {
	reg := dispatch.NewRegistry()
	if err := handlers.RegisterBuiltins(reg, opts); err != nil {
		return nil, wrapWithSentinel(ErrRegisterBuiltinsFailed, err, err.Error())
	}
	return reg, nil
}

func (m *Manager) handlerOptions() handlers.Options {
	return handlers.Options{
		Writer:     m.printer.writer(),
		Logger:     m.logger,
		Registerer: m.metrics,
		ClickHouse: m.config.ClickHouseOptions(),
		KubeEvent:  m.config.KubeEventOptions(),
	}
}

// newDispatcher resolves cfg against the built-in handlers. Resolution may
// dial ClickHouse or the Kubernetes API, so it runs behind a spinner.
func (m *Manager) newDispatcher(cfg *dispatch.Configuration) (*dispatch.Dispatcher, error) {
	reg, err := m.newRegistry(m.handlerOptions())
	if err != nil {
		return nil, err
	}
	stop := m.printer.SpinnerStart("Resolving handlers")
	d := dispatch.New(cfg, dispatch.WithRegistry(reg), dispatch.WithLogger(m.logger))
	if unresolved := d.Unresolved(); len(unresolved) > 0 {
		stop(false, fmt.Sprintf("Resolved %d handler(s); unresolved: %s", d.HandlerCount(), strings.Join(unresolved, ", ")))
	} else {
		stop(true, fmt.Sprintf("Resolved %d handler(s)", d.HandlerCount()))
	}
	return d, nil
}

// closeDispatcher releases handler resources, logging rather than failing.
func (m *Manager) closeDispatcher(d *dispatch.Dispatcher) {
	if err := d.Close(); err != nil {
		closeErr := wrapWithSentinel(ErrCloseHandlerFailed, err, err.Error())
		m.logger.Warn("Handlers did not close cleanly", zap.Error(closeErr))
	}
}

func (m *Manager) configPath(flag string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	return m.config.ConfigPath
}

func containsControlChars(values ...string) bool {
	for _, v := range values {
		if strings.ContainsAny(v, "\r\n\t\x00") {
			return true
		}
	}
	return false
}
