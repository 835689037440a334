package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"faultline/pkg/handlers"
)

var builtinDescriptions = map[string][2]string{
	handlers.RefTrace:      {"Print the error chain to stdout", ""},
	handlers.RefLog:        {"Log the error with structured fields", ""},
	handlers.RefLogr:       {"Log the error through logr", ""},
	handlers.RefCounter:    {"Count errors per type identifier", ""},
	handlers.RefClickHouse: {"Insert an audit row into ClickHouse", envClickHouseDSN},
	handlers.RefKubeEvent:  {"Emit a Kubernetes Warning event", envPodNamespace + ", " + envPodName},
}

// NewHandlersCmd returns the handlers subcommand.
func NewHandlersCmd(logger *zap.Logger) *cobra.Command {
	return NewHandlersCmdWithManager(DefaultManager(logger))
}

// NewHandlersCmdWithManager returns the handlers subcommand using the provided manager.
func NewHandlersCmdWithManager(mgr *Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "handlers",
		Short: "List the built-in handler refs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.ListHandlers()
		},
	}
}

// ListHandlers prints every built-in ref that can appear in a configuration.
func (m *Manager) ListHandlers() error {
	reg, err := m.newRegistry(m.handlerOptions())
	if err != nil {
		logStructuredError(m.logger, err, "Handler registration failed")
		return err
	}
	table := [][]string{{"Ref", "Description", "Requires"}}
	for _, ref := range reg.Refs() {
		info := builtinDescriptions[ref]
		requires := info[1]
		if requires == "" {
			requires = "-"
		}
		table = append(table, []string{ref, info[0], requires})
	}
	m.printer.Table(table)
	return nil
}
