package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"faultline/pkg/errx"
)

// NewCodesCmd returns the codes subcommand.
func NewCodesCmd(logger *zap.Logger) *cobra.Command {
	return NewCodesCmdWithManager(DefaultManager(logger))
}

// NewCodesCmdWithManager returns the codes subcommand using the provided manager.
func NewCodesCmdWithManager(mgr *Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "Print the registered error codes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			mgr.ListCodes()
		},
	}
}

// ListCodes prints the errx code registry.
func (m *Manager) ListCodes() {
	table := [][]string{{"Code", "Description"}}
	for _, entry := range errx.ErrorRegistry() {
		table = append(table, []string{entry.Code, entry.Description})
	}
	m.printer.TableBoxed(table)
}
