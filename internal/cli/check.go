package cli

// This file implements the "check" command, which validates an error
// handling configuration against the built-in handlers.

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"faultline/pkg/dispatch"
	"faultline/pkg/dispatch/source"
)

// NewCheckCmd returns the check subcommand.
func NewCheckCmd(logger *zap.Logger) *cobra.Command {
	return NewCheckCmdWithManager(DefaultManager(logger))
}

// NewCheckCmdWithManager returns the check subcommand using the provided manager.
func NewCheckCmdWithManager(mgr *Manager) *cobra.Command {
	var configPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate an error handling configuration",
		Long: `Load an error handling configuration, resolve every handler it
references and report which handlers serve which error types.

With --strict, a missing configuration file or any unresolved handler
makes the command fail.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := mgr.Check(configPath, strict)
			logStructuredError(mgr.logger, err, "Configuration check failed")
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration file (env FAULTLINE_CONFIG, default faultline.yaml)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the file is missing or a handler cannot be resolved")

	return cmd
}

// Check loads the configuration at path (or the configured default) and
// prints its resolved handlers.
func (m *Manager) Check(path string, strict bool) error {
	path = m.configPath(path)
	m.printer.Section("Checking " + path)

	doc, err := source.NewFile(path, m.logger).Read()
	if err != nil {
		ctx := map[string]any{"path": path}
		if !errors.Is(err, os.ErrNotExist) {
			return wrapWithSentinelAndContext(ErrConfigInvalid, err, err.Error(), ctx)
		}
		if strict {
			return wrapWithSentinelAndContext(ErrConfigNotFound, err, fmt.Sprintf("configuration file %s not found", path), ctx)
		}
		m.printer.Warn(fmt.Sprintf("Configuration file %s not found; no handlers are configured", path))
	}

	cfg := doc.Configuration()
	// captured before resolution prunes unresolved refs
	rows := handlerRows(cfg)

	d, err := m.newDispatcher(cfg)
	if err != nil {
		return err
	}
	defer m.closeDispatcher(d)

	if len(rows) == 0 {
		m.printer.Info("No handlers configured")
		return nil
	}

	table := [][]string{{"Handler", "Status", "Handles"}}
	for _, row := range rows {
		status := Green("resolved")
		if _, ok := d.Handler(row.ref); !ok {
			status = Red("unresolved")
		}
		table = append(table, []string{row.ref, status, strings.Join(row.handles, ", ")})
	}
	m.printer.Table(table)

	if unresolved := d.Unresolved(); strict && len(unresolved) > 0 {
		return wrapWithSentinelAndContext(ErrUnresolvedHandlers, nil,
			fmt.Sprintf("%d handler(s) could not be resolved: %s", len(unresolved), strings.Join(unresolved, ", ")),
			map[string]any{"path": path, "refs": unresolved})
	}
	m.printer.Success("Configuration is usable")
	return nil
}

type handlerRow struct {
	ref     string
	handles []string
}

// handlerRows lists every ref with the error types it handles, in
// configuration order. Defaults handle "(default)".
func handlerRows(cfg *dispatch.Configuration) []handlerRow {
	index := make(map[string]int)
	var rows []handlerRow
	add := func(ref, handles string) {
		i, ok := index[ref]
		if !ok {
			i = len(rows)
			index[ref] = i
			rows = append(rows, handlerRow{ref: ref})
		}
		rows[i].handles = append(rows[i].handles, handles)
	}
	for _, typeID := range cfg.TypeIDs() {
		for _, ref := range cfg.ExceptionHandlersFor(typeID, false) {
			add(ref, typeID)
		}
	}
	for _, ref := range cfg.DefaultHandlers() {
		add(ref, "(default)")
	}
	return rows
}
