package cli

// This file implements the "dispatch" command, which sends a synthetic error
// through the configured handlers.

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"faultline/pkg/dispatch"
	"faultline/pkg/dispatch/source"
	"faultline/pkg/errx"
	"faultline/pkg/handlers"
)

const adHocDescription = "Ad hoc error"

// DispatchRequest describes the synthetic error to dispatch.
type DispatchRequest struct {
	ConfigPath string
	Code       string
	Message    string
	Cause      string
}

// NewDispatchCmd returns the dispatch subcommand.
func NewDispatchCmd(logger *zap.Logger) *cobra.Command {
	return NewDispatchCmdWithManager(DefaultManager(logger))
}

// NewDispatchCmdWithManager returns the dispatch subcommand using the provided manager.
func NewDispatchCmdWithManager(mgr *Manager) *cobra.Command {
	var req DispatchRequest

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Dispatch a synthetic error to its handlers",
		Long: `Build an error with the given code and message and dispatch it
through the handlers configured for that code, falling back to the default
handlers. Useful to verify sinks end to end.`,
		Example: `  faultline dispatch --code 71000 --message "bad config"
  faultline dispatch --code 81000 --message declined --cause "card expired"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := mgr.Dispatch(req)
			logStructuredError(mgr.logger, err, "Dispatch failed")
			return err
		},
	}

	cmd.Flags().StringVar(&req.ConfigPath, "config", "", "Path to the configuration file (env FAULTLINE_CONFIG, default faultline.yaml)")
	cmd.Flags().StringVar(&req.Code, "code", "", "Error code, used as the type identifier (required)")
	cmd.Flags().StringVar(&req.Message, "message", "", "Error message")
	cmd.Flags().StringVar(&req.Cause, "cause", "", "Optional cause text")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

// Dispatch builds the requested error, dispatches it and prints the report.
// It fails when any handler fails.
func (m *Manager) Dispatch(req DispatchRequest) (dispatch.Report, error) {
	synthetic, err := buildSyntheticError(req)
	if err != nil {
		return dispatch.Report{}, err
	}

	path := m.configPath(req.ConfigPath)
	cfg := source.NewFile(path, m.logger).Load()
	d, err := m.newDispatcher(cfg)
	if err != nil {
		return dispatch.Report{}, err
	}
	defer m.closeDispatcher(d)

	m.printer.Section("Dispatching " + dispatch.TypeID(synthetic))
	report := d.DispatchReport(synthetic)
	m.printReport(report)
	if count, ok := m.errorCount(report.TypeID); ok {
		m.printer.Info(fmt.Sprintf("%s{%s=%q} = %g", handlers.CounterName, handlers.CounterLabel, report.TypeID, count))
	}

	if len(report.Failed) > 0 {
		refs := make([]string, 0, len(report.Failed))
		for ref := range report.Failed {
			refs = append(refs, ref)
		}
		sort.Strings(refs)
		return report, wrapWithSentinelAndContext(ErrHandlerFailures, errors.Join(failures(report, refs)...),
			fmt.Sprintf("%d handler(s) failed: %s", len(refs), strings.Join(refs, ", ")),
			map[string]any{"type_id": report.TypeID, "refs": refs})
	}
	if !report.Handled() {
		m.printer.Warn(fmt.Sprintf("%v for %s", ErrNotHandled, report.TypeID))
		return report, nil
	}
	m.printer.Success(fmt.Sprintf("Dispatched to %d handler(s)", len(report.Invoked)))
	return report, nil
}

func buildSyntheticError(req DispatchRequest) (*errx.Error, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, newWithSentinel(ErrCodeRequired, "--code is required")
	}
	if containsControlChars(req.Code, req.Message, req.Cause) {
		return nil, newWithSentinel(ErrControlCharsNotAllowed, "--code, --message and --cause must not contain control characters")
	}
	desc, ok := errx.DescriptionFor(code)
	if !ok {
		desc = adHocDescription
	}
	var cause error
	if req.Cause != "" {
		cause = errors.New(req.Cause)
	}
	return errx.CreateByCode(code, desc, req.Message, cause).WithContext("source", "cli"), nil
}

func failures(report dispatch.Report, refs []string) []error {
	errs := make([]error, 0, len(refs))
	for _, ref := range refs {
		errs = append(errs, report.Failed[ref])
	}
	return errs
}

func (m *Manager) printReport(report dispatch.Report) {
	table := [][]string{{"Handler", "Result"}}
	for _, ref := range report.Invoked {
		table = append(table, []string{ref, Green("handled")})
	}
	failed := make([]string, 0, len(report.Failed))
	for ref := range report.Failed {
		failed = append(failed, ref)
	}
	sort.Strings(failed)
	for _, ref := range failed {
		table = append(table, []string{ref, Red("failed: " + errx.UserString(report.Failed[ref]))})
	}
	for _, ref := range report.Skipped {
		table = append(table, []string{ref, Yellow("skipped")})
	}
	if len(table) == 1 {
		return
	}
	m.printer.Table(table)
}

// errorCount reads the counter handler's value for typeID from the manager's
// metrics registry. It reports false when the counter handler did not run.
func (m *Manager) errorCount(typeID string) (float64, bool) {
	families, err := m.metrics.Gather()
	if err != nil {
		m.logger.Warn("Metrics could not be gathered", zap.Error(err))
		return 0, false
	}
	for _, family := range families {
		if family.GetName() != handlers.CounterName {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == handlers.CounterLabel && label.GetValue() == typeID {
					return metric.GetCounter().GetValue(), true
				}
			}
		}
	}
	return 0, false
}
