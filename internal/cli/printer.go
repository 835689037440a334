package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Green, Yellow, Red and Cyan colorize text for terminal output.
func Green(s string) string  { return pterm.Green(s) }
func Yellow(s string) string { return pterm.Yellow(s) }
func Red(s string) string    { return pterm.Red(s) }
func Cyan(s string) string   { return pterm.Cyan(s) }

// Table renders rows to stdout. The first row is the header.
func Table(data [][]string) {
	NewPrinter(os.Stdout).Table(data)
}

// TableBoxed renders rows to stdout inside a box.
func TableBoxed(data [][]string) {
	NewPrinter(os.Stdout).TableBoxed(data)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ConfigureStyling turns off colors and box drawing when w is not a terminal,
// so piped output stays plain.
func ConfigureStyling(w io.Writer) {
	if IsTerminal(w) {
		pterm.EnableStyling()
		return
	}
	pterm.DisableStyling()
}

// Printer writes human-oriented command output.
type Printer struct {
	Out   io.Writer
	Quiet bool
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{Out: w}
}

func (p *Printer) writer() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// Section prints a heading.
func (p *Printer) Section(title string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.writer(), pterm.DefaultSection.Sprintln(title))
}

// Step prints a progress line.
func (p *Printer) Step(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.writer(), Cyan("→")+" "+msg)
}

// Info prints an informational line.
func (p *Printer) Info(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.writer(), pterm.Info.Sprintln(msg))
}

// Success prints a success line, even in quiet mode.
func (p *Printer) Success(msg string) {
	fmt.Fprint(p.writer(), pterm.Success.Sprintln(msg))
}

// Warn prints a warning line, even in quiet mode.
func (p *Printer) Warn(msg string) {
	fmt.Fprint(p.writer(), pterm.Warning.Sprintln(msg))
}

// Error prints an error line, even in quiet mode.
func (p *Printer) Error(msg string) {
	fmt.Fprint(p.writer(), pterm.Error.Sprintln(msg))
}

// Printf writes formatted text as is.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.writer(), format, args...)
}

// Table renders rows; the first row is the header. Empty input prints nothing.
func (p *Printer) Table(data [][]string) {
	p.renderTable(data, false)
}

// TableBoxed is Table inside a box.
func (p *Printer) TableBoxed(data [][]string) {
	p.renderTable(data, true)
}

func (p *Printer) renderTable(data [][]string, boxed bool) {
	if len(data) == 0 {
		return
	}
	table := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(data))
	if boxed {
		table = table.WithBoxed()
	}
	out, err := table.Srender()
	if err != nil {
		p.Error(fmt.Sprintf("%v: %v", ErrRenderOutputFailed, err))
		return
	}
	fmt.Fprintln(p.writer(), out)
}

// SpinnerStart shows a spinner on interactive terminals and returns a stop
// function that reports the outcome. Elsewhere it only prints the outcome.
func (p *Printer) SpinnerStart(msg string) func(ok bool, result string) {
	if p.Quiet || !IsTerminal(p.writer()) {
		return func(ok bool, result string) {
			if p.Quiet {
				return
			}
			if ok {
				p.Success(result)
				return
			}
			p.Error(result)
		}
	}
	spinner, err := pterm.DefaultSpinner.WithWriter(p.writer()).Start(msg)
	if err != nil {
		p.Step(msg)
		return func(ok bool, result string) {
			if ok {
				p.Success(result)
				return
			}
			p.Error(result)
		}
	}
	return func(ok bool, result string) {
		if ok {
			spinner.Success(result)
			return
		}
		spinner.Fail(result)
	}
}
