// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/apsmono/invitation/sdk/titlecase"
)

// basicUI writes styled lines to a pair of writers. The zero value writes
// to color.Output and color.Error.
type basicUI struct {
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
}

// BasicUI returns a UI writing to the process stdout and stderr. It is
// interactive when stdout is a terminal.
func BasicUI() UI {
	return &basicUI{
		stdout:      color.Output,
		stderr:      color.Error,
		interactive: isTerminal(os.Stdout),
	}
}

// NonInteractiveUI returns a UI writing uncolored output to stdout and
// stderr. It is used for plain mode and tests.
func NonInteractiveUI(stdout, stderr io.Writer) UI {
	return &basicUI{
		stdout: stdout,
		stderr: stderr,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (u *basicUI) out() io.Writer {
	if u.stdout == nil {
		return color.Output
	}
	return u.stdout
}

func (u *basicUI) err() io.Writer {
	if u.stderr == nil {
		return color.Error
	}
	return u.stderr
}

// Interactive implements UI
func (u *basicUI) Interactive() bool {
	return u.interactive
}

// OutputWriters implements UI
func (u *basicUI) OutputWriters() (io.Writer, io.Writer, error) {
	return u.out(), u.err(), nil
}

// Output implements UI
func (u *basicUI) Output(msg string, raw ...interface{}) {
	msg, style, w := interpret(u.out(), msg, raw...)

	switch style {
	case HeaderStyle:
		msg = colorHeader.Sprintf("\n==> %s", msg)
	case ErrorStyle:
		msg = colorError.Sprint(msg)
	case ErrorBoldStyle:
		msg = colorErrorBold.Sprint(msg)
	case WarningStyle:
		msg = colorWarning.Sprint(msg)
	case WarningBoldStyle:
		msg = colorWarningBold.Sprint(msg)
	case SuccessStyle:
		msg = colorSuccess.Sprint(msg)
	case SuccessBoldStyle:
		msg = colorSuccessBold.Sprint(msg)
	case TraceStyle:
		msg = colorTrace.Sprint(msg)
	case DebugStyle:
		msg = colorDebug.Sprint(msg)
	case BoldStyle:
		msg = colorHeader.Sprint(msg)
	case InfoStyle:
		lines := strings.Split(msg, "\n")
		for i, line := range lines {
			lines[i] = colorInfo.Sprintf("    %s", line)
		}
		msg = strings.Join(lines, "\n")
	}

	fmt.Fprintln(w, msg)
}

// NamedValues implements UI
func (u *basicUI) NamedValues(rows []NamedValue, opts ...Option) {
	cfg := &config{Writer: u.out()}
	for _, opt := range opts {
		opt(cfg)
	}

	var buf bytes.Buffer
	tr := tabwriter.NewWriter(&buf, 1, 8, 0, ' ', tabwriter.AlignRight)
	for _, row := range rows {
		switch v := row.Value.(type) {
		case int, uint, int8, uint8, int16, uint16, int32, uint32, int64, uint64:
			fmt.Fprintf(tr, "  %s: \t%d\n", row.Name, row.Value)
		case float32, float64:
			fmt.Fprintf(tr, "  %s: \t%f\n", row.Name, row.Value)
		case bool:
			fmt.Fprintf(tr, "  %s: \t%v\n", row.Name, row.Value)
		case string:
			if v == "" {
				continue
			}
			fmt.Fprintf(tr, "  %s: \t%s\n", row.Name, row.Value)
		case *string:
			if v == nil || *v == "" {
				continue
			}
			fmt.Fprintf(tr, "  %s: \t%s\n", row.Name, *v)
		default:
			fmt.Fprintf(tr, "  %s: \t%s\n", row.Name, row.Value)
		}
	}

	_ = tr.Flush()
	colorInfo.Fprintln(cfg.Writer, buf.String())
}

// Debug implements UI
func (u *basicUI) Debug(msg string) {
	u.Output(msg, WithDebugStyle(), WithWriter(u.err()))
}

// Error implements UI
func (u *basicUI) Error(msg string) {
	u.Output(msg, WithErrorStyle(), WithWriter(u.err()))
}

// ErrorWithContext implements UI
func (u *basicUI) ErrorWithContext(err error, sub string, ctx ...string) {
	u.Output("! "+titlecase.Title(sub), WithStyle(ErrorBoldStyle), WithWriter(u.err()))
	u.Error("  Error:   " + err.Error())

	if len(ctx) == 0 {
		return
	}

	// Line the context values up on the colon that closes their prefix.
	maxPrefix := 0
	for _, entry := range ctx {
		if idx := strings.Index(entry, ":"); idx > maxPrefix {
			maxPrefix = idx
		}
	}

	u.Error("  Context:")
	for _, entry := range ctx {
		pad := 0
		if idx := strings.Index(entry, ":"); idx >= 0 {
			pad = maxPrefix - idx
		}
		u.Error("    " + strings.Repeat(" ", pad) + entry)
	}
}

// Header implements UI
func (u *basicUI) Header(msg string) {
	u.Output(msg, WithHeaderStyle())
}

// Info implements UI
func (u *basicUI) Info(msg string) {
	u.Output(msg, WithInfoStyle())
}

// Success implements UI
func (u *basicUI) Success(msg string) {
	u.Output(msg, WithSuccessStyle())
}

// Trace implements UI
func (u *basicUI) Trace(msg string) {
	u.Output(msg, WithTraceStyle(), WithWriter(u.err()))
}

// Warning implements UI
func (u *basicUI) Warning(msg string) {
	u.Output(msg, WithWarningStyle(), WithWriter(u.err()))
}

// WarningBold implements UI
func (u *basicUI) WarningBold(msg string) {
	u.Output(msg, WithStyle(WarningBoldStyle), WithWriter(u.err()))
}
