// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"fmt"
	"io"
)

// Passed to UI.NamedValues to provide a nicely formatted key: value output
type NamedValue struct {
	Name  string
	Value interface{}
}

// UI is the primary interface for interacting with a user via the CLI.
type UI interface {
	// Interactive returns true if the output is attached to a terminal.
	Interactive() bool

	// Output outputs a message directly to the terminal. The remaining
	// arguments should be interpolations for the format string. After the
	// interpolations you may add Options.
	Output(string, ...interface{})

	// NamedValues outputs data as a table of data. Each entry is a row which will be output
	// with the columns lined up nicely.
	NamedValues([]NamedValue, ...Option)

	// OutputWriters returns stdout and stderr writers. These are usually
	// but not always TTYs. Rendered pages are written straight to stdout.
	OutputWriters() (stdout, stderr io.Writer, err error)

	// Table outputs the information formatted into a Table structure.
	Table(*Table, ...Option)

	// Debug formats output with the DebugStyle
	Debug(string)

	// Error formats Output with the ErrorStyle
	Error(string)

	// ErrorWithContext formats an error output including additional context so
	// users can easily identify issues.
	ErrorWithContext(err error, sub string, ctx ...string)

	// Header formats Output with the HeaderStyle
	Header(string)

	// Info formats Output with the InfoStyle
	Info(string)

	// Success formats Output with the SuccessStyle
	Success(string)

	// Trace formats Output with the TraceStyle
	Trace(string)

	// Warning formats Output with the WarningStyle
	Warning(string)

	// WarningBold formats Output with the WarningBoldStyle
	WarningBold(string)
}

func interpret(w io.Writer, msg string, raw ...interface{}) (string, string, io.Writer) {
	// Build our args and options
	var args []interface{}
	var opts []Option
	for _, r := range raw {
		if opt, ok := r.(Option); ok {
			opts = append(opts, opt)
		} else {
			args = append(args, r)
		}
	}

	// Build our message
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	// Build our config and set our options
	cfg := &config{Writer: w}
	for _, opt := range opts {
		opt(cfg)
	}

	return msg, cfg.Style, cfg.Writer
}

const (
	HeaderStyle      = "header"
	DebugStyle       = "debug"
	ErrorStyle       = "error"
	ErrorBoldStyle   = "error-bold"
	TraceStyle       = "trace"
	WarningStyle     = "warning"
	WarningBoldStyle = "warning-bold"
	InfoStyle        = "info"
	SuccessStyle     = "success"
	SuccessBoldStyle = "success-bold"
	BoldStyle        = "bold"

	DefaultStyle = "default"
)

type config struct {
	// Writer is where the message will be written to.
	Writer io.Writer

	// The style the output should take on
	Style string
}
