// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	flag "github.com/apsmono/invitation/internal/pkg/flag"
	"github.com/apsmono/invitation/terminal"
)

// Option is used to configure Init on baseCommand.
type Option func(c *baseConfig)

// WithArgs sets the arguments to the command that are used for parsing.
// Remaining arguments can be accessed using your flag set and asking for Args.
// Example: c.Flags().Args().
func WithArgs(args []string) Option {
	return func(c *baseConfig) { c.Args = args }
}

// The same as WithArgs, but also assigns the validation function NoArgs
// which returns an error if any args are provided. Only the function is
// assigned; actual validation happens after the flags have been parsed.
func WithNoArgs(args []string) Option {
	return func(c *baseConfig) {
		c.Args = args
		c.Validation = NoArgs
	}
}

// The same as WithArgs, but also assigns the validation function MaximumNArgs
// which returns an error if more than N args are provided. Only the function
// is assigned; actual validation happens after the flags have been parsed.
func WithMaximumNArgs(n int, args []string) Option {
	return func(c *baseConfig) {
		c.Args = args
		c.Validation = MaximumNArgs(n)
	}
}

// WithFlags sets the flags that are supported by this command. This MUST
// be set otherwise a panic will happen. This is usually set by just calling
// the Flags function on your command implementation.
func WithFlags(f *flag.Sets) Option {
	return func(c *baseConfig) { c.Flags = f }
}

// WithUI configures the CLI to use a specific UI implementation
func WithUI(ui terminal.UI) Option {
	return func(c *baseConfig) {
		c.UI = ui
	}
}

// WithFs configures the filesystem var files are read from and rendered
// pages are written to. The OS filesystem is used when unset.
func WithFs(fs afero.Fs) Option {
	return func(c *baseConfig) {
		c.Fs = fs
	}
}

// WithStdin configures the reader used by commands that accept piped input.
func WithStdin(r io.Reader) Option {
	return func(c *baseConfig) {
		c.Stdin = r
	}
}

// WithLogger configures the logger handed to commands.
func WithLogger(log hclog.Logger) Option {
	return func(c *baseConfig) {
		c.Logger = log
	}
}
