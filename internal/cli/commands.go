// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/posener/complete"
	"github.com/spf13/afero"

	"github.com/apsmono/invitation/internal/pkg/errors"
	flag "github.com/apsmono/invitation/internal/pkg/flag"
	"github.com/apsmono/invitation/internal/pkg/invitation"
	"github.com/apsmono/invitation/internal/pkg/logging"
	"github.com/apsmono/invitation/internal/pkg/variable/envloader"
	"github.com/apsmono/invitation/internal/pkg/varfile"
	"github.com/apsmono/invitation/terminal"
)

// baseCommand is embedded in all commands to provide common logic and data.
//
// The unexported values are not available until after Init is called. Some
// values are only available in certain circumstances, read the documentation
// for the field to determine if that is the case.
type baseCommand struct {
	cmdKey string
	// Ctx is the base context for the command. It is up to commands to
	// utilize this context so that cancellation works in a timely manner.
	Ctx context.Context

	// Log is the logger to use.
	Log hclog.Logger

	// Example usage
	Example string

	//---------------------------------------------------------------
	// The fields below are only available after calling Init.

	// UI is used to write to the CLI.
	ui terminal.UI

	// fs is the filesystem var files are read from and pages written to.
	fs afero.Fs

	// stdin is read by commands that accept piped input.
	stdin io.Reader

	//---------------------------------------------------------------
	// Internal fields that should not be accessed directly

	// flagPlain is whether the output should be in plain mode.
	flagPlain bool

	// vars sets values for invitation variables
	vars map[string]string

	// envVars sets values for invitation variables from the environment
	envVars map[string]string

	// varFiles is an HCL or JSON file(s) setting one or more values
	// for invitation variables
	varFiles []string

	// ignoreMissingVars determines whether variable overrides that do not
	// correspond to a known variable should be ignored or produce an error
	ignoreMissingVars bool

	// basePath is the URL prefix the page is served under.
	basePath string

	// noDebugPanel hides the URL debug panel.
	noDebugPanel bool

	// args that were present after parsing flags
	args []string

	// options passed in at the global level
	globalOptions []Option
}

func (c *baseCommand) Help() string {
	return helpText[c.cmdKey][1]
}

func (c *baseCommand) Synopsis() string {
	return helpText[c.cmdKey][0]
}

// Close cleans up any resources that the command created. This should be
// defered by any CLI command that embeds baseCommand in the Run command.
func (c *baseCommand) Close() error {
	if closer, ok := c.ui.(io.Closer); ok && closer != nil {
		closer.Close()
	}

	return nil
}

func (c *baseCommand) GetExample() string {
	if len(c.Example) > 0 {
		return "Examples:" + c.Example + "\n"
	}
	return ""
}

type baseConfig struct {
	Args       []string
	Flags      *flag.Sets
	UI         terminal.UI
	Fs         afero.Fs
	Stdin      io.Reader
	Logger     hclog.Logger
	Validation ValidationFn
}

// Init initializes the command by parsing flags and setting up the UI,
// filesystem and logger. You can control what is done by using the options.
//
// Init should be called FIRST within the Run function implementation. Many
// options will affect behavior of other functions that can be called later.
func (c *baseCommand) Init(opts ...Option) error {
	baseCfg := baseConfig{}

	for _, opt := range c.globalOptions {
		opt(&baseCfg)
	}

	for _, opt := range opts {
		opt(&baseCfg)
	}

	// Init our UI first so we can write output to the user immediately.
	ui := baseCfg.UI
	if ui == nil {
		ui = terminal.BasicUI()
	}

	c.ui = ui

	c.fs = baseCfg.Fs
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	c.stdin = baseCfg.Stdin
	if c.stdin == nil {
		c.stdin = os.Stdin
	}

	if baseCfg.Logger != nil {
		c.Log = baseCfg.Logger
	}
	if c.Log == nil {
		c.Log = logging.New(nil)
	}
	c.Log = c.Log.Named(c.cmdKey)

	// Parse flags
	err := baseCfg.Flags.Parse(baseCfg.Args)
	if err != nil {
		return err
	}
	c.args = baseCfg.Flags.Args()

	c.envVars = envloader.New().GetVarsFromEnv()

	// Do any validation after parsing
	if baseCfg.Validation != nil {
		err := baseCfg.Validation(c, c.args)
		if err != nil {
			return err
		}
	}

	// Reset the UI to plain if that was set
	c.flagPlain, _ = strconv.ParseBool(os.Getenv(EnvPlain))
	if c.flagPlain && baseCfg.UI == nil {
		c.ui = terminal.NonInteractiveUI(os.Stdout, os.Stderr)
	}

	return nil
}

// resolveParams layers the invitation variables: defaults, then var files,
// then INVITATION_VAR_* environment variables, then --var flags. Any problem
// is written to the UI before being returned.
func (c *baseCommand) resolveParams(errorContext *errors.UIErrorContext) (invitation.Params, error) {
	params := invitation.Defaults()
	strict := !c.ignoreMissingVars

	decoded := varfile.DecodeFiles(c.fs, c.varFiles)
	if decoded.Diags.HasErrors() {
		for _, wrapped := range errors.HCLDiagsToWrappedUIContext(decoded.Diags) {
			ec := errorContext.Copy()
			ec.Append(wrapped.Context)
			c.ui.ErrorWithContext(wrapped.Err, wrapped.Subject, ec.GetAll()...)
		}
		return params, fmt.Errorf("failed to decode var files: %w", decoded.Diags)
	}

	// Unrelated INVITATION_VAR_* variables in the environment are not worth
	// failing over, so only known names are taken from it.
	env := make(map[string]string, len(c.envVars))
	for name, val := range c.envVars {
		if invitation.IsVariable(name) {
			env[name] = val
		}
	}

	layers := []struct {
		source string
		values map[string]string
	}{
		{source: "var file", values: decoded.Values()},
		{source: "environment", values: env},
		{source: "--var flag", values: c.vars},
	}

	for _, layer := range layers {
		next, err := params.Apply(layer.values, strict)
		if err != nil {
			ec := errorContext.Copy()
			for _, f := range c.varFiles {
				ec.Add(errors.UIContextPrefixVarFile, f)
			}
			c.ui.ErrorWithContext(err, "invalid "+layer.source+" variables", ec.GetAll()...)
			return params, err
		}
		params = next
	}

	c.Log.Debug("resolved invitation variables", "var_files", len(c.varFiles),
		"env_vars", len(env), "cli_vars", len(c.vars))

	return params, nil
}

// flagSet creates the flags for this command. The callback should be used
// to configure the set with your own custom options.
func (c *baseCommand) flagSet(bit flagSetBit, f func(*flag.Sets)) *flag.Sets {
	set := flag.NewSets()
	if bit&flagSetOperation != 0 {
		f := set.NewSet("Operation Options")
		f.StringSliceVarP(&flag.StringSliceVarP{
			StringSliceVar: &flag.StringSliceVar{
				Name:    "var-file",
				Target:  &c.varFiles,
				Default: make([]string, 0),
				Usage: `Specifies the path to a variable override file in HCL
						or JSON. This can be provided multiple times on a single
						command to result in a list of files.`,
				Completion: complete.PredictOr(complete.PredictFiles("*.hcl"), complete.PredictFiles("*.json")),
			},
			Shorthand: "f",
		})

		f.BoolVar(&flag.BoolVar{
			Name:    "ignore-missing-vars",
			Target:  &c.ignoreMissingVars,
			Default: false,
			Usage: `Determines whether override variables that are not known
					invitation variables should be ignored or produce an error.`,
		})

		f.StringMapVar(&flag.StringMapVar{
			Name:   "var",
			Target: &c.vars,
			Usage: `Specifies a single override variable in the form
					key=value and can be specified multiple times per command.`,
			Completion: complete.PredictSet(invitation.Names()...),
		})
	}

	if bit&flagSetPage != 0 {
		f := set.NewSet("Page Options")
		f.StringVarP(&flag.StringVarP{
			StringVar: &flag.StringVar{
				Name:    "base-path",
				Target:  &c.basePath,
				Default: "/khitan-invitation/",
				EnvVar:  "INVITATION_BASE_PATH",
				Usage: `The URL prefix the invitation is served under. It is
						used for canonical and not-found links.`,
			},
			Shorthand: "p",
		})

		f.BoolVar(&flag.BoolVar{
			Name:    "no-debug-panel",
			Target:  &c.noDebugPanel,
			Default: false,
			Usage:   `Omit the URL debug panel from rendered pages.`,
		})
	}

	if f != nil {
		// Configure our values
		f(set)
	}

	return set
}

// Returns minimal help usage message
// Used on flag/arg parse error in c.Init method
func (c *baseCommand) helpUsageMessage() string {
	if c.cmdKey == "" {
		return `See "invitation --help"`
	}
	return fmt.Sprintf(`See "invitation %s --help"`, c.cmdKey)
}

// flagSetBit is used with baseCommand.flagSet
type flagSetBit uint

const (
	flagSetNone      flagSetBit = 1 << iota // nolint:deadcode,varcheck,unused
	flagSetOperation                        // shared flags for variable resolution (render, serve)
	flagSetPage                             // adds the page flags for commands that produce pages
)

// ErrParsingArgsOrFlags should be used in the Init method of a CLI command
// if it returns an error.
var ErrParsingArgsOrFlags = "error parsing args or flags"
