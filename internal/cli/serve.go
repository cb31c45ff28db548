// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/posener/complete"

	"github.com/apsmono/invitation/internal/config"
	"github.com/apsmono/invitation/internal/pkg/errors"
	"github.com/apsmono/invitation/internal/pkg/flag"
	"github.com/apsmono/invitation/internal/pkg/logging"
	"github.com/apsmono/invitation/internal/pkg/renderer"
	"github.com/apsmono/invitation/internal/server"
	"github.com/apsmono/invitation/terminal"
)

// ServeCommand starts the HTTP server for the invitation.
type ServeCommand struct {
	*baseCommand

	addr            string
	shutdownTimeout time.Duration
	logLevel        string
}

// Run satisfies the Run function of the cli.Command interface.
func (c *ServeCommand) Run(args []string) int {
	c.cmdKey = "serve"

	flagSet := c.Flags()
	if err := c.Init(WithNoArgs(args), WithFlags(flagSet)); err != nil {
		c.ui.ErrorWithContext(err, ErrParsingArgsOrFlags)
		c.ui.Info(c.helpUsageMessage())
		return 1
	}

	c.Log.SetLevel(hclog.LevelFromString(c.logLevel))

	errorContext := errors.NewUIErrorContext()

	cfg, err := c.serverConfig(flagSet)
	if err != nil {
		errorContext.Add(errors.UIContextPrefixAddress, cfg.Addr)
		errorContext.Add(errors.UIContextPrefixBasePath, cfg.BasePath)
		c.ui.ErrorWithContext(err, "invalid server configuration", errorContext.GetAll()...)
		return 1
	}

	params, err := c.resolveParams(errorContext)
	if err != nil {
		return 1
	}

	r, err := renderer.New()
	if err != nil {
		c.ui.ErrorWithContext(err, "failed to load templates", errorContext.GetAll()...)
		return 1
	}

	c.ui.Header("Serving invitation")
	c.ui.NamedValues([]terminal.NamedValue{
		{Name: "Address", Value: cfg.Addr},
		{Name: "Base Path", Value: cfg.BasePath},
		{Name: "Guest", Value: params.Guest},
		{Name: "Debug Panel", Value: cfg.DebugPanel},
		{Name: "Log Level", Value: c.logLevel},
	})

	srv := server.New(cfg, params, r, c.Log)
	if err := srv.Run(c.Ctx); err != nil {
		errorContext.Add(errors.UIContextPrefixAddress, cfg.Addr)
		c.ui.ErrorWithContext(err, "server failed", errorContext.GetAll()...)
		return 1
	}

	c.ui.Success("Server stopped")
	return 0
}

// serverConfig reads the server settings from the environment and applies
// the flags that were set on the command line over them.
func (c *ServeCommand) serverConfig(set *flag.Sets) (config.Server, error) {
	cfg, err := config.LoadServer()
	if err != nil {
		return cfg, err
	}

	if set.Changed("addr") {
		cfg.Addr = c.addr
	}
	if set.Changed("base-path") {
		cfg.BasePath = config.NormalizeBasePath(c.basePath)
	}
	if set.Changed("shutdown-timeout") {
		cfg.ShutdownTimeout = c.shutdownTimeout
	}
	if c.noDebugPanel {
		cfg.DebugPanel = false
	}

	return cfg, cfg.Validate()
}

func (c *ServeCommand) Flags() *flag.Sets {
	return c.flagSet(flagSetOperation|flagSetPage, func(set *flag.Sets) {
		f := set.NewSet("Server Options")

		f.StringVarP(&flag.StringVarP{
			StringVar: &flag.StringVar{
				Name:    "addr",
				Target:  &c.addr,
				Default: "127.0.0.1:8080",
				Example: "host:port",
				Usage: `The address the server listens on. Overrides the
						INVITATION_ADDR environment variable if set.`,
			},
			Shorthand: "a",
		})

		f.DurationVar(&flag.DurationVar{
			Name:    "shutdown-timeout",
			Target:  &c.shutdownTimeout,
			Default: 5 * time.Second,
			Usage: `How long in-flight requests are given to finish once the
					server is asked to stop. Overrides the
					INVITATION_SHUTDOWN_TIMEOUT environment variable if set.`,
		})

		f.EnumSingleVar(&flag.EnumSingleVar{
			Name:    "log-level",
			Target:  &c.logLevel,
			Values:  []string{"trace", "debug", "info", "warn", "error", "off"},
			Default: "info",
			EnvVar:  logging.EnvLogLevel,
			Usage:   `The level of the server log written to standard error.`,
		})
	})
}

func (c *ServeCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *ServeCommand) AutocompleteFlags() complete.Flags {
	return c.Flags().Completions()
}

// Help satisfies the Help function of the cli.Command interface.
func (c *ServeCommand) Help() string {
	c.Example = `
	# Serve the invitation on the default address.
	invitation serve

	# Serve on all interfaces under the site root, with defaults taken from
	# a variable file.
	invitation serve --addr 0.0.0.0:8080 --base-path / -f ./event.hcl
	`

	return formatHelp(`
	Usage: invitation serve [options]
	` + helpText["serve"][1] + `
` + c.GetExample() + c.Flags().Help())
}

// Synopsis satisfies the Synopsis function of the cli.Command interface.
func (c *ServeCommand) Synopsis() string {
	return helpText["serve"][0]
}
