// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"github.com/mitchellh/go-glint"
	"github.com/posener/complete"

	"github.com/apsmono/invitation/internal/pkg/flag"
	"github.com/apsmono/invitation/internal/pkg/version"
)

type VersionCommand struct {
	*baseCommand

	Version *version.VersionInfo
}

func (c *VersionCommand) Run(args []string) int {
	flagSet := c.Flags()
	c.cmdKey = "version"

	// Initialize. If we fail, we just exit since Init handles the UI.
	if err := c.Init(WithNoArgs(args), WithFlags(flagSet)); err != nil {
		c.ui.ErrorWithContext(err, ErrParsingArgsOrFlags)
		c.ui.Info(c.helpUsageMessage())
		return 1
	}

	stdout, _, err := c.ui.OutputWriters()
	if err != nil {
		c.ui.ErrorWithContext(err, "failed to get output writer")
		return 1
	}

	// Create our new glint document.
	d := glint.New()
	d.SetRenderer(&glint.TerminalRenderer{
		Output: stdout,
		Rows:   10,
		Cols:   180,
	})

	// Create our layout.
	d.Append(glint.Layout(
		glint.Style(
			glint.Text("Invitation"),
			glint.Bold(),
		),
		glint.Text(" "),
		glint.Text("v"+c.Version.VersionNumber()),
	).Row())

	if c.Version.Revision != "" {
		d.Append(glint.Layout(
			glint.Style(
				glint.Text("Revision"),
				glint.Color("green"),
			),
			glint.Text(" "),
			glint.Text(c.Version.Revision),
		).Row())
	}

	// Essentially force a newline and render the output.
	d.Append(glint.Text(""))
	d.RenderFrame()

	// Exit zero since we have completed successfully.
	return 0
}

func (c *VersionCommand) Flags() *flag.Sets {
	return c.flagSet(0, nil)
}

func (c *VersionCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *VersionCommand) AutocompleteFlags() complete.Flags {
	return c.Flags().Completions()
}

func (c *VersionCommand) Synopsis() string {
	return helpText["version"][0]
}

func (c *VersionCommand) Help() string {
	return formatHelp(`
Usage: invitation version
` + helpText["version"][1])
}
