// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bytes"
	"fmt"
	"path"

	"github.com/posener/complete"

	"github.com/apsmono/invitation/internal/config"
	"github.com/apsmono/invitation/internal/pkg/errors"
	"github.com/apsmono/invitation/internal/pkg/flag"
	"github.com/apsmono/invitation/internal/pkg/invitation"
	"github.com/apsmono/invitation/internal/pkg/renderer"
)

// RenderCommand renders the invitation page and writes it to the terminal or
// to a file. This is useful for hosting the page statically or checking
// variable overrides before serving them.
type RenderCommand struct {
	*baseCommand

	// renderToFile is the path to write the rendered page to instead of
	// standard output.
	renderToFile string

	// overwrite allows an existing renderToFile to be replaced.
	overwrite bool

	// notFound renders the not-found page instead of the invitation.
	notFound bool
}

// Run satisfies the Run function of the cli.Command interface.
func (c *RenderCommand) Run(args []string) int {
	c.cmdKey = "render" // Add cmdKey here to print out helpUsageMessage on Init error

	// Initialize. If we fail, we just exit since Init handles the UI.
	if err := c.Init(
		WithMaximumNArgs(1, args),
		WithFlags(c.Flags()),
	); err != nil {
		c.ui.ErrorWithContext(err, ErrParsingArgsOrFlags)
		c.ui.Info(c.helpUsageMessage())
		return 1
	}

	errorContext := errors.NewUIErrorContext()

	params, err := c.resolveParams(errorContext)
	if err != nil {
		return 1
	}

	// The guest argument has the highest precedence of all.
	if len(c.args) == 1 {
		params, err = params.Apply(map[string]string{invitation.VarGuest: c.args[0]}, true)
		if err != nil {
			c.ui.ErrorWithContext(err, "invalid guest argument", errorContext.GetAll()...)
			return 1
		}
	}

	r, err := renderer.New(renderer.WithStrict(true))
	if err != nil {
		c.ui.ErrorWithContext(err, "failed to load templates", errorContext.GetAll()...)
		return 1
	}

	page := &renderer.Page{
		Params:     params,
		BasePath:   config.NormalizeBasePath(c.basePath),
		DebugPanel: !c.noDebugPanel,
	}
	page.CurrentURL = page.BasePath

	renderFn := r.RenderPage
	if c.notFound {
		renderFn = r.RenderNotFound
	}

	var buf bytes.Buffer
	if err := renderFn(&buf, page); err != nil {
		errorContext.Add(errors.UIContextPrefixBasePath, page.BasePath)
		c.ui.ErrorWithContext(err, "failed to render page", errorContext.GetAll()...)
		return 1
	}

	if c.renderToFile == "" {
		stdout, _, err := c.ui.OutputWriters()
		if err != nil {
			c.ui.ErrorWithContext(err, "failed to get output writer", errorContext.GetAll()...)
			return 1
		}
		if _, err := buf.WriteTo(stdout); err != nil {
			c.ui.ErrorWithContext(err, "failed to write page", errorContext.GetAll()...)
			return 1
		}
		return 0
	}

	outFile := path.Clean(c.renderToFile)
	if err := writeFile(c.fs, outFile, buf.Bytes(), c.overwrite); err != nil {
		errorContext.Add(errors.UIContextPrefixOutputFile, outFile)
		c.ui.ErrorWithContext(err, "failed to write page", errorContext.GetAll()...)
		return 1
	}

	c.ui.Success(fmt.Sprintf("Page for %q written to %s", params.Guest, outFile))
	return 0
}

func (c *RenderCommand) Flags() *flag.Sets {
	return c.flagSet(flagSetOperation|flagSetPage, func(set *flag.Sets) {
		f := set.NewSet("Render Options")

		f.StringVarP(&flag.StringVarP{
			StringVar: &flag.StringVar{
				Name:    "to-file",
				Target:  &c.renderToFile,
				Example: "path",
				Usage: `Path to write the rendered page to instead of standard
						output. Parent directories are created as needed.`,
				Completion: complete.PredictFiles("*.html"),
			},
			Shorthand: "o",
		})

		f.BoolVar(&flag.BoolVar{
			Name:    "overwrite",
			Target:  &c.overwrite,
			Default: false,
			Usage:   `Replace the file given to --to-file if it already exists.`,
		})

		f.BoolVar(&flag.BoolVar{
			Name:    "not-found",
			Target:  &c.notFound,
			Default: false,
			Usage:   `Render the not-found page instead of the invitation.`,
		})
	})
}

func (c *RenderCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictAnything
}

func (c *RenderCommand) AutocompleteFlags() complete.Flags {
	return c.Flags().Completions()
}

// Help satisfies the Help function of the cli.Command interface.
func (c *RenderCommand) Help() string {

	c.Example = `
	# Render the invitation for a guest.
	invitation render "keluarga besar pak ahmad"

	# Render with override variables in a variable file.
	invitation render budi --var-file="./overrides.hcl"

	# Render with cli variable overrides, without the debug panel.
	invitation render --var="venue=Masjid Al-Ikhlas" \
		--var="maps=https://maps.app.goo.gl/abc" --no-debug-panel

	# Write the page to a file, replacing it when it exists.
	invitation render budi --to-file ./out/budi.html --overwrite
	`

	return formatHelp(`
	Usage: invitation render [<guest>] [options]
	` + helpText["render"][1] + `
` + c.GetExample() + c.Flags().Help())
}

// Synopsis satisfies the Synopsis function of the cli.Command interface.
func (c *RenderCommand) Synopsis() string {
	return helpText["render"][0]
}
