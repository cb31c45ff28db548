// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"strings"

	"github.com/posener/complete"

	"github.com/apsmono/invitation/internal/pkg/flag"
	"github.com/apsmono/invitation/sdk/titlecase"
	"github.com/apsmono/invitation/terminal"
)

// TitleCommand prints text title cased with the same rules the page uses.
type TitleCommand struct {
	*baseCommand

	minorWords   []string
	forceUpper   []string
	keepAcronyms bool
	table        bool
}

// Run satisfies the Run function of the cli.Command interface.
func (c *TitleCommand) Run(args []string) int {
	c.cmdKey = "title"

	if err := c.Init(WithArgs(args), WithFlags(c.Flags())); err != nil {
		c.ui.ErrorWithContext(err, ErrParsingArgsOrFlags)
		c.ui.Info(c.helpUsageMessage())
		return 1
	}

	var inputs []string
	if len(c.args) > 0 {
		inputs = []string{strings.Join(c.args, " ")}
	} else {
		lines, err := readLines(c.stdin)
		if err != nil {
			c.ui.ErrorWithContext(err, "failed to read standard input")
			return 1
		}
		inputs = lines
	}

	caser := titlecase.New(
		titlecase.WithMinorWords(c.minorWords...),
		titlecase.WithForceUpper(c.forceUpper...),
		titlecase.WithKeepAcronyms(c.keepAcronyms),
	)

	if c.table {
		tbl := terminal.NewTable("INPUT", "OUTPUT")
		for _, in := range inputs {
			tbl.Rich(in, caser.String(in))
		}
		c.ui.Table(tbl)
		return 0
	}

	for _, in := range inputs {
		c.ui.Output(caser.String(in))
	}
	return 0
}

func (c *TitleCommand) Flags() *flag.Sets {
	return c.flagSet(0, func(set *flag.Sets) {
		f := set.NewSet("Title Options")

		f.StringSliceVar(&flag.StringSliceVar{
			Name:    "minor-words",
			Target:  &c.minorWords,
			Default: titlecase.DefaultMinorWords(),
			Usage: `Comma separated words kept in lower case unless they start
					or end the text. Replaces the built-in list.`,
		})

		f.StringSliceVar(&flag.StringSliceVar{
			Name:    "force-upper",
			Target:  &c.forceUpper,
			Default: titlecase.DefaultForceUpper(),
			Usage: `Comma separated abbreviations that are always upper cased.
					Replaces the built-in list.`,
		})

		f.BoolVar(&flag.BoolVar{
			Name:    "keep-acronyms",
			Target:  &c.keepAcronyms,
			Default: true,
			Usage:   `Leave words that are already in upper case untouched.`,
		})

		f.BoolVar(&flag.BoolVar{
			Name:    "table",
			Target:  &c.table,
			Default: false,
			Usage:   `Print the input next to its output in a table.`,
		})
	})
}

func (c *TitleCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictAnything
}

func (c *TitleCommand) AutocompleteFlags() complete.Flags {
	return c.Flags().Completions()
}

// Help satisfies the Help function of the cli.Command interface.
func (c *TitleCommand) Help() string {
	c.Example = `
	# Title case a venue.
	invitation title "masjid al-ikhlas, bsd city"

	# Title case every line of a guest list.
	invitation title --table < guests.txt

	# Only treat "dan" as a minor word.
	invitation title --minor-words dan "budi dan siti"
	`

	return formatHelp(`
	Usage: invitation title [<text>...] [options]
	` + helpText["title"][1] + `
` + c.GetExample() + c.Flags().Help())
}

// Synopsis satisfies the Synopsis function of the cli.Command interface.
func (c *TitleCommand) Synopsis() string {
	return helpText["title"][0]
}
