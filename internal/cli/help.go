// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/mitchellh/go-glint"
)

// formatHelp takes a raw help string and attempts to colorize it automatically.
func formatHelp(v string) string {
	// Trim the empty space
	v = strings.TrimSpace(v)

	var buf bytes.Buffer
	d := glint.New()
	d.SetRenderer(&glint.TerminalRenderer{
		Output: &buf,

		// We set rows/cols here manually. The important bit is the cols
		// needs to be wide enough so glint doesn't clamp any text and
		// lets the terminal just auto-wrap it. Rows don't make a big
		// difference.
		Rows: 10,
		Cols: 180,
	})

	// seenHeader is flipped to true once we see any reHelpHeader match.
	seenHeader := false

	for _, line := range strings.Split(v, "\n") {
		// Usage, alias and example lines get a colored prefix.
		if prefix, ok := helpPrefix(line); ok {
			d.Append(glint.Layout(
				glint.Style(
					glint.Text(prefix),
					glint.Color("lightMagenta"),
				),
				glint.Text(line[len(prefix):]),
			).Row())

			continue
		}

		// A header line
		if reHelpHeader.MatchString(line) {
			seenHeader = true

			d.Append(glint.Style(
				glint.Text(line),
				glint.Bold(),
			))

			continue
		}

		// If we have a command in the line, then highlight that.
		if matches := reCommand.FindAllStringIndex(line, -1); len(matches) > 0 {
			var cs []glint.Component
			idx := 0
			for _, match := range matches {
				start := match[0] + 1
				end := match[1] - 1

				cs = append(
					cs,
					glint.Text(line[idx:start]),
					glint.Style(
						glint.Text(line[start:end]),
						glint.Color("lightMagenta"),
					),
				)

				idx = end
			}

			// Add the rest of the text
			cs = append(cs, glint.Text(line[idx:]))

			d.Append(glint.Layout(cs...).Row())
			continue
		}

		// The styles in this block we only want to apply before any headers.
		if !seenHeader {
			// If we have a flag in the line, then highlight that.
			if matches := reFlag.FindAllStringSubmatchIndex(line, -1); len(matches) > 0 {
				const matchGroup = 2 // the subgroup that has the actual flag

				var cs []glint.Component
				idx := 0
				for _, match := range matches {
					start := match[matchGroup*2]
					end := match[matchGroup*2+1]

					cs = append(
						cs,
						glint.Text(line[idx:start]),
						glint.Style(
							glint.Text(line[start:end]),
							glint.Color("lightMagenta"),
						),
					)

					idx = end
				}

				// Add the rest of the text
				cs = append(cs, glint.Text(line[idx:]))

				d.Append(glint.Layout(cs...).Row())
				continue
			}
		}

		// Normal line
		d.Append(glint.Text(line))
	}

	d.RenderFrame()
	return buf.String()
}

var helpPrefixes = []string{"Usage: ", "Alias: ", "Examples:"}

func helpPrefix(line string) (string, bool) {
	for _, prefix := range helpPrefixes {
		if strings.HasPrefix(line, prefix) {
			return prefix, true
		}
	}
	return "", false
}

var (
	reHelpHeader = regexp.MustCompile(`^[a-zA-Z0-9_-].*:$`)
	reCommand    = regexp.MustCompile(`"invitation (\w\s?)+"`)
	reFlag       = regexp.MustCompile(`(\s|^|")(-[\w-]+)(\s|$|"|=)`)
)

// helpText holds the synopsis and description of each command, keyed by the
// command name.
var helpText = map[string][2]string{
	"render": {
		"Render the invitation page",
		`
Render the personalized invitation page as a standalone HTML document. The
guest name may be given as the only argument; every other variable comes from
var files, INVITATION_VAR_* environment variables and --var flags, in that
order of precedence.
`,
	},
	"serve": {
		"Serve the invitation over HTTP",
		`
Serve starts an HTTP server for the invitation. Var files, INVITATION_VAR_*
environment variables and --var flags form the base variables, which each
request can override with query parameters. The guest name can also be given
in the path, as in /khitan-invitation/invite/<guest>.
`,
	},
	"title": {
		"Title case text",
		`
Title case the given text the way names, places and dates are shown on the
invitation. Arguments are joined with spaces. Without arguments every line of
standard input is converted.
`,
	},
	"version": {
		"Prints the version of Invitation",
		`
Prints the version information for Invitation.
`,
	},
}
