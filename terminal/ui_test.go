// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shoenig/test/must"
)

func TestNamedValues(t *testing.T) {
	var buf bytes.Buffer
	var ui basicUI
	ui.NamedValues([]NamedValue{
		{"hello", "a"},
		{"this", "is"},
		{"a", "test"},
		{"of", "foo"},
		{"the_key_value", "style"},
	},
		WithWriter(&buf),
	)

	expected := `
          hello: a
           this: is
              a: test
             of: foo
  the_key_value: style

`

	must.Eq(t, strings.TrimLeft(expected, "\n"), buf.String())
}

func TestNamedValues_server(t *testing.T) {
	var buf bytes.Buffer
	var ui basicUI
	ui.Output("Serving invitation:", WithHeaderStyle(), WithWriter(&buf))
	ui.NamedValues([]NamedValue{
		{"Address", "127.0.0.1:8080"},
		{"Base Path", "/khitan-invitation/"},
		{"Debug Panel", true},
		{"Empty", ""},
	},
		WithWriter(&buf),
	)

	expected := `
==> Serving invitation:
      Address: 127.0.0.1:8080
    Base Path: /khitan-invitation/
  Debug Panel: true

`

	must.Eq(t, expected, buf.String())
}

func TestStatusStyle(t *testing.T) {
	var buf bytes.Buffer
	var ui basicUI
	ui.Output(strings.TrimSpace(`
one
two
  three`),
		WithWriter(&buf),
		WithInfoStyle(),
	)

	expected := `    one
    two
      three
`

	must.Eq(t, expected, buf.String())
}

func TestOutput_PercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	ui := NonInteractiveUI(&buf, &buf)
	ui.Output("100% hadir")
	must.Eq(t, "100% hadir\n", buf.String())
}

func TestErrorWithContext(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ui := NonInteractiveUI(&stdout, &stderr)

	ui.ErrorWithContext(errors.New("boom"), "failed to render page",
		"Output File: index.html",
		"Base Path: /khitan-invitation/",
	)

	expected := `! Failed to Render Page
  Error:   boom
  Context:
    Output File: index.html
      Base Path: /khitan-invitation/
`

	must.Eq(t, "", stdout.String())
	must.Eq(t, expected, stderr.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	ui := NonInteractiveUI(&buf, &buf)

	tbl := NewTable("Input", "Output")
	tbl.Rich("bsd city", "BSD City")
	tbl.Rich("a|b", "")
	ui.Table(tbl)

	expected := `Input     Output
bsd city  BSD City
a¦b       <none>
`

	must.Eq(t, expected, buf.String())
}

func TestNonInteractiveUI(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ui := NonInteractiveUI(&stdout, &stderr)
	must.False(t, ui.Interactive())

	ui.Warning("careful")
	ui.Success("done")

	must.Eq(t, "done\n", stdout.String())
	must.Eq(t, "careful\n", stderr.String())

	o, e, err := ui.OutputWriters()
	must.NoError(t, err)
	must.True(t, o == io.Writer(&stdout))
	must.True(t, e == io.Writer(&stderr))
}
