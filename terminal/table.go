// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"strings"

	"github.com/ryanuber/columnize"
)

// Passed to UI.Table to provide a nicely formatted table.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a new Table structure that can be used with UI.Table.
func NewTable(headers ...string) *Table {
	return &Table{
		Headers: headers,
	}
}

// Rich adds a row to the table.
func (t *Table) Rich(cols ...string) {
	t.Rows = append(t.Rows, cols)
}

// Table implements UI
func (u *basicUI) Table(tbl *Table, opts ...Option) {
	cfg := &config{Writer: u.out()}
	for _, opt := range opts {
		opt(cfg)
	}

	lines := make([]string, 0, len(tbl.Rows)+1)
	if len(tbl.Headers) > 0 {
		lines = append(lines, formatTableRow(tbl.Headers))
	}
	for _, row := range tbl.Rows {
		lines = append(lines, formatTableRow(row))
	}

	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	colorInfo.Fprintln(cfg.Writer, columnize.Format(lines, columnConf))
}

// formatTableRow joins the cells with the columnize delimiter, escaping any
// delimiter inside a cell so it stays in one column.
func formatTableRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", "¦")
	}
	return strings.Join(escaped, " | ")
}
