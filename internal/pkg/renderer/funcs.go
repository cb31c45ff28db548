// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package renderer

import (
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/davecgh/go-spew/spew"

	"github.com/apsmono/invitation/internal/pkg/invitation"
	"github.com/apsmono/invitation/sdk/titlecase"
)

// funcMap instantiates our default template function map with populated
// functions for use within html/template.
func funcMap(c *titlecase.Caser) template.FuncMap {

	// Sprig defines our base map.
	f := sprig.FuncMap()

	// Add debugging functions. These back the URL debug panel.
	f["spewDump"] = debugDump

	// Add additional custom functions.
	f["titleCase"] = titleCaseFunc(c)
	f["rsvpLink"] = func(p invitation.Params) string { return p.RSVPLink(c) }

	return f
}

// titleCaseFunc returns the template function that title cases its argument.
// A nil argument renders as the empty string.
func titleCaseFunc(c *titlecase.Caser) func(interface{}) string {
	return func(v interface{}) string {
		switch s := v.(type) {
		case nil:
			return ""
		case string:
			return c.String(s)
		case *string:
			if s == nil {
				return ""
			}
			return c.String(*s)
		case fmt.Stringer:
			return c.String(s.String())
		default:
			return c.String(fmt.Sprint(s))
		}
	}
}

var debugSpew = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// debugDump renders v in spew's dump format, with stable key order and no
// pointer addresses so output is reproducible.
func debugDump(v interface{}) string {
	return debugSpew.Sdump(v)
}
