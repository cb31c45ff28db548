// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package errors

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/shoenig/test/must"
)

func TestWrappedUIContext_Error(t *testing.T) {
	w := &WrappedUIContext{
		Err:     newError("value must be a string"),
		Subject: "Invalid variable value",
		Context: &UIErrorContext{contexts: []string{"Var File: guest.hcl"}},
	}

	must.Eq(t, "Invalid variable value: value must be a string: \nVar File: guest.hcl", w.Error())
}

func TestWrappedUIContext_Unwrap(t *testing.T) {
	w := &WrappedUIContext{Err: ErrInvalidURL, Context: NewUIErrorContext()}
	must.True(t, Is(w, ErrInvalidURL))
}

func TestWrappedUIContext_HCLDiagsToWrappedUIContext(t *testing.T) {
	diags := hcl.Diagnostics{
		{
			Summary: "Duplicate definition",
			Detail:  "The variable to can not be redefined.",
			Subject: &hcl.Range{Filename: "guest.hcl"},
		},
		{
			Summary: "Unsupported value",
			Detail:  "no subject on this one",
		},
	}

	out := HCLDiagsToWrappedUIContext(diags)
	must.Len(t, 2, out)

	must.Eq(t, "Duplicate definition", out[0].Subject)
	must.EqError(t, out[0].Err, "The variable to can not be redefined.")
	must.Eq(t, []string{"HCL Range: guest.hcl:0,0-0"}, out[0].Context.GetAll())

	must.Eq(t, "Unsupported value", out[1].Subject)
	must.SliceEmpty(t, out[1].Context.GetAll())
}
