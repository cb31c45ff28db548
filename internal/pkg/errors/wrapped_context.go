// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package errors

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// WrappedUIContext encapsulates an error, subject, and context that can be
// used to provide detail error outputs to the console.
type WrappedUIContext struct {

	// Err is the full error message to store.
	Err error

	// Subject is a short, high-level summary of the error. File names and
	// similar details belong in Context.
	Subject string

	// Context contains all the context required to fully understand the error
	// and helps troubleshooting.
	Context *UIErrorContext
}

// Error satisfies the builtin error interface.
func (w *WrappedUIContext) Error() string {
	return fmt.Sprintf("%s: %v: \n%s", w.Subject, w.Err, w.Context.String())
}

// Unwrap returns the stored error so errors.Is sees through the wrapper.
func (w *WrappedUIContext) Unwrap() error { return w.Err }

// HCLDiagsToWrappedUIContext converts HCL specific hcl.Diagnostics into an
// array of WrappedUIContext.
func HCLDiagsToWrappedUIContext(diags hcl.Diagnostics) []*WrappedUIContext {
	wrapped := make([]*WrappedUIContext, len(diags))
	for i, diag := range diags {
		wrapped[i] = &WrappedUIContext{
			Err:     newError(diag.Detail),
			Subject: diag.Summary,
			Context: NewUIErrorContext(),
		}
		if diag.Subject != nil {
			wrapped[i].Context.Add(UIContextPrefixHCLRange, diag.Subject.String())
		}
	}
	return wrapped
}
