// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package errors

import "strings"

// UIContextPrefix* are the prefixes commonly used to create a string used in
// UI errors outputs. If a prefix is used more than once, it should have a
// const created.
const (
	UIContextPrefixVarFile    = "Var File: "
	UIContextPrefixVariable   = "Variable: "
	UIContextPrefixOutputFile = "Output File: "
	UIContextPrefixAddress    = "Address: "
	UIContextPrefixBasePath   = "Base Path: "
	UIContextPrefixHCLRange   = "HCL Range: "
)

// UIErrorContext is used to store and manipulate error context strings used
// by the CLI to output user-friendly, rich information.
type UIErrorContext struct {
	contexts []string
}

// NewUIErrorContext creates an empty UIErrorContext.
func NewUIErrorContext() *UIErrorContext { return &UIErrorContext{} }

// Add formats and appends the passed prefix and value onto the error contexts.
func (u *UIErrorContext) Add(prefix, val string) {
	u.contexts = append(u.contexts, prefix+val)
}

// Append takes an existing UIErrorContext and appends any context into the
// current.
func (u *UIErrorContext) Append(context *UIErrorContext) {
	u.contexts = append(u.contexts, context.GetAll()...)
}

// Copy to currently stored contexts into a new UIErrorContext.
func (u *UIErrorContext) Copy() *UIErrorContext {
	return &UIErrorContext{contexts: append([]string(nil), u.contexts...)}
}

// GetAll returns all the stored context strings.
func (u *UIErrorContext) GetAll() []string { return u.contexts }

// String returns the stored contexts as a minimally formatted string.
func (u *UIErrorContext) String() string { return strings.Join(u.contexts, "\n") }
