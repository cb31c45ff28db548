// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package errors

import (
	stdErrors "errors"
)

var As = stdErrors.As
var Is = stdErrors.Is
var New = stdErrors.New
var Unwrap = stdErrors.Unwrap

// newError is an alias to the standard errors.New func for use inside
// the errors package to make the code's intention more obvious than
// undecorated calls to New might.
var newError = stdErrors.New

var (
	// ErrNoOutput is returned when a render produced an empty document.
	ErrNoOutput = newError("render produced no output")

	// ErrUnknownVariable is returned when an override names a variable the
	// invitation does not define.
	ErrUnknownVariable = newError("unknown variable")

	// ErrInvalidURL is returned when a link variable is not an absolute
	// http(s) URL.
	ErrInvalidURL = newError("invalid URL")

	// ErrOutputExists is returned when a render target already exists and
	// overwriting was not requested.
	ErrOutputExists = newError("destination file exists and overwrite is unset")
)
