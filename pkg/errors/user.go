// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// Forbidden represents an authorization failure. Its message is the exact
// reply the requester should see in chat; it is never a process-level failure.
type Forbidden struct {
	base
}

// Error returns the error message for Forbidden.
func (f Forbidden) Error() string {
	return f.error()
}

// Unwrap returns the wrapped error, if any.
func (f Forbidden) Unwrap() error {
	return f.err
}

// NewForbidden creates a new Forbidden error with the provided message.
func NewForbidden(message string, err ...error) Forbidden {
	return Forbidden{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotFound represents a lookup that matched nothing, such as an unresolved
// committee name. Like Forbidden, its message is shown to the requester.
type NotFound struct {
	base
}

// Error returns the error message for NotFound.
func (nf NotFound) Error() string {
	return nf.error()
}

// Unwrap returns the wrapped error, if any.
func (nf NotFound) Unwrap() error {
	return nf.err
}

// NewNotFound creates a new NotFound error with the provided message.
func NewNotFound(message string, err ...error) NotFound {
	return NotFound{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Validation represents malformed input, such as an invalid configuration
// value or an unparsable command argument.
type Validation struct {
	base
}

// Error returns the error message for Validation.
func (v Validation) Error() string {
	return v.error()
}

// Unwrap returns the wrapped error, if any.
func (v Validation) Unwrap() error {
	return v.err
}

// NewValidation creates a new Validation error with the provided message.
func NewValidation(message string, err ...error) Validation {
	return Validation{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// UserFacing reports whether err carries a message meant for the requester's
// channel. Command routers reply with the message instead of logging it as a
// failure.
func UserFacing(err error) (string, bool) {
	var forbidden Forbidden
	if errors.As(err, &forbidden) {
		return forbidden.Error(), true
	}
	var notFound NotFound
	if errors.As(err, &notFound) {
		return notFound.Error(), true
	}
	var validation Validation
	if errors.As(err, &validation) {
		return validation.Error(), true
	}
	return "", false
}
