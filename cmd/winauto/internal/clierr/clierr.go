// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clierr carries explicit process exit codes on errors so main()
// stays dumb: commands wrap their failures with the right code and the exit
// status falls out at the top.
package clierr

import (
	"errors"
	"fmt"
)

// ExitError is an error with an explicit process exit code. Unwrap is
// implemented so errors.Is/As traverse the cause.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

// ExitCode returns the process exit code this error maps to.
func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message and no cause.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Wrap attaches an exit code to an underlying error. A nil cause yields nil.
func Wrap(code int, cause error) error {
	if cause == nil {
		return nil
	}
	return &ExitError{code: normalize(code), cause: cause}
}

// ExitCodeOf extracts the exit code from any error: 0 for nil, the carried
// code for an ExitError anywhere in the chain, 1 otherwise.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return 1
}

// normalize keeps error codes non-zero; zero is reserved for success.
func normalize(code int) int {
	if code <= 0 {
		return 1
	}
	return code
}
