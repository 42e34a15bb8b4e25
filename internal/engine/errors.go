// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"fmt"
	"time"
)

// NotFoundError rejects a request naming a script the registry cannot
// resolve (unknown, disabled, or lacking a registered entry point).
type NotFoundError struct {
	Script string
	Detail string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("script %q not found: %s", e.Script, e.Detail)
	}
	return fmt.Sprintf("script %q not found", e.Script)
}

// BindingError rejects a request whose raw tokens cannot be matched to the
// script's declared arguments. Argument names the offending spec or token.
type BindingError struct {
	Script   string
	Argument string
	Detail   string
}

func (e *BindingError) Error() string {
	if e.Argument != "" {
		return fmt.Sprintf("script %q: argument %q: %s", e.Script, e.Argument, e.Detail)
	}
	return fmt.Sprintf("script %q: %s", e.Script, e.Detail)
}

// TimeoutError fails a request whose body outlived its time box. The body
// goroutine is abandoned best-effort; native resources it already opened are
// not reclaimed.
type TimeoutError struct {
	Script  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("script %q exceeded timeout of %s", e.Script, e.Timeout)
}

// ExecError fails a request whose body returned an error or panicked. It
// wraps the underlying fault, including capability failures, which pass
// through the capability layer uncaught.
type ExecError struct {
	Script string
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("script %q failed: %v", e.Script, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }
