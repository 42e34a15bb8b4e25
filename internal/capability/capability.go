// SPDX-License-Identifier: AGPL-3.0-or-later

// Package capability defines the automation operations a script may call,
// independent of whether they are served by a live Windows session or by an
// in-memory simulation. Scripts are written once against Backend and never
// branch on which implementation they got.
package capability

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped in an Error) when a window or document
// lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ErrUnsupported is returned (wrapped in an Error) when an operation requires
// a Windows session that the current process does not have.
var ErrUnsupported = errors.New("operation not supported on this platform")

// WindowHandle identifies a top-level window for the lifetime of a backend.
type WindowHandle uint64

// DocumentHandle identifies an open document for the lifetime of a backend.
type DocumentHandle uint64

// Rect is a window placement in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Window describes one top-level window known to a backend.
type Window struct {
	Handle WindowHandle
	Title  string
	Rect   Rect
}

// Backend is the full set of automation operations exposed to script bodies.
// Both implementations satisfy the same contract: identical signatures and
// identical error kinds, so callers stay backend-agnostic by construction.
//
// A backend value is shared per process. Its operations are safe for use by a
// single running script; uncoordinated concurrent mutation from parallel
// scripts is not part of the contract.
type Backend interface {
	// Name identifies the backend ("mock" or "winapi") for diagnostics only.
	Name() string

	// FindWindow returns the first window whose title contains the given
	// substring. A miss is an *Error wrapping ErrNotFound.
	FindWindow(title string) (Window, error)
	// ListWindows returns all visible top-level windows in a stable order.
	ListWindows() ([]Window, error)
	MoveWindow(h WindowHandle, r Rect) error
	FocusWindow(h WindowHandle) error
	CloseWindow(h WindowHandle) error
	// LaunchApp starts an application and returns its main window once one
	// can be located. The window lookup is best-effort on the real backend.
	LaunchApp(path string, args ...string) (Window, error)

	GetClipboardText() (string, error)
	SetClipboardText(text string) error

	// OpenDocument opens (or creates) a text document for editing.
	OpenDocument(path string) (DocumentHandle, error)
	AppendDocumentText(h DocumentHandle, text string) error
	// SaveDocument persists the document's accumulated content.
	SaveDocument(h DocumentHandle) error
	CloseDocument(h DocumentHandle) error
}

// Error is the single error kind surfaced by capability operations. It names
// the failed operation and wraps the underlying cause so callers can use
// errors.Is against ErrNotFound, ErrUnsupported, or OS-level errors.
//
// Backends never swallow an underlying failure; the capability layer itself
// never catches these either — they propagate into the execution engine.
type Error struct {
	Backend string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("capability %s failed (%s backend): %v", e.Op, e.Backend, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// OpFailed wraps an underlying failure into an *Error.
func OpFailed(backend, op string, err error) error {
	return &Error{Backend: backend, Op: op, Err: err}
}
