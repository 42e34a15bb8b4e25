// SPDX-License-Identifier: AGPL-3.0-or-later

// Package selector is the single decision point for which capability backend
// a process uses. Nothing above this package branches on platform or on
// "are we testing" — callers ask the selector and get a backend.
package selector

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/FATESAIKOU/learn-windows-automation/internal/capability"
	"github.com/FATESAIKOU/learn-windows-automation/internal/capability/mock"
	"github.com/FATESAIKOU/learn-windows-automation/internal/capability/winapi"
)

// ErrBackendChosen is returned by Override once Current has vended a backend.
// The choice is fixed for the lifetime of the selector; it never changes
// under a running script.
var ErrBackendChosen = errors.New("backend already chosen for this process")

// Selector chooses between the real and mock backends. The default policy is
// the real backend on Windows and the mock backend everywhere else; Override
// replaces the policy result before first use.
//
// Build one per process (or per test) and pass it down — selectors are
// independent, so parallel tests cannot cross-contaminate.
type Selector struct {
	mu       sync.Mutex
	goos     string
	override capability.Backend
	chosen   capability.Backend
}

// New returns a selector using the running platform's default policy.
func New() *Selector {
	return NewForPlatform(runtime.GOOS)
}

// NewForPlatform returns a selector whose default policy treats goos as the
// current platform. Exists so the policy itself is testable on any host.
func NewForPlatform(goos string) *Selector {
	return &Selector{goos: goos}
}

// Current returns the chosen backend, deciding on first call: the override if
// one was set, otherwise the platform default. The decision is then fixed.
func (s *Selector) Current() capability.Backend {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chosen == nil {
		if s.override != nil {
			s.chosen = s.override
		} else if s.goos == "windows" {
			s.chosen = winapi.New()
		} else {
			s.chosen = mock.New()
		}
	}
	return s.chosen
}

// Override forces a specific backend. It must be called before the first
// Current; afterwards the choice is authoritative and Override fails with
// ErrBackendChosen.
func (s *Selector) Override(b capability.Backend) error {
	if b == nil {
		return fmt.Errorf("override backend must not be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chosen != nil {
		return ErrBackendChosen
	}
	s.override = b
	return nil
}

// OverrideByName forces the backend named "mock" or "real". Used by the CLI
// and config layer where the backend arrives as a string.
func (s *Selector) OverrideByName(name string) error {
	switch name {
	case "mock":
		return s.Override(mock.New())
	case "real":
		return s.Override(winapi.New())
	default:
		return fmt.Errorf("unknown backend %q (valid: mock, real)", name)
	}
}

// Clear drops both the override and the chosen backend, returning the
// selector to its initial state. Intended for tests that reuse a selector
// across cases.
func (s *Selector) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = nil
	s.chosen = nil
}
