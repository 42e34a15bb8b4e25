// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scripts holds the built-in script bodies. Each body is a plain
// entry point registered by the same name its metadata file declares; the
// engine pairs the two at execution time. Bodies reach the desktop only
// through the capability backend handed to them — never through the OS
// directly — so every one of them runs unchanged against the mock backend.
package scripts

import (
	"github.com/FATESAIKOU/learn-windows-automation/internal/engine"
)

// Handlers returns the entry points of all built-in scripts, keyed by script
// name.
func Handlers() map[string]engine.Handler {
	return map[string]engine.Handler{
		"simple_clipboard":      SimpleClipboard,
		"window_organizer":      WindowOrganizer,
		"hello_document":        HelloDocument,
		"multi_app_coordinator": MultiAppCoordinator,
	}
}
