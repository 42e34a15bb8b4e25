// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package winapi

import "github.com/FATESAIKOU/learn-windows-automation/internal/capability"

// Window manipulation needs a Windows session. These stubs keep the backend
// compiling everywhere; the selector only hands it out off Windows when a
// caller explicitly overrides.

func listWindows() ([]capability.Window, error) {
	return nil, capability.ErrUnsupported
}

func moveWindow(capability.WindowHandle, capability.Rect) error {
	return capability.ErrUnsupported
}

func focusWindow(capability.WindowHandle) error {
	return capability.ErrUnsupported
}

func closeWindow(capability.WindowHandle) error {
	return capability.ErrUnsupported
}
