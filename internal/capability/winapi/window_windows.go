// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package winapi

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/FATESAIKOU/learn-windows-automation/internal/capability"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows         = user32.NewProc("EnumWindows")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
	procIsWindowVisible     = user32.NewProc("IsWindowVisible")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procPostMessageW        = user32.NewProc("PostMessageW")
)

const (
	wmClose        = 0x0010
	swpNoZOrder    = 0x0004
	swpNoActivate  = 0x0010
	maxTitleLength = 512
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

func listWindows() ([]capability.Window, error) {
	var wins []capability.Window
	cb := syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
			return 1
		}
		buf := make([]uint16, maxTitleLength)
		n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
		if n == 0 {
			// Untitled windows are tool/background windows; skip them the
			// way EnumWindows consumers conventionally do.
			return 1
		}
		var r winRect
		_, _, _ = procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
		wins = append(wins, capability.Window{
			Handle: capability.WindowHandle(hwnd),
			Title:  windows.UTF16ToString(buf[:n]),
			Rect: capability.Rect{
				X:      int(r.Left),
				Y:      int(r.Top),
				Width:  int(r.Right - r.Left),
				Height: int(r.Bottom - r.Top),
			},
		})
		return 1
	})
	if ret, _, err := procEnumWindows.Call(cb, 0); ret == 0 {
		return nil, err
	}
	return wins, nil
}

func moveWindow(h capability.WindowHandle, r capability.Rect) error {
	ret, _, err := procSetWindowPos.Call(
		uintptr(h), 0,
		uintptr(r.X), uintptr(r.Y), uintptr(r.Width), uintptr(r.Height),
		swpNoZOrder|swpNoActivate,
	)
	if ret == 0 {
		return err
	}
	return nil
}

func focusWindow(h capability.WindowHandle) error {
	// SetForegroundWindow fails when the calling process is not allowed to
	// steal focus; that is surfaced to the script rather than retried.
	if ret, _, err := procSetForegroundWindow.Call(uintptr(h)); ret == 0 {
		return err
	}
	return nil
}

func closeWindow(h capability.WindowHandle) error {
	if ret, _, err := procPostMessageW.Call(uintptr(h), wmClose, 0, 0); ret == 0 {
		return err
	}
	return nil
}
