// SPDX-License-Identifier: AGPL-3.0-or-later

// Package winapi is the real capability backend. Window operations go through
// user32 on Windows; clipboard access uses the system clipboard; documents are
// plain text files edited in memory and written out on save.
//
// On non-Windows builds the window operations fail with ErrUnsupported — the
// backend selector only picks this backend off Windows when explicitly
// overridden (e.g. an integration run on a Windows CI box is the normal user).
package winapi

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/FATESAIKOU/learn-windows-automation/internal/capability"
)

const backendName = "winapi"

// launchSettle is how long LaunchApp waits for the started application to
// create its main window before each lookup attempt.
const launchSettle = 250 * time.Millisecond

// launchAttempts bounds the window lookup after starting an application.
const launchAttempts = 8

var _ capability.Backend = (*Backend)(nil)

type documentState struct {
	path string
	text strings.Builder
	open bool
}

// Backend forwards capability operations to the operating system. A single
// value is shared per process; document bookkeeping is internally locked.
type Backend struct {
	mu      sync.Mutex
	nextDoc capability.DocumentHandle
	docs    map[capability.DocumentHandle]*documentState
}

// New returns the real backend.
func New() *Backend {
	return &Backend{
		nextDoc: 1,
		docs:    make(map[capability.DocumentHandle]*documentState),
	}
}

// Name implements capability.Backend.
func (b *Backend) Name() string { return backendName }

// FindWindow implements capability.Backend via a title-substring search over
// the visible top-level windows.
func (b *Backend) FindWindow(title string) (capability.Window, error) {
	wins, err := listWindows()
	if err != nil {
		return capability.Window{}, capability.OpFailed(backendName, "find_window", err)
	}
	for _, w := range wins {
		if strings.Contains(w.Title, title) {
			return w, nil
		}
	}
	return capability.Window{}, capability.OpFailed(backendName, "find_window", capability.ErrNotFound)
}

// ListWindows implements capability.Backend.
func (b *Backend) ListWindows() ([]capability.Window, error) {
	wins, err := listWindows()
	if err != nil {
		return nil, capability.OpFailed(backendName, "list_windows", err)
	}
	return wins, nil
}

// MoveWindow implements capability.Backend.
func (b *Backend) MoveWindow(h capability.WindowHandle, r capability.Rect) error {
	if err := moveWindow(h, r); err != nil {
		return capability.OpFailed(backendName, "move_window", err)
	}
	return nil
}

// FocusWindow implements capability.Backend.
func (b *Backend) FocusWindow(h capability.WindowHandle) error {
	if err := focusWindow(h); err != nil {
		return capability.OpFailed(backendName, "focus_window", err)
	}
	return nil
}

// CloseWindow implements capability.Backend. The close request is posted to
// the window; the application decides whether to honor it.
func (b *Backend) CloseWindow(h capability.WindowHandle) error {
	if err := closeWindow(h); err != nil {
		return capability.OpFailed(backendName, "close_window", err)
	}
	return nil
}

// LaunchApp implements capability.Backend. It starts the process and polls
// for a window whose title contains the executable's base name. Applications
// that never show a matching window yield a window with only the title set.
func (b *Backend) LaunchApp(path string, args ...string) (capability.Window, error) {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return capability.Window{}, capability.OpFailed(backendName, "launch_app", err)
	}
	// The process must not become a zombie while we poll for its window.
	go func() { _ = cmd.Wait() }()

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i := 0; i < launchAttempts; i++ {
		time.Sleep(launchSettle)
		wins, err := listWindows()
		if err != nil {
			break
		}
		for _, w := range wins {
			if strings.Contains(strings.ToLower(w.Title), strings.ToLower(title)) {
				return w, nil
			}
		}
	}
	return capability.Window{Title: title}, nil
}

// GetClipboardText implements capability.Backend.
func (b *Backend) GetClipboardText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", capability.OpFailed(backendName, "get_clipboard_text", err)
	}
	return text, nil
}

// SetClipboardText implements capability.Backend.
func (b *Backend) SetClipboardText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return capability.OpFailed(backendName, "set_clipboard_text", err)
	}
	return nil
}

// OpenDocument implements capability.Backend. An existing file's content is
// loaded as the starting text; a missing file starts empty and is created on
// save.
func (b *Backend) OpenDocument(path string) (capability.DocumentHandle, error) {
	ds := &documentState{path: path, open: true}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return 0, capability.OpFailed(backendName, "open_document", err)
	}
	ds.text.Write(data)

	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.nextDoc
	b.nextDoc++
	b.docs[h] = ds
	return h, nil
}

// AppendDocumentText implements capability.Backend.
func (b *Backend) AppendDocumentText(h capability.DocumentHandle, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ds, ok := b.docs[h]
	if !ok || !ds.open {
		return capability.OpFailed(backendName, "append_document_text", capability.ErrNotFound)
	}
	ds.text.WriteString(text)
	return nil
}

// SaveDocument implements capability.Backend.
func (b *Backend) SaveDocument(h capability.DocumentHandle) error {
	b.mu.Lock()
	ds, ok := b.docs[h]
	b.mu.Unlock()
	if !ok || !ds.open {
		return capability.OpFailed(backendName, "save_document", capability.ErrNotFound)
	}
	if err := os.MkdirAll(filepath.Dir(ds.path), 0o755); err != nil {
		return capability.OpFailed(backendName, "save_document", err)
	}
	if err := os.WriteFile(ds.path, []byte(ds.text.String()), 0o644); err != nil {
		return capability.OpFailed(backendName, "save_document", err)
	}
	return nil
}

// CloseDocument implements capability.Backend. Closing never saves; unsaved
// text is dropped, matching an editor dismissed without saving.
func (b *Backend) CloseDocument(h capability.DocumentHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ds, ok := b.docs[h]
	if !ok || !ds.open {
		return capability.OpFailed(backendName, "close_document", capability.ErrNotFound)
	}
	ds.open = false
	return nil
}
