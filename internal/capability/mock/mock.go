// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mock provides the in-memory capability backend used for tests and
// for development off Windows. Every operation is deterministic: the same
// sequence of calls always yields the same observable state, so tests can
// assert against it without a live session.
package mock

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/FATESAIKOU/learn-windows-automation/internal/capability"
)

const backendName = "mock"

var _ capability.Backend = (*Backend)(nil)

type windowState struct {
	win     capability.Window
	focused bool
}

type documentState struct {
	path  string
	text  strings.Builder
	saved string
	open  bool
}

// Backend simulates a desktop session: a clipboard, a set of windows, and a
// set of open documents. Handles are allocated sequentially starting at 1.
type Backend struct {
	mu sync.Mutex

	clipboard  string
	nextWindow capability.WindowHandle
	windows    map[capability.WindowHandle]*windowState
	nextDoc    capability.DocumentHandle
	docs       map[capability.DocumentHandle]*documentState
	calls      int
}

// New returns a fresh simulated session with no windows, no documents, and an
// empty clipboard.
func New() *Backend {
	b := &Backend{}
	b.reset()
	return b
}

// Name implements capability.Backend.
func (b *Backend) Name() string { return backendName }

// Reset discards all simulated state. Tests call this between cases to get a
// fresh session without constructing a new backend.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *Backend) reset() {
	b.clipboard = ""
	b.nextWindow = 1
	b.windows = make(map[capability.WindowHandle]*windowState)
	b.nextDoc = 1
	b.docs = make(map[capability.DocumentHandle]*documentState)
	b.calls = 0
}

// AddWindow seeds a simulated window and returns it. Test setup only; it does
// not count as a capability call.
func (b *Backend) AddWindow(title string, r capability.Rect) capability.Window {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addWindow(title, r)
}

func (b *Backend) addWindow(title string, r capability.Rect) capability.Window {
	w := capability.Window{Handle: b.nextWindow, Title: title, Rect: r}
	b.windows[w.Handle] = &windowState{win: w}
	b.nextWindow++
	return w
}

// Calls reports how many capability operations have been invoked since the
// last Reset. Lets tests assert that a rejected request touched nothing.
func (b *Backend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// FocusedWindow returns the handle of the window last focused, or zero.
func (b *Backend) FocusedWindow() capability.WindowHandle {
	b.mu.Lock()
	defer b.mu.Unlock()
	for h, ws := range b.windows {
		if ws.focused {
			return h
		}
	}
	return 0
}

// DocumentText returns the accumulated (unsaved) text of an open or closed
// document, and whether the handle was ever allocated.
func (b *Backend) DocumentText(h capability.DocumentHandle) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ds, ok := b.docs[h]
	if !ok {
		return "", false
	}
	return ds.text.String(), true
}

// SavedDocuments returns the paths of all documents that were saved, sorted.
func (b *Backend) SavedDocuments() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var paths []string
	for _, ds := range b.docs {
		if ds.saved != "" {
			paths = append(paths, ds.path)
		}
	}
	sort.Strings(paths)
	return paths
}

// SavedContent returns the last-saved content for a path, and whether any
// document was saved there.
func (b *Backend) SavedContent(path string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ds := range b.docs {
		if ds.path == path && ds.saved != "" {
			return ds.saved, true
		}
	}
	return "", false
}

// FindWindow implements capability.Backend. Matching is substring-based and
// scans handles in ascending order so the result is stable.
func (b *Backend) FindWindow(title string) (capability.Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	for _, h := range b.sortedWindowHandles() {
		if strings.Contains(b.windows[h].win.Title, title) {
			return b.windows[h].win, nil
		}
	}
	return capability.Window{}, capability.OpFailed(backendName, "find_window", capability.ErrNotFound)
}

// ListWindows implements capability.Backend, ordered by handle.
func (b *Backend) ListWindows() ([]capability.Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	handles := b.sortedWindowHandles()
	wins := make([]capability.Window, 0, len(handles))
	for _, h := range handles {
		wins = append(wins, b.windows[h].win)
	}
	return wins, nil
}

// MoveWindow implements capability.Backend.
func (b *Backend) MoveWindow(h capability.WindowHandle, r capability.Rect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	ws, ok := b.windows[h]
	if !ok {
		return capability.OpFailed(backendName, "move_window", capability.ErrNotFound)
	}
	ws.win.Rect = r
	return nil
}

// FocusWindow implements capability.Backend. Exactly one window is focused at
// a time.
func (b *Backend) FocusWindow(h capability.WindowHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	ws, ok := b.windows[h]
	if !ok {
		return capability.OpFailed(backendName, "focus_window", capability.ErrNotFound)
	}
	for _, other := range b.windows {
		other.focused = false
	}
	ws.focused = true
	return nil
}

// CloseWindow implements capability.Backend.
func (b *Backend) CloseWindow(h capability.WindowHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if _, ok := b.windows[h]; !ok {
		return capability.OpFailed(backendName, "close_window", capability.ErrNotFound)
	}
	delete(b.windows, h)
	return nil
}

// LaunchApp implements capability.Backend. The simulated application opens a
// single window titled after the executable's base name.
func (b *Backend) LaunchApp(path string, args ...string) (capability.Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return b.addWindow(title, capability.Rect{Width: 800, Height: 600}), nil
}

// GetClipboardText implements capability.Backend.
func (b *Backend) GetClipboardText() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	return b.clipboard, nil
}

// SetClipboardText implements capability.Backend.
func (b *Backend) SetClipboardText(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	b.clipboard = text
	return nil
}

// OpenDocument implements capability.Backend.
func (b *Backend) OpenDocument(path string) (capability.DocumentHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	h := b.nextDoc
	b.nextDoc++
	b.docs[h] = &documentState{path: path, open: true}
	return h, nil
}

// AppendDocumentText implements capability.Backend.
func (b *Backend) AppendDocumentText(h capability.DocumentHandle, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	ds, ok := b.docs[h]
	if !ok || !ds.open {
		return capability.OpFailed(backendName, "append_document_text", capability.ErrNotFound)
	}
	ds.text.WriteString(text)
	return nil
}

// SaveDocument implements capability.Backend. The saved content is a snapshot
// of the text at save time, inspectable via SavedContent.
func (b *Backend) SaveDocument(h capability.DocumentHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	ds, ok := b.docs[h]
	if !ok || !ds.open {
		return capability.OpFailed(backendName, "save_document", capability.ErrNotFound)
	}
	ds.saved = ds.text.String()
	return nil
}

// CloseDocument implements capability.Backend. Closing does not save.
func (b *Backend) CloseDocument(h capability.DocumentHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	ds, ok := b.docs[h]
	if !ok || !ds.open {
		return capability.OpFailed(backendName, "close_document", capability.ErrNotFound)
	}
	ds.open = false
	return nil
}

func (b *Backend) sortedWindowHandles() []capability.WindowHandle {
	handles := make([]capability.WindowHandle, 0, len(b.windows))
	for h := range b.windows {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles
}
