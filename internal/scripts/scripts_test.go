// SPDX-License-Identifier: AGPL-3.0-or-later

package scripts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FATESAIKOU/learn-windows-automation/internal/capability"
	"github.com/FATESAIKOU/learn-windows-automation/internal/capability/mock"
	"github.com/FATESAIKOU/learn-windows-automation/internal/engine"
)

func invoke(t *testing.T, h engine.Handler, backend *mock.Backend, args engine.Args) (*engine.Invocation, error) {
	t.Helper()
	inv := engine.NewInvocation(nil, args, backend)
	return inv, h(context.Background(), inv)
}

func TestHandlersMatchShippedMetadata(t *testing.T) {
	handlers := Handlers()
	for _, name := range []string{"simple_clipboard", "window_organizer", "hello_document", "multi_app_coordinator"} {
		assert.Contains(t, handlers, name)
	}
}

func TestSimpleClipboard_SetThenGet(t *testing.T) {
	b := mock.New()

	inv, err := invoke(t, SimpleClipboard, b, engine.Args{"command": "set", "text": "x"})
	require.NoError(t, err)
	assert.Contains(t, inv.Output(), "clipboard set to: x")

	inv, err = invoke(t, SimpleClipboard, b, engine.Args{"command": "get", "text": ""})
	require.NoError(t, err)
	assert.Contains(t, inv.Output(), "clipboard content: x")
}

func TestSimpleClipboard_GetEmpty(t *testing.T) {
	inv, err := invoke(t, SimpleClipboard, mock.New(), engine.Args{"command": "get", "text": ""})
	require.NoError(t, err)
	assert.Contains(t, inv.Output(), "clipboard is empty")
}

func TestSimpleClipboard_BadCommand(t *testing.T) {
	_, err := invoke(t, SimpleClipboard, mock.New(), engine.Args{"command": "swap", "text": ""})
	require.Error(t, err)

	_, err = invoke(t, SimpleClipboard, mock.New(), engine.Args{"command": "set", "text": ""})
	require.Error(t, err, "set without text must fail")
}

func TestWindowOrganizer_Cascade(t *testing.T) {
	b := mock.New()
	b.AddWindow("One", capability.Rect{})
	b.AddWindow("Two", capability.Rect{})
	b.AddWindow("Three", capability.Rect{})

	inv, err := invoke(t, WindowOrganizer, b, engine.Args{"layout": "cascade", "limit": int64(0)})
	require.NoError(t, err)
	assert.Contains(t, inv.Output(), "organized 3 window(s)")

	wins, err := b.ListWindows()
	require.NoError(t, err)
	assert.Equal(t, capability.Rect{X: 0, Y: 0, Width: 900, Height: 600}, wins[0].Rect)
	assert.Equal(t, capability.Rect{X: 40, Y: 30, Width: 900, Height: 600}, wins[1].Rect)
	assert.Equal(t, capability.Rect{X: 80, Y: 60, Width: 900, Height: 600}, wins[2].Rect)
}

func TestWindowOrganizer_TileWithLimit(t *testing.T) {
	b := mock.New()
	b.AddWindow("One", capability.Rect{})
	b.AddWindow("Two", capability.Rect{})
	b.AddWindow("Three", capability.Rect{})

	inv, err := invoke(t, WindowOrganizer, b, engine.Args{"layout": "tile", "limit": int64(2)})
	require.NoError(t, err)
	assert.Contains(t, inv.Output(), "organized 2 window(s)")

	wins, err := b.ListWindows()
	require.NoError(t, err)
	assert.Equal(t, capability.Rect{X: 0, Y: 0, Width: 960, Height: 1080}, wins[0].Rect)
	assert.Equal(t, capability.Rect{X: 960, Y: 0, Width: 960, Height: 1080}, wins[1].Rect)
	assert.Equal(t, capability.Rect{}, wins[2].Rect, "window beyond the limit stays put")
}

func TestWindowOrganizer_NoWindows(t *testing.T) {
	inv, err := invoke(t, WindowOrganizer, mock.New(), engine.Args{"layout": "cascade", "limit": int64(0)})
	require.NoError(t, err)
	assert.Contains(t, inv.Output(), "no windows to organize")
}

func TestWindowOrganizer_BadLayout(t *testing.T) {
	b := mock.New()
	b.AddWindow("One", capability.Rect{})
	_, err := invoke(t, WindowOrganizer, b, engine.Args{"layout": "spiral", "limit": int64(0)})
	require.Error(t, err)
}

func TestHelloDocument(t *testing.T) {
	b := mock.New()
	inv, err := invoke(t, HelloDocument, b, engine.Args{"output_dir": "out", "launch": false})
	require.NoError(t, err)
	assert.Contains(t, inv.Output(), "document saved to")

	saved := b.SavedDocuments()
	require.Len(t, saved, 1)
	content, ok := b.SavedContent(saved[0])
	require.True(t, ok)
	assert.Contains(t, content, "Hello World")
}

func TestHelloDocument_Launch(t *testing.T) {
	b := mock.New()
	inv, err := invoke(t, HelloDocument, b, engine.Args{"output_dir": "out", "launch": true})
	require.NoError(t, err)
	assert.Contains(t, inv.Output(), "opened in editor window")

	_, err = b.FindWindow("notepad")
	require.NoError(t, err)
}

func TestMultiAppCoordinator(t *testing.T) {
	b := mock.New()
	b.AddWindow("Untitled - Notepad", capability.Rect{})
	calc := b.AddWindow("Calculator", capability.Rect{})

	inv, err := invoke(t, MultiAppCoordinator, b,
		engine.Args{"titles": "Notepad, Calculator, Excel", "strict": false})
	require.NoError(t, err)
	assert.Contains(t, inv.Output(), `window "Excel" not found`)
	assert.Contains(t, inv.Output(), "coordinated 2 of 3 window(s)")
	assert.Equal(t, calc.Handle, b.FocusedWindow(), "last coordinated window keeps focus")
}

func TestMultiAppCoordinator_Strict(t *testing.T) {
	b := mock.New()
	b.AddWindow("Calculator", capability.Rect{})

	_, err := invoke(t, MultiAppCoordinator, b, engine.Args{"titles": "Excel", "strict": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Excel")
}

func TestMultiAppCoordinator_EmptyTitles(t *testing.T) {
	_, err := invoke(t, MultiAppCoordinator, mock.New(), engine.Args{"titles": " , ", "strict": false})
	require.Error(t, err)
}
