// SPDX-License-Identifier: AGPL-3.0-or-later

package scripts

import (
	"context"
	"fmt"

	"github.com/FATESAIKOU/learn-windows-automation/internal/capability"
	"github.com/FATESAIKOU/learn-windows-automation/internal/engine"
)

// Work-area assumption for the tile layout. Windows that land off a smaller
// screen are still moved; the desktop clamps them.
const (
	tileAreaWidth  = 1920
	tileAreaHeight = 1080
)

// WindowOrganizer rearranges the visible top-level windows.
//
// Arguments: layout ("cascade" or "tile", optional, default "cascade"),
// limit (integer, optional, 0 means all windows).
func WindowOrganizer(ctx context.Context, inv *engine.Invocation) error {
	layout := inv.Args.String("layout")
	limit := inv.Args.Int("limit")

	wins, err := inv.Caps.ListWindows()
	if err != nil {
		return err
	}
	if limit > 0 && int64(len(wins)) > limit {
		wins = wins[:limit]
	}
	if len(wins) == 0 {
		inv.Println("no windows to organize")
		return nil
	}

	var rects []capability.Rect
	switch layout {
	case "cascade":
		rects = cascadeRects(len(wins))
	case "tile":
		rects = tileRects(len(wins))
	default:
		return fmt.Errorf("unknown layout %q (valid: cascade, tile)", layout)
	}

	for i, w := range wins {
		if err := inv.Caps.MoveWindow(w.Handle, rects[i]); err != nil {
			return err
		}
		inv.Printf("moved %q to (%d,%d) %dx%d\n", w.Title, rects[i].X, rects[i].Y, rects[i].Width, rects[i].Height)
	}
	inv.Printf("organized %d window(s) with layout %s\n", len(wins), layout)
	return nil
}

// cascadeRects staggers windows diagonally from the top-left corner.
func cascadeRects(n int) []capability.Rect {
	rects := make([]capability.Rect, n)
	for i := range rects {
		rects[i] = capability.Rect{X: 40 * i, Y: 30 * i, Width: 900, Height: 600}
	}
	return rects
}

// tileRects splits the work area into a two-column grid.
func tileRects(n int) []capability.Rect {
	cols := 2
	if n == 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols
	w := tileAreaWidth / cols
	h := tileAreaHeight / rows
	rects := make([]capability.Rect, n)
	for i := range rects {
		rects[i] = capability.Rect{
			X:      (i % cols) * w,
			Y:      (i / cols) * h,
			Width:  w,
			Height: h,
		}
	}
	return rects
}
