// SPDX-License-Identifier: AGPL-3.0-or-later

package scripts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FATESAIKOU/learn-windows-automation/internal/capability"
	"github.com/FATESAIKOU/learn-windows-automation/internal/engine"
)

// MultiAppCoordinator brings a list of application windows to the foreground
// in order, reporting which were found.
//
// Arguments: titles (string, required, comma-separated window title
// substrings), strict (boolean, optional, default false — when set, any
// missing window fails the run).
func MultiAppCoordinator(ctx context.Context, inv *engine.Invocation) error {
	var titles []string
	for _, t := range strings.Split(inv.Args.String("titles"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	if len(titles) == 0 {
		return fmt.Errorf("titles must name at least one window")
	}

	var missing []string
	for _, title := range titles {
		win, err := inv.Caps.FindWindow(title)
		if err != nil {
			if errors.Is(err, capability.ErrNotFound) {
				missing = append(missing, title)
				inv.Printf("window %q not found\n", title)
				continue
			}
			return err
		}
		if err := inv.Caps.FocusWindow(win.Handle); err != nil {
			return err
		}
		inv.Printf("focused %q\n", win.Title)
	}

	inv.Printf("coordinated %d of %d window(s)\n", len(titles)-len(missing), len(titles))
	if len(missing) > 0 && inv.Args.Bool("strict") {
		return fmt.Errorf("missing windows: %s", strings.Join(missing, ", "))
	}
	return nil
}
