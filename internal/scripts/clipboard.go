// SPDX-License-Identifier: AGPL-3.0-or-later

package scripts

import (
	"context"
	"fmt"

	"github.com/FATESAIKOU/learn-windows-automation/internal/engine"
)

// SimpleClipboard reads or replaces the clipboard text.
//
// Arguments: command ("get" or "set", required), text (string, optional).
func SimpleClipboard(ctx context.Context, inv *engine.Invocation) error {
	switch cmd := inv.Args.String("command"); cmd {
	case "get":
		text, err := inv.Caps.GetClipboardText()
		if err != nil {
			return err
		}
		if text == "" {
			inv.Println("clipboard is empty")
			return nil
		}
		inv.Printf("clipboard content: %s\n", text)
		return nil
	case "set":
		text := inv.Args.String("text")
		if text == "" {
			return fmt.Errorf("set requires a non-empty text argument")
		}
		if err := inv.Caps.SetClipboardText(text); err != nil {
			return err
		}
		inv.Printf("clipboard set to: %s\n", text)
		return nil
	default:
		return fmt.Errorf("unknown command %q (valid: get, set)", cmd)
	}
}
