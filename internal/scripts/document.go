// SPDX-License-Identifier: AGPL-3.0-or-later

package scripts

import (
	"context"
	"path/filepath"
	"time"

	"github.com/FATESAIKOU/learn-windows-automation/internal/engine"
)

// HelloDocument writes a greeting document and optionally opens it in the
// system editor.
//
// Arguments: output_dir (path, required), launch (boolean, optional,
// default false).
func HelloDocument(ctx context.Context, inv *engine.Invocation) error {
	dir := inv.Args.Path("output_dir")
	path := filepath.Join(dir, "hello_world.txt")

	doc, err := inv.Caps.OpenDocument(path)
	if err != nil {
		return err
	}
	defer func() { _ = inv.Caps.CloseDocument(doc) }()

	lines := []string{
		"Hello World from the automation toolkit!\n",
		"\n",
		"This document was created automatically.\n",
		"Date: " + time.Now().Format("2006-01-02 15:04:05") + "\n",
	}
	for _, line := range lines {
		if err := inv.Caps.AppendDocumentText(doc, line); err != nil {
			return err
		}
	}
	if err := inv.Caps.SaveDocument(doc); err != nil {
		return err
	}
	inv.Printf("document saved to %s\n", path)

	if inv.Args.Bool("launch") {
		win, err := inv.Caps.LaunchApp("notepad.exe", path)
		if err != nil {
			return err
		}
		inv.Printf("opened in editor window %q\n", win.Title)
	}
	return nil
}
