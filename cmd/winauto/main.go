// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	"github.com/FATESAIKOU/learn-windows-automation/cmd/winauto/commands"
	"github.com/FATESAIKOU/learn-windows-automation/cmd/winauto/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
