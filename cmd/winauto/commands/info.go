// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FATESAIKOU/learn-windows-automation/cmd/winauto/internal/clierr"
	"github.com/FATESAIKOU/learn-windows-automation/internal/engine"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <script>",
		Short: "Show a script's full metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			entry, err := a.registry.Lookup(args[0])
			if err != nil {
				return clierr.Wrap(engine.CodeNotFound, err)
			}

			out := cmd.OutOrStdout()
			s := entry.Script
			fmt.Fprintf(out, "Name:        %s\n", s.Name)
			fmt.Fprintf(out, "Description: %s\n", s.Description)
			fmt.Fprintf(out, "Category:    %s\n", s.Category)
			if s.Subcategory != "" {
				fmt.Fprintf(out, "Subcategory: %s\n", s.Subcategory)
			}
			fmt.Fprintf(out, "Metadata:    %s\n", entry.Path)
			if len(s.Dependencies) > 0 {
				fmt.Fprintf(out, "Depends on:  %s\n", strings.Join(s.Dependencies, ", "))
			}
			if len(s.Arguments) > 0 {
				fmt.Fprintln(out, "Arguments:")
				for _, arg := range s.Arguments {
					line := fmt.Sprintf("  %s (%s)", arg.Name, arg.Kind)
					if arg.Required {
						line += " required"
					} else {
						line += fmt.Sprintf(" default=%v", arg.Default)
					}
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}
}
