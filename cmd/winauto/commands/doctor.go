// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the script registry and backend selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scripts root:    %s\n", a.settings.ScriptsRoot)
			fmt.Fprintf(out, "registry config: %s\n", a.settings.RegistryConfig)
			fmt.Fprintf(out, "backend:         %s\n", a.selector.Current().Name())
			fmt.Fprintf(out, "scripts:         %d registered, %d excluded\n",
				a.registry.Len(), len(a.registry.Warnings()))

			if warnings := a.registry.Warnings(); len(warnings) > 0 {
				fmt.Fprintln(out, "excluded scripts:")
				for _, w := range warnings {
					fmt.Fprintf(out, "  %s: %v\n", w.Path, w.Err)
				}
			}
			return nil
		},
	}
}
