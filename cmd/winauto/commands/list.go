// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/FATESAIKOU/learn-windows-automation/internal/registry"
)

func newListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available automation scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			entries := a.registry.List(registry.Filter{Category: category})
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no scripts found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tDESCRIPTION")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Script.Name, e.Script.Category, e.Script.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list scripts in this category")
	return cmd
}
