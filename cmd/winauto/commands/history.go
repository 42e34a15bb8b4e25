// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent script runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			records, err := a.history.Recent(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tSCRIPT\tSTATUS\tCODE\tELAPSED\tBACKEND")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dms\t%s\n",
					r.StartedAt.Local().Format(time.RFC3339), r.Script, r.Status, r.Code, r.ElapsedMS, r.Backend)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to show")
	return cmd
}
