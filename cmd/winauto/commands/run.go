// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/FATESAIKOU/learn-windows-automation/cmd/winauto/internal/clierr"
	"github.com/FATESAIKOU/learn-windows-automation/internal/engine"
	"github.com/FATESAIKOU/learn-windows-automation/internal/history"
)

func newRunCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run <script> [args...]",
		Short: "Run a script with positional arguments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			to := timeout
			if !cmd.Flags().Changed("timeout") {
				to = a.settings.DefaultTimeout.Std()
			}

			req := engine.Request{Script: args[0], Args: args[1:], Timeout: to}
			started := time.Now()
			res := a.engine.Execute(cmd.Context(), req)

			if res.Output != "" {
				fmt.Fprint(cmd.OutOrStdout(), res.Output)
			}

			// History is advisory; a broken history dir must not fail a run
			// that already happened.
			rec := history.Record{
				Script:    req.Script,
				Args:      req.Args,
				Status:    string(res.Status),
				Code:      res.Code,
				ElapsedMS: res.Elapsed.Milliseconds(),
				Backend:   a.selector.Current().Name(),
				StartedAt: started,
			}
			if err := a.history.Append(rec); err != nil {
				a.logger.Warn("could not record run history", "err", err)
			}

			if res.Err != nil {
				return clierr.Wrap(res.Code, res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "completed in %s\n", res.Elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "maximum run time (0 disables; default comes from settings)")
	cmd.Flags().SetInterspersed(false)
	return cmd
}
