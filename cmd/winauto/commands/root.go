// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands wires the winauto CLI: listing, inspecting, and running
// the automation scripts discovered in the scripts root.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the winauto root command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("WINAUTO_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "winauto",
		Short:         "winauto - metadata-driven Windows desktop automation scripts",
		Long:          "winauto discovers automation scripts described by metadata files,\nvalidates them, and runs them against a real or simulated Windows session.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "path to the settings file")
	cmd.PersistentFlags().String("scripts-root", "", "override the scripts root directory")
	cmd.PersistentFlags().String("backend", "", "force the capability backend (mock|real)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of winauto",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "winauto version %s\n", version)
		},
	})

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newHistoryCmd())

	return cmd
}
