// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExtensionsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "List the installer extensions considered inside archives",
		Long: `List the installer extensions considered inside archives.

The list comes from the "extensions" config field, or the built-in allowlist
when the field is unset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), joinLines(app.cfg.Allowlist()))
			return nil
		},
	}
}
