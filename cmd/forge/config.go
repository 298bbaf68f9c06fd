// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"forge-cli/internal/config"
	"forge-cli/internal/issue"
	"forge-cli/pkg/types"

	"github.com/spf13/cobra"
)

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage forge configuration",
		Long: `Manage forge configuration.

Configuration is stored in CUE format at:
  - Linux: ~/.config/forge/config.cue
  - macOS: ~/Library/Application Support/forge/config.cue
  - Windows: %APPDATA%\forge\config.cue

Every field can be overridden with FORGE_* environment variables, for example
FORGE_TEMP_DIR or FORGE_NESTED_PROMPT.`,
	}

	cmd.AddCommand(
		newConfigShowCommand(app),
		newConfigPathCommand(),
		newConfigInitCommand(),
	)
	return cmd
}

func newConfigShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.cfgErr != nil {
				return &ExitError{Code: types.ExitConfig, Err: app.cfgErr}
			}

			w := cmd.OutOrStdout()
			source := "(defaults)"
			if app.cfgPath != "" {
				source = app.cfgPath
			}
			fmt.Fprintln(w, SubtitleStyle.Render("// source: ")+CmdStyle.Render(source))
			fmt.Fprint(w, config.GenerateCUE(app.cfg))
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return issue.Wrap(err, issue.ConfigLoadFailedId, "locate config file", "")
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, written, err := config.CreateDefaultConfig(force)
			if err != nil {
				return issue.Wrap(err, issue.ConfigLoadFailedId, "write config file", "")
			}

			w := cmd.OutOrStdout()
			if !written {
				fmt.Fprintln(w, WarningStyle.Render("Config file already exists: ")+CmdStyle.Render(path))
				fmt.Fprintln(w, SubtitleStyle.Render("Use --force to overwrite it."))
				return nil
			}
			fmt.Fprintln(w, SuccessStyle.Render("Created config file: ")+CmdStyle.Render(path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
