// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for forge.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"forge-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the forge command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "forge",
		Short: "Resolve the installers nested inside archives",
		Long: TitleStyle.Render("forge") + SubtitleStyle.Render(" - nested installer resolution for package manifests") + `

forge inspects zip and 7z archives, finds the installers they carry, and
reports the nested installer type, architecture and relative file paths a
package manifest needs. When the archive holds several candidates, forge asks
which ones to record.

` + SubtitleStyle.Render("Examples:") + `
  forge nested app.zip                  Resolve the installer inside app.zip
  forge nested app.zip --path x64/a.exe Record a specific entry
  forge analyze setup.exe               Detect type and architecture of a file
  forge extensions                      List the extensions considered in archives`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.loadConfig(cmd.Context())
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/forge/config.cue)")

	rootCmd.AddCommand(
		newNestedCommand(app),
		newAnalyzeCommand(app),
		newExtensionsCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the forge CLI and exits with the code matching the failure.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			app.renderError(w, err)
		}),
	); err != nil {
		os.Exit(int(exitCodeFor(err)))
	}
}

// renderError prints err with its suggestions and, when the error points at a
// catalog issue, the rendered guidance.
func (app *App) renderError(w io.Writer, err error) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, app.verbose))

	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		app.writeGuide(w, ae.Issue)
	}
}

// renderGuide prints the catalog issue id to stderr.
func (app *App) renderGuide(id issue.Id) {
	app.writeGuide(app.stderr, id)
}

func (app *App) writeGuide(w io.Writer, id issue.Id) {
	guide := issue.Get(id)
	if guide == nil {
		return
	}
	rendered, err := guide.Render(glamourStyle(w))
	if err != nil {
		app.logger.Debug("failed to render issue guidance", "issue", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}
