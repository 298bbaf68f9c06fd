// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"forge-cli/internal/archive"
	"forge-cli/internal/issue"
	"forge-cli/internal/nested"
	"forge-cli/pkg/types"

	"github.com/spf13/cobra"
)

// nestedFlags are shared by the commands that resolve nested installers.
type nestedFlags struct {
	path     string
	noPrompt bool
	output   string
}

func (f *nestedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "path", "p", "", "relative path of the nested installer inside the archive")
	cmd.Flags().BoolVar(&f.noPrompt, "no-prompt", false, "never prompt; report pending candidates instead")
	cmd.Flags().StringVarP(&f.output, "output", "o", string(OutputText), "output format (text, yaml)")
}

func (f *nestedFlags) format() (OutputFormat, error) {
	format := OutputFormat(f.output)
	if err := format.Validate(); err != nil {
		return "", &ExitError{Code: types.ExitUsage, Err: err}
	}
	return format, nil
}

func newNestedCommand(app *App) *cobra.Command {
	var flags nestedFlags

	cmd := &cobra.Command{
		Use:   "nested <archive>",
		Short: "Resolve the installer nested inside a zip or 7z archive",
		Long: `Resolve the installer nested inside a zip or 7z archive.

Entries whose extension is in the allowlist are candidates. A single candidate
with a unique extension is picked and analyzed automatically; --path records a
specific entry instead. Anything else is left for you to choose.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := flags.format()
			if err != nil {
				return err
			}

			a, err := openArchive(args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := app.resolveNested(cmd.Context(), a, args[0], flags)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), format, report)
		},
	}
	flags.register(cmd)
	return cmd
}

// openArchive opens path as a container, explaining failures.
func openArchive(path string) (archive.Archive, error) {
	a, err := archive.OpenFile(path)
	if err != nil {
		return nil, openInputError(err, "open archive", path)
	}
	return a, nil
}

// openInputError explains a failure to read a file named on the command line.
// Containers that cannot be parsed are archive errors; anything the
// filesystem reports, a missing file included, is an I/O error.
func openInputError(err error, op, path string) error {
	if errors.Is(err, archive.ErrOpenArchive) {
		return issue.Wrap(&nested.ArchiveError{Cause: err}, issue.ArchiveUnreadableId, op, path,
			"forge reads zip and 7z archives")
	}
	return issue.Wrap(err, issue.FileNotFoundId, op, path, "Check the file path")
}

// resolveNested runs the resolver on a and, when candidates are pending and
// prompting is allowed, asks the user to choose.
func (app *App) resolveNested(ctx context.Context, a archive.Archive, displayPath string, flags nestedFlags) (*nestedReport, error) {
	res, err := app.newResolver().Resolve(ctx, a, flags.path)
	if err != nil {
		return nil, resolutionError(err, displayPath)
	}

	candidates := res.PendingCandidates()
	prompted := false
	if res.IsPending() && app.cfg.Nested.Prompt && !flags.noPrompt {
		if err := res.Prompt(ctx, app.Selector(app.tuiConfig())); err != nil {
			return nil, resolutionError(err, displayPath)
		}
		prompted = true
	}

	report := newNestedReport(displayPath, res, candidates, prompted)
	if report.PathNotFound && app.verbose {
		app.renderGuide(issue.NestedPathNotFoundId)
	}
	return report, nil
}

func resolutionError(err error, resource string) error {
	op := "resolve nested installer"
	if errors.Is(err, nested.ErrUserInput) {
		op = "select nested installers"
	}
	return issue.Wrap(err, issueFor(err), op, resource)
}
