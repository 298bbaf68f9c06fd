// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"
	"path/filepath"

	"forge-cli/internal/analyzer"
	"forge-cli/internal/archive"
	"forge-cli/internal/issue"
	"forge-cli/internal/nested"

	"github.com/spf13/cobra"
)

func newAnalyzeCommand(app *App) *cobra.Command {
	var flags nestedFlags

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Detect the installer type and architecture of a file",
		Long: `Detect the installer type and architecture of a file.

Zip files are treated as archives: the installer they carry is resolved the
same way "forge nested" does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := flags.format()
			if err != nil {
				return err
			}
			report, err := app.analyzeFile(cmd, args[0], flags)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), format, report)
		},
	}
	flags.register(cmd)
	return cmd
}

func (app *App) analyzeFile(cmd *cobra.Command, path string, flags nestedFlags) (*analyzeReport, error) {
	ctx := cmd.Context()

	f, err := os.Open(path)
	if err != nil {
		return nil, openInputError(err, "open installer", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, openInputError(err, "open installer", path)
	}
	size := info.Size()

	result, err := analyzer.New(analyzer.WithLogger(app.logger)).
		Analyze(ctx, io.NewSectionReader(f, 0, size), filepath.Base(path), analyzer.Options{})
	if err != nil {
		err = &nested.AnalysisError{Entry: filepath.Base(path), Cause: err}
		return nil, issue.Wrap(err, issueFor(err), "analyze installer", path)
	}

	report := &analyzeReport{
		File:          path,
		InstallerType: result.InstallerType,
		Architecture:  result.Architecture,
	}
	if !result.NeedsNestedResolution {
		return report, nil
	}

	app.logger.Debug("zip payload, resolving nested installer", "file", path)
	a, err := archive.Open(f, size)
	if err != nil {
		return nil, openInputError(err, "open archive", path)
	}
	defer a.Close()

	report.Nested, err = app.resolveNested(ctx, a, path, flags)
	if err != nil {
		return nil, err
	}
	return report, nil
}
