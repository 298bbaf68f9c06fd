// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"forge-cli/internal/analyzer"
	"forge-cli/internal/archive"
	"forge-cli/internal/config"
	"forge-cli/internal/issue"
	"forge-cli/internal/nested"
	"forge-cli/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps a failure onto the exit code scripts can branch on.
// Filesystem failures outside extraction, such as a missing input file, are
// I/O failures too.
func exitCodeFor(err error) types.ExitCode {
	var (
		exitErr *ExitError
		pathErr *fs.PathError
	)
	switch {
	case err == nil:
		return types.ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, nested.ErrArchive), errors.Is(err, archive.ErrOpenArchive):
		return types.ExitArchive
	case errors.Is(err, nested.ErrIO):
		return types.ExitIO
	case errors.Is(err, nested.ErrAnalysis), errors.Is(err, analyzer.ErrUnsupportedFormat):
		return types.ExitAnalysis
	case errors.Is(err, nested.ErrUserInput):
		return types.ExitUserInput
	case errors.Is(err, config.ErrInvalidConfig):
		return types.ExitConfig
	case errors.As(err, &pathErr):
		return types.ExitIO
	default:
		return types.ExitFailure
	}
}

// issueFor picks the catalog entry that explains a resolution failure.
func issueFor(err error) issue.Id {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, nested.ErrArchive), errors.Is(err, archive.ErrOpenArchive):
		return issue.ArchiveUnreadableId
	case errors.Is(err, nested.ErrIO):
		return issue.EntryExtractionFailedId
	case errors.Is(err, analyzer.ErrUnsupportedFormat):
		return issue.UnsupportedFormatId
	case errors.Is(err, nested.ErrAnalysis):
		return issue.AnalysisFailedId
	case errors.Is(err, nested.ErrUserInput):
		return issue.SelectionCancelledId
	case errors.As(err, &pathErr):
		return issue.FileNotFoundId
	default:
		return 0
	}
}
