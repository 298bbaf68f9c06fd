// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"forge-cli/internal/analyzer"
	"forge-cli/internal/archive"
	"forge-cli/internal/config"
	"forge-cli/internal/issue"
	"forge-cli/internal/nested"
	"forge-cli/pkg/types"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{"nil", nil, types.ExitSuccess},
		{"plain", cause, types.ExitFailure},
		{"explicit exit error", &ExitError{Code: types.ExitUsage, Err: cause}, types.ExitUsage},
		{"archive", &nested.ArchiveError{Cause: cause}, types.ExitArchive},
		{"open archive", &archive.OpenError{Format: archive.FormatZip, Cause: cause}, types.ExitArchive},
		{"extract", &nested.ExtractError{Entry: "a.exe", Op: "copy entry", Cause: cause}, types.ExitIO},
		{"analysis", &nested.AnalysisError{Entry: "a.exe", Cause: cause}, types.ExitAnalysis},
		{"unsupported", &analyzer.UnsupportedFormatError{Name: "a.bin"}, types.ExitAnalysis},
		{"user input", &nested.UserInputError{Cause: cause}, types.ExitUserInput},
		{"config", fmt.Errorf("load: %w", config.ErrInvalidConfig), types.ExitConfig},
		{"missing input", &fs.PathError{Op: "open", Path: "app.zip", Err: fs.ErrNotExist}, types.ExitIO},
		{"interrupted", &nested.UserInputError{Cause: context.Canceled}, types.ExitUserInput},
		{
			"actionable wrapper",
			issue.Wrap(&nested.AnalysisError{Entry: "a.exe", Cause: cause}, issue.AnalysisFailedId, "resolve nested installer", "app.zip"),
			types.ExitAnalysis,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestIssueFor(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"archive", &nested.ArchiveError{Cause: cause}, issue.ArchiveUnreadableId},
		{"extract", &nested.ExtractError{Entry: "a.exe", Op: "open entry", Cause: cause}, issue.EntryExtractionFailedId},
		{"unsupported beats analysis", &nested.AnalysisError{Entry: "a.bin", Cause: &analyzer.UnsupportedFormatError{Name: "a.bin"}}, issue.UnsupportedFormatId},
		{"analysis", &nested.AnalysisError{Entry: "a.exe", Cause: cause}, issue.AnalysisFailedId},
		{"user input", &nested.UserInputError{Cause: cause}, issue.SelectionCancelledId},
		{"missing input", &fs.PathError{Op: "open", Path: "app.zip", Err: fs.ErrNotExist}, issue.FileNotFoundId},
		{"unknown", cause, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := issueFor(tt.err)
			if got != tt.want {
				t.Errorf("issueFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
			if got != 0 && issue.Get(got) == nil {
				t.Errorf("issueFor(%v) = %d, which is not in the catalog", tt.err, got)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &ExitError{Code: types.ExitConfig, Err: cause}
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "boom")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(ExitError, cause) = false, want true")
	}

	bare := &ExitError{Code: types.ExitArchive}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 3")
	}
}
