// SPDX-License-Identifier: MPL-2.0

package nested

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrArchive is returned when the archive cannot be opened or its
	// directory cannot be read.
	ErrArchive = errors.New("unreadable archive")
	// ErrIO is returned when an entry cannot be copied into or mapped from
	// its temporary backing store.
	ErrIO = errors.New("nested installer extraction failed")
	// ErrAnalysis is returned when the content analyzer rejects an entry.
	ErrAnalysis = errors.New("nested installer analysis failed")
	// ErrUserInput is returned when the interactive selection is cancelled
	// or fails, and when the caller cancels the context mid-resolution.
	ErrUserInput = errors.New("nested installer selection failed")
	// ErrSelectionTooSmall is reported by selection validators when fewer
	// entries than required are chosen.
	ErrSelectionTooSmall = errors.New("too few nested files selected")
	// ErrUnknownCandidate is reported by selection validators when a choice
	// is not one of the offered candidates.
	ErrUnknownCandidate = errors.New("selection is not an archive candidate")
)

type (
	// ArchiveError wraps a failure to open an archive. It matches ErrArchive.
	ArchiveError struct {
		Cause error
	}

	// ExtractError wraps a failure to extract Entry. It matches ErrIO.
	ExtractError struct {
		Entry string
		Op    string
		Cause error
	}

	// AnalysisError wraps an analyzer failure for Entry. It matches ErrAnalysis.
	AnalysisError struct {
		Entry string
		Cause error
	}

	// UserInputError wraps a prompt failure. It matches ErrUserInput.
	UserInputError struct {
		Cause error
	}
)

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("%v: %v", ErrArchive, e.Cause)
}

// Unwrap returns ErrArchive and the underlying cause.
func (e *ArchiveError) Unwrap() []error { return []error{ErrArchive, e.Cause} }

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract %s: %s: %v", e.Entry, e.Op, e.Cause)
}

// Unwrap returns ErrIO and the underlying cause.
func (e *ExtractError) Unwrap() []error { return []error{ErrIO, e.Cause} }

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyze %s: %v", e.Entry, e.Cause)
}

// Unwrap returns ErrAnalysis and the underlying cause.
func (e *AnalysisError) Unwrap() []error { return []error{ErrAnalysis, e.Cause} }

func (e *UserInputError) Error() string {
	return fmt.Sprintf("%v: %v", ErrUserInput, e.Cause)
}

// Unwrap returns ErrUserInput and the underlying cause.
func (e *UserInputError) Unwrap() []error { return []error{ErrUserInput, e.Cause} }

// interrupted turns err into a UserInputError when it stems from ctx being
// cancelled or timing out. Other errors are returned unchanged.
func interrupted(ctx context.Context, err error) error {
	cause := ctx.Err()
	if cause == nil || !errors.Is(err, cause) || errors.Is(err, ErrUserInput) {
		return err
	}
	return &UserInputError{Cause: cause}
}
