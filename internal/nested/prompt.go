// SPDX-License-Identifier: MPL-2.0

package nested

import (
	"context"
	"fmt"
	"slices"
)

// PromptTitle is the title shown above the nested file selection.
const PromptTitle = "Select the nested files"

// MultiSelector presents options and returns the ones the user picked.
//
// The validate function must be consulted before a selection is submitted;
// when it returns an error the selector keeps the prompt open and shows the
// message. Cancellation is reported as an error.
type MultiSelector interface {
	MultiSelect(ctx context.Context, title string, options []string, validate func([]string) error) ([]string, error)
}

// MinSelection returns a validator that rejects selections with fewer than n
// entries.
func MinSelection(n int) func([]string) error {
	return func(selected []string) error {
		if len(selected) < n {
			return fmt.Errorf("%w: select at least %d", ErrSelectionTooSmall, n)
		}
		return nil
	}
}

func candidateSelection(candidates []string, minimum int) func([]string) error {
	atLeast := MinSelection(minimum)
	return func(selected []string) error {
		if err := atLeast(selected); err != nil {
			return err
		}
		for _, s := range selected {
			if !slices.Contains(candidates, s) {
				return fmt.Errorf("%w: %q", ErrUnknownCandidate, s)
			}
		}
		return nil
	}
}
