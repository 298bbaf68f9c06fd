// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("user aborted")

// MultiSelector renders multi-select prompts with huh.
type MultiSelector struct {
	cfg Config
	// Height limits the number of visible options (0 for auto).
	Height int

	run func(ctx context.Context, form *huh.Form) error
}

// NewMultiSelector creates a MultiSelector using cfg.
func NewMultiSelector(cfg Config) *MultiSelector {
	return &MultiSelector{
		cfg: cfg,
		run: func(ctx context.Context, form *huh.Form) error { return form.RunWithContext(ctx) },
	}
}

// MultiSelect prompts the user to pick any number of options. The prompt
// stays open while validate rejects the current selection. Cancelling the
// prompt returns ErrAborted.
func (m *MultiSelector) MultiSelect(ctx context.Context, title string, options []string, validate func([]string) error) ([]string, error) {
	var result []string
	form := m.form(title, options, validate, &result)

	if err := m.run(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, err
	}
	return result, nil
}

func (m *MultiSelector) form(title string, options []string, validate func([]string) error, value *[]string) *huh.Form {
	sel := huh.NewMultiSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(value)

	if validate != nil {
		sel = sel.Validate(validate)
	}
	if m.Height > 0 {
		sel = sel.Height(m.Height)
	}

	return huh.NewForm(huh.NewGroup(sel)).
		WithTheme(getHuhTheme(m.cfg.Theme)).
		WithAccessible(m.cfg.Accessible).
		WithInput(m.cfg.input()).
		WithOutput(m.cfg.output())
}
