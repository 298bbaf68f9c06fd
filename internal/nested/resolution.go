// SPDX-License-Identifier: MPL-2.0

package nested

import (
	"context"
	"slices"

	"forge-cli/pkg/installer"
)

// maxPromptAttempts bounds how often an invalid selection is sent back to a
// selector that ignores its validator.
const maxPromptAttempts = 5

// Resolution is the result of resolving one archive.
//
// While the outcome is Pending the Resolution owns the candidate list. Prompt
// and TakeCandidates move it out, leaving the Resolution with an empty
// Pending outcome.
type Resolution struct {
	outcome       Outcome
	installerType installer.NestedInstallerType
	architecture  installer.Architecture
	files         installer.NestedInstallerFiles
}

// Outcome returns the resolver's decision.
func (r *Resolution) Outcome() Outcome { return r.outcome }

// NestedInstallerType is the projected installer type of the analyzed entry.
// It is empty when nothing was analyzed or the type has no nested form.
func (r *Resolution) NestedInstallerType() installer.NestedInstallerType { return r.installerType }

// Architecture is the architecture reported by the analysis, if any.
func (r *Resolution) Architecture() installer.Architecture { return r.architecture }

// NestedInstallerFiles returns the recorded nested installer files. It is
// empty while candidates are pending.
func (r *Resolution) NestedInstallerFiles() installer.NestedInstallerFiles {
	return slices.Clone(r.files)
}

// IsPending reports whether candidates still wait for a selection.
func (r *Resolution) IsPending() bool {
	p, ok := r.outcome.(Pending)
	return ok && len(p.Candidates) > 0
}

// PendingCandidates returns a copy of the pending candidates.
func (r *Resolution) PendingCandidates() []string {
	if p, ok := r.outcome.(Pending); ok {
		return slices.Clone(p.Candidates)
	}
	return nil
}

// TakeCandidates moves the pending candidates out of the Resolution. Later
// calls return nil.
func (r *Resolution) TakeCandidates() []string {
	p, ok := r.outcome.(Pending)
	if !ok {
		return nil
	}
	r.outcome = Pending{}
	return p.Candidates
}

// Prompt asks sel to choose among the pending candidates and records every
// chosen entry as a nested installer file, without analysis. It does nothing
// when no candidates are pending.
//
// The candidates are consumed on the first call whether or not the prompt
// succeeds; a cancelled prompt records nothing.
func (r *Resolution) Prompt(ctx context.Context, sel MultiSelector) error {
	candidates := r.TakeCandidates()
	if len(candidates) == 0 {
		return nil
	}

	validate := candidateSelection(candidates, 1)
	var lastErr error
	for range maxPromptAttempts {
		if err := ctx.Err(); err != nil {
			return &UserInputError{Cause: err}
		}
		chosen, err := sel.MultiSelect(ctx, PromptTitle, candidates, validate)
		if err != nil {
			return &UserInputError{Cause: err}
		}
		if lastErr = validate(chosen); lastErr != nil {
			continue
		}
		files, err := installer.NewNestedInstallerFiles(chosen...)
		if err != nil {
			return &UserInputError{Cause: err}
		}
		r.files = files
		return nil
	}
	return &UserInputError{Cause: lastErr}
}
