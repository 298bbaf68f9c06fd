// SPDX-License-Identifier: MPL-2.0

package nested

import (
	"strings"

	"forge-cli/pkg/installer"
)

type (
	// Outcome is the resolver's decision for an archive. It is one of
	// AutoResolved, ExplicitResolved or Pending.
	Outcome interface {
		// String names the outcome for logs and output.
		String() string
		isOutcome()
	}

	// AutoResolved picks the single entry singled out by the extension
	// heuristic. Any other candidates are dropped.
	AutoResolved struct {
		Path string
	}

	// ExplicitResolved records the entry named by the caller. Found is false
	// when the archive has no entry by that exact name; the path is recorded
	// anyway and nothing is analyzed.
	ExplicitResolved struct {
		Path  string
		Found bool
	}

	// Pending carries the candidates that still need an interactive choice,
	// in archive order.
	Pending struct {
		Candidates []string
	}
)

func (AutoResolved) String() string     { return "auto" }
func (ExplicitResolved) String() string { return "explicit" }
func (Pending) String() string          { return "pending" }

func (AutoResolved) isOutcome()     {}
func (ExplicitResolved) isOutcome() {}
func (Pending) isOutcome()          {}

// Decide chooses the outcome for a scanned archive.
//
// A non-empty explicitPath always wins and the heuristic is not evaluated.
// Otherwise the archive is auto-resolved when, across the whole Counts map,
// exactly one extension has a count of exactly one; the candidate carrying
// that extension is chosen. This is a narrow compatibility rule, not a proof
// that the archive holds a single installer: {a.exe, b.msi, c.msi} still
// auto-resolves to a.exe. Everything else is Pending.
func Decide(scan ScanResult, explicitPath string) Outcome {
	if explicitPath != "" {
		return ExplicitResolved{Path: explicitPath, Found: scan.Has(explicitPath)}
	}

	var unique string
	singles := 0
	for ext, count := range scan.Counts {
		if count == 1 {
			unique = ext
			singles++
		}
	}
	if singles == 1 {
		for _, c := range scan.Candidates {
			if strings.EqualFold(installer.FileExtension(c), unique) {
				return AutoResolved{Path: c}
			}
		}
	}

	return Pending{Candidates: scan.Candidates}
}
