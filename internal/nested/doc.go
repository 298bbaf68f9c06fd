// SPDX-License-Identifier: MPL-2.0

// Package nested decides which entries of an archive are the installers a
// manifest should reference.
//
// A Resolver scans the archive entries against an extension allowlist and
// settles on one of three outcomes:
//
//   - ExplicitResolved: the caller named an entry; it is extracted and
//     analyzed when it exists, and recorded as-is when it does not.
//   - AutoResolved: exactly one allowlisted extension occurs exactly once in
//     the archive; that entry is extracted and analyzed.
//   - Pending: anything else. The candidates wait on the Resolution until
//     Prompt hands them to an interactive MultiSelector.
//
// Extraction copies the entry into a temporary file that is memory-mapped for
// the duration of the analysis only. Entries chosen interactively are
// recorded without analysis.
package nested
