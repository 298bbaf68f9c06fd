// SPDX-License-Identifier: MPL-2.0

package nested

import (
	"strings"

	"forge-cli/internal/archive"
	"forge-cli/pkg/installer"
)

// ScanResult holds what the resolver needs to know about an archive's entries.
type ScanResult struct {
	// Candidates are the entries with an allowlisted extension, in archive order.
	Candidates []string
	// Counts maps every allowlisted extension (lower-cased) to the number of
	// archive entries carrying it. Extensions that never occur map to zero.
	Counts map[string]int

	entries map[string]struct{}
}

// Scan enumerates the entry names of a and filters them against allowlist.
// Directory entries take part like any other name; they simply never carry
// an extension.
func Scan(a archive.Archive, allowlist []string) ScanResult {
	return scanNames(a.Names(), allowlist)
}

func scanNames(names, allowlist []string) ScanResult {
	res := ScanResult{
		Counts:  make(map[string]int, len(allowlist)),
		entries: make(map[string]struct{}, len(names)),
	}
	for _, ext := range allowlist {
		res.Counts[strings.ToLower(ext)] = 0
	}

	for _, name := range names {
		res.entries[name] = struct{}{}
		if !installer.HasValidExtension(name, allowlist) {
			continue
		}
		res.Candidates = append(res.Candidates, name)
		res.Counts[strings.ToLower(installer.FileExtension(name))]++
	}
	return res
}

// Has reports whether the archive holds an entry named exactly name.
func (s ScanResult) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}
