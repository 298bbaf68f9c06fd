// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"slices"
	"strings"
)

// ValidFileExtensions lists the file extensions recognized as installer
// payloads, in precedence order.
var ValidFileExtensions = []string{"msix", "msi", "appx", "exe", "zip", "msixbundle", "appxbundle"}

// FileExtension returns the extension of an archive entry name without the
// leading dot. Both '/' and '\' are treated as path separators. A base name
// whose only dot is its first character (".exe") has no extension, and neither
// does a name ending in a separator.
func FileExtension(name string) string {
	base := name[strings.LastIndexAny(name, `/\`)+1:]
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 {
		return ""
	}
	return base[dot+1:]
}

// HasValidExtension reports whether the entry's extension equals one of the
// allowlisted extensions, ignoring ASCII case. Names without an extension
// never match.
func HasValidExtension(name string, allowlist []string) bool {
	ext := FileExtension(name)
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(allowlist, func(allowed string) bool {
		return strings.EqualFold(ext, allowed)
	})
}
