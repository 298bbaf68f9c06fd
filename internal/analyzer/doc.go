// SPDX-License-Identifier: MPL-2.0

// Package analyzer inspects installer payloads and reports their installer
// type and target architecture.
//
// Detection is driven by content first (PE, compound file, zip and font
// signatures) and by the file name only where the content is ambiguous, such
// as telling an .appx package from an .msix package.
package analyzer
