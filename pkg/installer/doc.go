// SPDX-License-Identifier: MPL-2.0

// Package installer defines the manifest-facing vocabulary shared by the
// archive resolver and the content analyzer: installer types and their nested
// projection, target architectures, nested installer records, and the
// recognized installer file extensions.
package installer
