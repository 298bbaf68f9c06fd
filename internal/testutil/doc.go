// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by tests: environment management
// (MustSetenv, SetHomeDir), file helpers (MustWriteFile, MustClose), and
// fixture builders for zip containers (MustZip, WriteZip) and minimal
// Windows PE images (MinimalPE).
package testutil
