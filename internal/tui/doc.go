// SPDX-License-Identifier: MPL-2.0

// Package tui provides the interactive prompts used by forge, built on
// charmbracelet/huh.
package tui
