// SPDX-License-Identifier: MPL-2.0

// Package issue holds forge's user-facing error guidance: actionable errors
// carrying the operation, resource and hints of a failure, and a catalog of
// markdown explanations rendered with glamour.
package issue
