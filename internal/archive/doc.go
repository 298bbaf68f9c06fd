// SPDX-License-Identifier: MPL-2.0

// Package archive gives read access to the entries of zip-like containers.
//
// Zip archives are read with klauspost/compress/zip, which also decodes
// Zstandard entries (method 93). 7z archives are read with bodgit/sevenzip.
// Callers only see entry names in stored order and a way to open one entry
// by its exact name.
package archive
