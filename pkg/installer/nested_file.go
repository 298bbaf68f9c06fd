// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNestedInstallerFile is the sentinel error wrapped by InvalidNestedInstallerFileError.
	ErrInvalidNestedInstallerFile = errors.New("invalid nested installer file")
	// ErrDuplicateNestedInstallerFile is returned when a set already holds a path.
	ErrDuplicateNestedInstallerFile = errors.New("duplicate nested installer file")
)

type (
	// NestedInstallerFile references one installer inside an archive.
	// RelativeFilePath is the archive entry name, byte for byte.
	// PortableCommandAlias is filled in by later manifest steps and is empty
	// when the record is created from an archive.
	NestedInstallerFile struct {
		RelativeFilePath     string `yaml:"RelativeFilePath"`
		PortableCommandAlias string `yaml:"PortableCommandAlias,omitempty"`
	}

	// InvalidNestedInstallerFileError is returned when a NestedInstallerFile
	// has an empty relative path.
	InvalidNestedInstallerFileError struct {
		Value NestedInstallerFile
	}

	// NestedInstallerFiles is a set of records ordered by relative path.
	// Paths are unique within the set. Use NewNestedInstallerFiles or Add to
	// keep the ordering invariant.
	NestedInstallerFiles []NestedInstallerFile
)

// NewNestedInstallerFile creates a record for an archive entry with no alias.
func NewNestedInstallerFile(path string) NestedInstallerFile {
	return NestedInstallerFile{RelativeFilePath: path}
}

// Validate returns an error if the record has an empty relative path. Any
// other entry name, whitespace included, is a valid path.
func (f NestedInstallerFile) Validate() error {
	if f.RelativeFilePath == "" {
		return &InvalidNestedInstallerFileError{Value: f}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidNestedInstallerFileError) Error() string {
	return fmt.Sprintf("invalid nested installer file %q: relative path must be non-empty", e.Value.RelativeFilePath)
}

// Unwrap returns ErrInvalidNestedInstallerFile for errors.Is() compatibility.
func (e *InvalidNestedInstallerFileError) Unwrap() error { return ErrInvalidNestedInstallerFile }

// NewNestedInstallerFiles builds a set from entry names. Duplicate names
// collapse into one record.
func NewNestedInstallerFiles(paths ...string) (NestedInstallerFiles, error) {
	set := make(NestedInstallerFiles, 0, len(paths))
	for _, p := range paths {
		if err := set.Add(NewNestedInstallerFile(p)); err != nil && !errors.Is(err, ErrDuplicateNestedInstallerFile) {
			return nil, err
		}
	}
	return set, nil
}

// Add inserts a record in path order. It returns ErrDuplicateNestedInstallerFile
// if the path is already present, leaving the set unchanged.
func (s *NestedInstallerFiles) Add(f NestedInstallerFile) error {
	if err := f.Validate(); err != nil {
		return err
	}
	i, found := slices.BinarySearchFunc(*s, f.RelativeFilePath, func(e NestedInstallerFile, path string) int {
		return cmp.Compare(e.RelativeFilePath, path)
	})
	if found {
		return fmt.Errorf("%w: %s", ErrDuplicateNestedInstallerFile, f.RelativeFilePath)
	}
	*s = slices.Insert(*s, i, f)
	return nil
}

// Paths returns the relative paths in set order.
func (s NestedInstallerFiles) Paths() []string {
	paths := make([]string, len(s))
	for i, f := range s {
		paths[i] = f.RelativeFilePath
	}
	return paths
}

// Contains reports whether the set holds a record for path.
func (s NestedInstallerFiles) Contains(path string) bool {
	_, found := slices.BinarySearchFunc(s, path, func(e NestedInstallerFile, p string) int {
		return cmp.Compare(e.RelativeFilePath, p)
	})
	return found
}
