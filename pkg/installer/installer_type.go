// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"errors"
	"fmt"
)

const (
	InstallerTypeMsix     InstallerType = "msix"
	InstallerTypeMsi      InstallerType = "msi"
	InstallerTypeAppx     InstallerType = "appx"
	InstallerTypeExe      InstallerType = "exe"
	InstallerTypeZip      InstallerType = "zip"
	InstallerTypeInno     InstallerType = "inno"
	InstallerTypeNullsoft InstallerType = "nullsoft"
	InstallerTypeWix      InstallerType = "wix"
	InstallerTypeBurn     InstallerType = "burn"
	InstallerTypePwa      InstallerType = "pwa"
	InstallerTypePortable InstallerType = "portable"
	InstallerTypeFont     InstallerType = "font"

	NestedInstallerTypeMsix     NestedInstallerType = "msix"
	NestedInstallerTypeMsi      NestedInstallerType = "msi"
	NestedInstallerTypeAppx     NestedInstallerType = "appx"
	NestedInstallerTypeExe      NestedInstallerType = "exe"
	NestedInstallerTypeInno     NestedInstallerType = "inno"
	NestedInstallerTypeNullsoft NestedInstallerType = "nullsoft"
	NestedInstallerTypeWix      NestedInstallerType = "wix"
	NestedInstallerTypeBurn     NestedInstallerType = "burn"
	NestedInstallerTypePortable NestedInstallerType = "portable"
	NestedInstallerTypeFont     NestedInstallerType = "font"
)

var (
	// ErrInvalidInstallerType is the sentinel error wrapped by InvalidInstallerTypeError.
	ErrInvalidInstallerType = errors.New("invalid installer type")
	// ErrInvalidNestedInstallerType is the sentinel error wrapped by InvalidNestedInstallerTypeError.
	ErrInvalidNestedInstallerType = errors.New("invalid nested installer type")
)

type (
	// InstallerType classifies a top-level installer payload.
	// The zero value ("") means the type is unknown.
	InstallerType string

	// NestedInstallerType classifies an installer found inside an archive.
	// It is a strict subset of InstallerType; the zero value ("") means absent.
	NestedInstallerType string

	// InvalidInstallerTypeError is returned when an InstallerType value is not recognized.
	InvalidInstallerTypeError struct {
		Value InstallerType
	}

	// InvalidNestedInstallerTypeError is returned when a NestedInstallerType value is not recognized.
	InvalidNestedInstallerTypeError struct {
		Value NestedInstallerType
	}
)

// nestedProjection maps every installer type that may live inside an archive
// to its nested equivalent. Types missing from the map have no nested form.
var nestedProjection = map[InstallerType]NestedInstallerType{
	InstallerTypeMsix:     NestedInstallerTypeMsix,
	InstallerTypeMsi:      NestedInstallerTypeMsi,
	InstallerTypeAppx:     NestedInstallerTypeAppx,
	InstallerTypeExe:      NestedInstallerTypeExe,
	InstallerTypeInno:     NestedInstallerTypeInno,
	InstallerTypeNullsoft: NestedInstallerTypeNullsoft,
	InstallerTypeWix:      NestedInstallerTypeWix,
	InstallerTypeBurn:     NestedInstallerTypeBurn,
	InstallerTypePortable: NestedInstallerTypePortable,
	InstallerTypeFont:     NestedInstallerTypeFont,
}

// String returns the manifest spelling of the installer type.
func (t InstallerType) String() string { return string(t) }

// Validate returns an error if the InstallerType is not a known value.
// The zero value is invalid.
func (t InstallerType) Validate() error {
	switch t {
	case InstallerTypeMsix, InstallerTypeMsi, InstallerTypeAppx, InstallerTypeExe,
		InstallerTypeZip, InstallerTypeInno, InstallerTypeNullsoft, InstallerTypeWix,
		InstallerTypeBurn, InstallerTypePwa, InstallerTypePortable, InstallerTypeFont:
		return nil
	default:
		return &InvalidInstallerTypeError{Value: t}
	}
}

// ToNested projects the type into the nested subset. Zip and pwa installers
// cannot be nested and, like the zero value, project to "".
func (t InstallerType) ToNested() NestedInstallerType {
	return nestedProjection[t]
}

// String returns the manifest spelling of the nested installer type.
func (t NestedInstallerType) String() string { return string(t) }

// IsSet reports whether a nested installer type was resolved.
func (t NestedInstallerType) IsSet() bool { return t != "" }

// Validate returns an error if the NestedInstallerType is not a known value.
// The zero value is valid and means absent.
func (t NestedInstallerType) Validate() error {
	if t == "" {
		return nil
	}
	for _, nested := range nestedProjection {
		if nested == t {
			return nil
		}
	}
	return &InvalidNestedInstallerTypeError{Value: t}
}

// Error implements the error interface.
func (e *InvalidInstallerTypeError) Error() string {
	return fmt.Sprintf("invalid installer type %q", e.Value)
}

// Unwrap returns ErrInvalidInstallerType for errors.Is() compatibility.
func (e *InvalidInstallerTypeError) Unwrap() error { return ErrInvalidInstallerType }

// Error implements the error interface.
func (e *InvalidNestedInstallerTypeError) Error() string {
	return fmt.Sprintf("invalid nested installer type %q", e.Value)
}

// Unwrap returns ErrInvalidNestedInstallerType for errors.Is() compatibility.
func (e *InvalidNestedInstallerTypeError) Unwrap() error { return ErrInvalidNestedInstallerType }
