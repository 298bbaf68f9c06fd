// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ArchitectureX86     Architecture = "x86"
	ArchitectureX64     Architecture = "x64"
	ArchitectureArm     Architecture = "arm"
	ArchitectureArm64   Architecture = "arm64"
	ArchitectureNeutral Architecture = "neutral"
)

// ErrInvalidArchitecture is the sentinel error wrapped by InvalidArchitectureError.
var ErrInvalidArchitecture = errors.New("invalid architecture")

type (
	// Architecture is the CPU architecture an installer targets.
	// The zero value ("") means the architecture is unknown.
	Architecture string

	// InvalidArchitectureError is returned when an Architecture value is not recognized.
	InvalidArchitectureError struct {
		Value Architecture
	}
)

// ParseArchitecture maps the spellings found in PE headers, MSI templates and
// MSIX manifests onto an Architecture. Unknown spellings return "".
func ParseArchitecture(s string) Architecture {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x86", "intel", "i386", "386":
		return ArchitectureX86
	case "x64", "amd64", "x86_64":
		return ArchitectureX64
	case "arm", "armnt":
		return ArchitectureArm
	case "arm64", "aarch64":
		return ArchitectureArm64
	case "neutral":
		return ArchitectureNeutral
	default:
		return ""
	}
}

// String returns the manifest spelling of the architecture.
func (a Architecture) String() string { return string(a) }

// IsSet reports whether an architecture was resolved.
func (a Architecture) IsSet() bool { return a != "" }

// Validate returns an error if the Architecture is not a known value.
// The zero value is valid and means absent.
func (a Architecture) Validate() error {
	switch a {
	case "", ArchitectureX86, ArchitectureX64, ArchitectureArm, ArchitectureArm64, ArchitectureNeutral:
		return nil
	default:
		return &InvalidArchitectureError{Value: a}
	}
}

// Error implements the error interface.
func (e *InvalidArchitectureError) Error() string {
	return fmt.Sprintf("invalid architecture %q", e.Value)
}

// Unwrap returns ErrInvalidArchitecture for errors.Is() compatibility.
func (e *InvalidArchitectureError) Unwrap() error { return ErrInvalidArchitecture }
