// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"forge-cli/internal/tui"
)

var (
	// ErrInvalidExtension is the sentinel error wrapped by InvalidExtensionError.
	ErrInvalidExtension = errors.New("invalid extension")
	// ErrInvalidTempDirPath is returned when a TempDirPath value is whitespace-only.
	ErrInvalidTempDirPath = errors.New("invalid temp dir path")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Extension is an installer file extension without the leading dot.
	Extension string

	// InvalidExtensionError is returned when an Extension is empty or holds
	// anything but ASCII letters and digits.
	InvalidExtensionError struct {
		Value Extension
	}

	// TempDirPath is the directory holding extraction temp files.
	// The zero value ("") is valid and means the OS temp directory.
	TempDirPath string

	// InvalidTempDirPathError is returned when a TempDirPath value is
	// non-empty but whitespace-only.
	InvalidTempDirPathError struct {
		Value TempDirPath
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Extensions is the installer extension allowlist used when scanning archives.
		Extensions []Extension `json:"extensions" mapstructure:"extensions"`
		// TempDir overrides where extracted entries are staged.
		TempDir TempDirPath `json:"temp_dir" mapstructure:"temp_dir"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Nested configures nested installer resolution
		Nested NestedConfig `json:"nested" mapstructure:"nested"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Theme selects the prompt theme
		Theme tui.Theme `json:"theme" mapstructure:"theme"`
		// Accessible forces accessible (line-based) prompts
		Accessible bool `json:"accessible" mapstructure:"accessible"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// NestedConfig configures nested installer resolution.
	NestedConfig struct {
		// Prompt enables the interactive selection of pending candidates
		Prompt bool `json:"prompt" mapstructure:"prompt"`
	}
)

func (e Extension) String() string { return string(e) }

// IsValid returns whether the Extension is a non-empty run of ASCII letters
// and digits.
func (e Extension) IsValid() (bool, []error) {
	if e == "" || strings.IndexFunc(string(e), func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	}) >= 0 {
		return false, []error{&InvalidExtensionError{Value: e}}
	}
	return true, nil
}

func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("invalid extension %q: use letters and digits only, without the leading dot", e.Value)
}

// Unwrap returns ErrInvalidExtension for errors.Is() compatibility.
func (e *InvalidExtensionError) Unwrap() error { return ErrInvalidExtension }

func (p TempDirPath) String() string { return string(p) }

// IsValid returns whether the TempDirPath is empty or has non-whitespace content.
func (p TempDirPath) IsValid() (bool, []error) {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidTempDirPathError{Value: p}}
	}
	return true, nil
}

func (e *InvalidTempDirPathError) Error() string {
	return fmt.Sprintf("invalid temp dir path %q: must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidTempDirPath for errors.Is() compatibility.
func (e *InvalidTempDirPathError) Unwrap() error { return ErrInvalidTempDirPath }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to Theme.Validate(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	if err := c.Theme.Validate(); err != nil {
		return false, []error{&InvalidUIConfigError{FieldErrors: []error{err}}}
	}
	return true, nil
}

func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether every field of the Config is valid.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, ext := range c.Extensions {
		if valid, fieldErrs := ext.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.TempDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Allowlist returns the extensions as plain strings.
func (c Config) Allowlist() []string {
	out := make([]string, len(c.Extensions))
	for i, ext := range c.Extensions {
		out[i] = string(ext)
	}
	return out
}
