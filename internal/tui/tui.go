// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

const (
	// ThemeDefault uses the base huh theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula theme.
	ThemeDracula Theme = "dracula"
	// ThemeCatppuccin uses the Catppuccin theme.
	ThemeCatppuccin Theme = "catppuccin"
	// ThemeBase16 uses the Base16 theme.
	ThemeBase16 Theme = "base16"
)

// ErrInvalidTheme is the sentinel error wrapped by InvalidThemeError.
var ErrInvalidTheme = errors.New("invalid theme")

type (
	// Theme represents the visual theme for TUI components.
	Theme string

	// InvalidThemeError is returned when a Theme value is not recognized.
	InvalidThemeError struct {
		Value Theme
	}

	// Config holds common configuration for TUI components.
	Config struct {
		// Theme specifies the visual theme to use.
		Theme Theme
		// Accessible enables accessible mode for screen readers and pipes.
		Accessible bool
		// Input is where prompts read from (nil means stdin).
		Input io.Reader
		// Output is where prompts are drawn (nil means stderr).
		Output io.Writer
	}
)

// Themes lists every supported theme.
func Themes() []Theme {
	return []Theme{ThemeDefault, ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16}
}

func (t Theme) String() string { return string(t) }

// Validate returns an error if the Theme is not one of the supported values.
func (t Theme) Validate() error {
	switch t {
	case ThemeDefault, ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16:
		return nil
	default:
		return &InvalidThemeError{Value: t}
	}
}

func (e *InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme %q (valid: default, charm, dracula, catppuccin, base16)", e.Value)
}

// Unwrap returns ErrInvalidTheme for errors.Is() compatibility.
func (e *InvalidThemeError) Unwrap() error { return ErrInvalidTheme }

// DefaultConfig returns the default configuration for TUI components.
// Accessible mode is switched on when stdin is not a terminal or the
// ACCESSIBLE environment variable is set, so prompts still work when input
// is piped.
//
// Prompts are drawn on stderr so they never mix with command output on
// stdout.
func DefaultConfig() Config {
	return Config{
		Theme:      ThemeDefault,
		Accessible: !isInputTerminal() || os.Getenv("ACCESSIBLE") != "",
		Output:     os.Stderr,
	}
}

func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// getHuhTheme converts a Theme to a huh.Theme.
func getHuhTheme(t Theme) *huh.Theme {
	switch t {
	case ThemeCharm:
		return huh.ThemeCharm()
	case ThemeDracula:
		return huh.ThemeDracula()
	case ThemeCatppuccin:
		return huh.ThemeCatppuccin()
	case ThemeBase16:
		return huh.ThemeBase16()
	default:
		return huh.ThemeBase()
	}
}

func (c Config) input() io.Reader {
	if c.Input != nil {
		return c.Input
	}
	return os.Stdin
}

func (c Config) output() io.Writer {
	if c.Output != nil {
		return c.Output
	}
	return os.Stderr
}
