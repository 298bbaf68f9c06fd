// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"forge-cli/internal/nested"
	"forge-cli/pkg/installer"

	"gopkg.in/yaml.v3"
)

const (
	// OutputText renders a styled human-readable report.
	OutputText OutputFormat = "text"
	// OutputYAML renders manifest-style YAML.
	OutputYAML OutputFormat = "yaml"

	// outcomeSelected marks a resolution completed through the prompt.
	outcomeSelected = "selected"
)

// ErrInvalidOutputFormat is the sentinel error wrapped by InvalidOutputFormatError.
var ErrInvalidOutputFormat = errors.New("invalid output format")

type (
	// OutputFormat selects how reports are written.
	OutputFormat string

	// InvalidOutputFormatError is returned for unknown --output values.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// nestedReport is the manifest-facing view of a nested resolution.
	nestedReport struct {
		Archive              string                         `yaml:"Archive"`
		Outcome              string                         `yaml:"Outcome"`
		NestedInstallerType  installer.NestedInstallerType  `yaml:"NestedInstallerType,omitempty"`
		Architecture         installer.Architecture         `yaml:"Architecture,omitempty"`
		NestedInstallerFiles installer.NestedInstallerFiles `yaml:"NestedInstallerFiles,omitempty"`
		Candidates           []string                       `yaml:"Candidates,omitempty"`
		// PathNotFound is set when an explicit path names no archive entry.
		PathNotFound bool `yaml:"PathNotFound,omitempty"`
	}

	// analyzeReport describes a top-level installer.
	analyzeReport struct {
		File          string                  `yaml:"File"`
		InstallerType installer.InstallerType `yaml:"InstallerType"`
		Architecture  installer.Architecture  `yaml:"Architecture,omitempty"`
		Nested        *nestedReport           `yaml:"Nested,omitempty"`
	}
)

func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (expected %s or %s)", e.Value, OutputText, OutputYAML)
}

func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// Validate returns an error if the format is not supported.
func (f OutputFormat) Validate() error {
	switch f {
	case OutputText, OutputYAML:
		return nil
	default:
		return &InvalidOutputFormatError{Value: f}
	}
}

// newNestedReport captures res. candidates are the entries that were pending
// before any prompt ran.
func newNestedReport(archivePath string, res *nested.Resolution, candidates []string, prompted bool) *nestedReport {
	r := &nestedReport{
		Archive:              archivePath,
		Outcome:              res.Outcome().String(),
		NestedInstallerType:  res.NestedInstallerType(),
		Architecture:         res.Architecture(),
		NestedInstallerFiles: res.NestedInstallerFiles(),
	}
	switch o := res.Outcome().(type) {
	case nested.ExplicitResolved:
		r.PathNotFound = !o.Found
	case nested.Pending:
		if prompted {
			r.Outcome = outcomeSelected
		} else {
			r.Candidates = candidates
		}
	}
	return r
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (r *nestedReport) writeText(w io.Writer) {
	fmt.Fprintln(w, TitleStyle.Render("Nested installer")+" "+CmdStyle.Render(r.Archive))
	r.writeBody(w, "  ")
}

func (r *nestedReport) writeBody(w io.Writer, indent string) {
	field := func(key, value string) {
		fmt.Fprintf(w, "%s%s %s\n", indent, SubtitleStyle.Render(key+":"), value)
	}

	field("Outcome", r.Outcome)
	if r.NestedInstallerType != "" {
		field("Type", SuccessStyle.Render(string(r.NestedInstallerType)))
	}
	if r.Architecture != "" {
		field("Architecture", SuccessStyle.Render(string(r.Architecture)))
	}
	for _, f := range r.NestedInstallerFiles {
		field("File", CmdStyle.Render(f.RelativeFilePath))
	}
	if r.PathNotFound {
		fmt.Fprintf(w, "%s%s\n", indent, WarningStyle.Render("the path is not an entry of the archive; it was recorded as given"))
	}
	if len(r.Candidates) > 0 {
		fmt.Fprintf(w, "%s%s\n", indent, WarningStyle.Render(fmt.Sprintf("%d candidates need a choice:", len(r.Candidates))))
		for _, c := range r.Candidates {
			fmt.Fprintf(w, "%s  - %s\n", indent, c)
		}
		fmt.Fprintf(w, "%s%s\n", indent, SubtitleStyle.Render("Pick one with --path, or run without --no-prompt to choose interactively."))
	}
}

func (r *analyzeReport) writeText(w io.Writer) {
	fmt.Fprintln(w, TitleStyle.Render("Installer")+" "+CmdStyle.Render(r.File))
	fmt.Fprintf(w, "  %s %s\n", SubtitleStyle.Render("Type:"), SuccessStyle.Render(string(r.InstallerType)))
	if r.Architecture != "" {
		fmt.Fprintf(w, "  %s %s\n", SubtitleStyle.Render("Architecture:"), SuccessStyle.Render(string(r.Architecture)))
	}
	if r.Nested != nil {
		fmt.Fprintln(w, "  "+TitleStyle.Render("Nested installer"))
		r.Nested.writeBody(w, "    ")
	}
}

// writeReport renders v in the requested format.
func writeReport(w io.Writer, format OutputFormat, v interface {
	writeText(io.Writer)
},
) error {
	if format == OutputYAML {
		return writeYAML(w, v)
	}
	v.writeText(w)
	return nil
}

// joinLines renders a list one entry per line.
func joinLines(items []string) string {
	return strings.Join(items, "\n")
}
