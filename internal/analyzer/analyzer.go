// SPDX-License-Identifier: MPL-2.0

package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"forge-cli/pkg/installer"

	"github.com/charmbracelet/log"
)

var (
	// ErrUnsupportedFormat is the sentinel error wrapped by UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported installer format")

	mzMagic  = []byte("MZ")
	cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipMagic = []byte("PK\x03\x04")
)

type (
	// Source is a random-access view of a payload.
	// *io.SectionReader satisfies it.
	Source interface {
		io.ReaderAt
		io.ReadSeeker
		Size() int64
	}

	// Options tune a single analysis.
	Options struct {
		// Nested marks the payload as found inside another container. Nested
		// zips are reported as plain zips instead of asking the caller to
		// resolve the installer they contain.
		Nested bool
		// InstallerTypeHint is used for PE images that carry no recognizable
		// installer framework signature. Empty means "exe".
		InstallerTypeHint installer.InstallerType
	}

	// Result is the outcome of an analysis.
	Result struct {
		InstallerType installer.InstallerType
		Architecture  installer.Architecture
		// NeedsNestedResolution is set for top-level zip payloads whose real
		// installer has to be picked from the archive entries.
		NeedsNestedResolution bool
	}

	// UnsupportedFormatError is returned when a payload matches no known
	// installer format.
	UnsupportedFormatError struct {
		Name string
	}

	// Analyzer detects installer types and architectures.
	Analyzer struct {
		logger *log.Logger
	}

	// Option configures an Analyzer.
	Option func(*Analyzer)
)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported installer format", e.Name)
}

// Unwrap returns ErrUnsupportedFormat for errors.Is() compatibility.
func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// Analyze inspects src, whose file name is name, and returns its installer
// type and architecture. The architecture is left empty when the format does
// not record one.
func (a *Analyzer) Analyze(ctx context.Context, src Source, name string, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("analyze %s: %w", name, err)
	}

	head := make([]byte, len(cfbMagic))
	n, err := src.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return Result{}, fmt.Errorf("read %s: %w", name, err)
	}
	head = head[:n]

	var res Result
	switch {
	case bytes.HasPrefix(head, mzMagic):
		res, err = analyzePE(src, opts)
	case bytes.HasPrefix(head, cfbMagic):
		res, err = analyzeMSI(src)
	case bytes.HasPrefix(head, zipMagic):
		res, err = analyzeZip(src, name, opts)
	case isFont(head, name):
		res = Result{InstallerType: installer.InstallerTypeFont}
	default:
		return Result{}, &UnsupportedFormatError{Name: name}
	}
	if err != nil {
		return Result{}, fmt.Errorf("analyze %s: %w", name, err)
	}

	a.logger.Debug("analyzed payload",
		"name", name,
		"type", res.InstallerType,
		"architecture", res.Architecture,
		"nested", opts.Nested)
	return res, nil
}
