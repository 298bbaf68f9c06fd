// SPDX-License-Identifier: MPL-2.0

package nested

import (
	"context"
	"io"
	"slices"

	"forge-cli/internal/analyzer"
	"forge-cli/internal/archive"
	"forge-cli/pkg/installer"

	"github.com/charmbracelet/log"
)

type (
	// Analyzer inspects an extracted entry. *analyzer.Analyzer satisfies it.
	Analyzer interface {
		Analyze(ctx context.Context, src analyzer.Source, name string, opts analyzer.Options) (analyzer.Result, error)
	}

	// Resolver picks the nested installers of archives.
	Resolver struct {
		allowlist []string
		analyzer  Analyzer
		extractor *Extractor
		logger    *log.Logger
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// WithAllowlist replaces the default installer extension allowlist.
func WithAllowlist(exts []string) Option {
	return func(r *Resolver) {
		if len(exts) > 0 {
			r.allowlist = slices.Clone(exts)
		}
	}
}

// WithExtractor sets the extractor used to materialize entries.
func WithExtractor(e *Extractor) Option {
	return func(r *Resolver) {
		if e != nil {
			r.extractor = e
		}
	}
}

// WithLogger sets the logger used for progress output.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a Resolver that analyzes entries with a.
func NewResolver(a Analyzer, opts ...Option) *Resolver {
	r := &Resolver{
		allowlist: installer.ValidFileExtensions,
		analyzer:  a,
		extractor: NewExtractor(nil, ""),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Allowlist returns a copy of the extensions the resolver considers.
func (r *Resolver) Allowlist() []string { return slices.Clone(r.allowlist) }

// ResolveReader opens the archive held by src and resolves it.
func (r *Resolver) ResolveReader(ctx context.Context, src io.ReaderAt, size int64, explicitPath string) (*Resolution, error) {
	a, err := archive.Open(src, size)
	if err != nil {
		return nil, &ArchiveError{Cause: err}
	}
	defer a.Close()
	return r.Resolve(ctx, a, explicitPath)
}

// Resolve decides the nested installers of a.
//
// An explicit path is recorded even when the archive has no such entry; the
// miss is logged and nothing is analyzed. An auto-resolved entry, or an
// explicit one that exists, is extracted and analyzed with Nested set, and
// its type is projected onto the nested installer types. Pending candidates
// are left on the Resolution for Prompt.
//
// A cancelled or expired ctx is reported as a UserInputError.
func (r *Resolver) Resolve(ctx context.Context, a archive.Archive, explicitPath string) (*Resolution, error) {
	res, err := r.resolve(ctx, a, explicitPath)
	if err != nil {
		return nil, interrupted(ctx, err)
	}
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, a archive.Archive, explicitPath string) (*Resolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scan := Scan(a, r.allowlist)
	outcome := Decide(scan, explicitPath)
	r.logger.Debug("scanned archive", "format", a.Format(), "candidates", len(scan.Candidates), "outcome", outcome)

	res := &Resolution{outcome: outcome}
	var chosen string
	switch o := outcome.(type) {
	case AutoResolved:
		chosen = o.Path
		if err := r.analyze(ctx, a, o.Path, res); err != nil {
			return nil, err
		}
	case ExplicitResolved:
		chosen = o.Path
		if !o.Found {
			r.logger.Warn("nested installer path not found in archive", "path", o.Path)
			break
		}
		if err := r.analyze(ctx, a, o.Path, res); err != nil {
			return nil, err
		}
	case Pending:
		return res, nil
	}

	files, err := installer.NewNestedInstallerFiles(chosen)
	if err != nil {
		return nil, &UserInputError{Cause: err}
	}
	res.files = files
	return res, nil
}

func (r *Resolver) analyze(ctx context.Context, a archive.Archive, name string, res *Resolution) error {
	return r.extractor.Extract(ctx, a, name, func(src analyzer.Source) error {
		result, err := r.analyzer.Analyze(ctx, src, name, analyzer.Options{Nested: true})
		if err != nil {
			return &AnalysisError{Entry: name, Cause: err}
		}
		res.installerType = result.InstallerType.ToNested()
		res.architecture = result.Architecture
		r.logger.Debug("analyzed nested installer", "path", name, "type", res.installerType, "arch", res.architecture)
		return nil
	})
}
