// SPDX-License-Identifier: MPL-2.0

package nested

import (
	"context"
	"io"

	"forge-cli/internal/analyzer"
	"forge-cli/internal/archive"

	"github.com/spf13/afero"
	"golang.org/x/exp/mmap"
)

const tempPattern = "forge-nested-*"

// Extractor copies archive entries into temporary files and hands a
// read-only view of them to a callback.
//
// On the OS filesystem the view is a memory map of the temporary file.
// Other filesystems (such as afero.MemMapFs in tests) are read through the
// file itself.
type Extractor struct {
	fs  afero.Fs
	dir string
}

// NewExtractor creates an Extractor that places temporary files in dir on fs.
// An empty dir means the system temporary directory.
func NewExtractor(fs afero.Fs, dir string) *Extractor {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Extractor{fs: fs, dir: dir}
}

// Extract copies the entry name of a into a temporary file and calls fn with a
// view of its content. The mapping and the temporary file are released before
// Extract returns, whatever fn returns. Errors from fn are returned unchanged.
func (e *Extractor) Extract(ctx context.Context, a archive.Archive, name string, fn func(analyzer.Source) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rc, _, err := a.Open(name)
	if err != nil {
		return &ExtractError{Entry: name, Op: "open entry", Cause: err}
	}
	defer rc.Close()

	tmp, err := afero.TempFile(e.fs, e.dir, tempPattern)
	if err != nil {
		return &ExtractError{Entry: name, Op: "create temporary file", Cause: err}
	}
	defer e.fs.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup

	written, err := io.Copy(tmp, rc)
	if err != nil {
		_ = tmp.Close()
		return &ExtractError{Entry: name, Op: "copy entry", Cause: err}
	}

	if _, ok := e.fs.(*afero.OsFs); !ok {
		defer tmp.Close()
		return fn(io.NewSectionReader(tmp, 0, written))
	}

	if err := tmp.Close(); err != nil {
		return &ExtractError{Entry: name, Op: "flush temporary file", Cause: err}
	}
	m, err := mmap.Open(tmp.Name())
	if err != nil {
		return &ExtractError{Entry: name, Op: "map temporary file", Cause: err}
	}
	defer m.Close()

	return fn(io.NewSectionReader(m, 0, int64(m.Len())))
}
