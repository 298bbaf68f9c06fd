// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"io"

	"github.com/bodgit/sevenzip"
)

type sevenZipArchive struct {
	reader *sevenzip.Reader
}

// OpenSevenZip reads the header of the 7z container held in r.
func OpenSevenZip(r io.ReaderAt, size int64) (Archive, error) {
	sr, err := sevenzip.NewReader(r, size)
	if err != nil {
		return nil, &OpenError{Format: FormatSevenZip, Cause: err}
	}
	return &sevenZipArchive{reader: sr}, nil
}

func (a *sevenZipArchive) Format() Format { return FormatSevenZip }

func (a *sevenZipArchive) Names() []string {
	names := make([]string, len(a.reader.File))
	for i, f := range a.reader.File {
		names[i] = f.Name
	}
	return names
}

func (a *sevenZipArchive) Open(name string) (io.ReadCloser, int64, error) {
	for _, f := range a.reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, 0, err
		}
		return rc, int64(f.UncompressedSize), nil //nolint:gosec // entry sizes fit in int64
	}
	return nil, 0, &EntryNotFoundError{Name: name}
}

// Close is a no-op; the caller owns the underlying reader.
func (a *sevenZipArchive) Close() error { return nil }
