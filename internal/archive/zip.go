// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

type zipArchive struct {
	reader *zip.Reader
}

// OpenZip reads the central directory of the zip container held in r.
func OpenZip(r io.ReaderAt, size int64) (Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &OpenError{Format: FormatZip, Cause: err}
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	return &zipArchive{reader: zr}, nil
}

func (a *zipArchive) Format() Format { return FormatZip }

func (a *zipArchive) Names() []string {
	names := make([]string, len(a.reader.File))
	for i, f := range a.reader.File {
		names[i] = f.Name
	}
	return names
}

func (a *zipArchive) Open(name string) (io.ReadCloser, int64, error) {
	for _, f := range a.reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, 0, err
		}
		return rc, int64(f.UncompressedSize64), nil //nolint:gosec // entry sizes fit in int64
	}
	return nil, 0, &EntryNotFoundError{Name: name}
}

// Close is a no-op; the caller owns the underlying reader.
func (a *zipArchive) Close() error { return nil }
