// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// FormatZip is a PKWARE zip container.
	FormatZip Format = "zip"
	// FormatSevenZip is a 7-Zip container.
	FormatSevenZip Format = "7z"
)

var (
	// ErrEntryNotFound is the sentinel error wrapped by EntryNotFoundError.
	ErrEntryNotFound = errors.New("archive entry not found")
	// ErrOpenArchive is returned when a container cannot be opened or its
	// directory cannot be read.
	ErrOpenArchive = errors.New("cannot open archive")

	sevenZipMagic = []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}
)

type (
	// Format identifies the container format of an Archive.
	Format string

	// Archive is an opened container. Entry names are reported exactly as
	// stored, in stored order, directories included.
	Archive interface {
		// Format returns the container format.
		Format() Format
		// Names returns every entry name in stored order.
		Names() []string
		// Open returns the decompressed contents of the entry whose name is
		// exactly name, along with its decompressed size. It returns an error
		// wrapping ErrEntryNotFound when no such entry exists.
		Open(name string) (io.ReadCloser, int64, error)
		// Close releases resources held by the archive.
		Close() error
	}

	// EntryNotFoundError is returned by Archive.Open for unknown entry names.
	EntryNotFoundError struct {
		Name string
	}

	// OpenError wraps a failure to read a container's directory.
	OpenError struct {
		Format Format
		Cause  error
	}
)

// Error implements the error interface.
func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("archive entry %q not found", e.Name)
}

// Unwrap returns ErrEntryNotFound for errors.Is() compatibility.
func (e *EntryNotFoundError) Unwrap() error { return ErrEntryNotFound }

// Error implements the error interface.
func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open %s archive: %v", e.Format, e.Cause)
}

// Unwrap returns both ErrOpenArchive and the underlying cause.
func (e *OpenError) Unwrap() []error { return []error{ErrOpenArchive, e.Cause} }

// Open reads the directory of the container held in r. The format is chosen
// from the leading magic bytes: 7z archives are recognized by signature and
// everything else is read as zip, which also accepts self-extracting stubs.
func Open(r io.ReaderAt, size int64) (Archive, error) {
	if DetectFormat(r) == FormatSevenZip {
		return OpenSevenZip(r, size)
	}
	return OpenZip(r, size)
}

// DetectFormat sniffs the container format from the first bytes of r.
func DetectFormat(r io.ReaderAt) Format {
	head := make([]byte, len(sevenZipMagic))
	n, _ := r.ReadAt(head, 0)
	if bytes.Equal(head[:n], sevenZipMagic) {
		return FormatSevenZip
	}
	return FormatZip
}

// OpenFile opens the container at path. Closing the returned Archive closes
// the underlying file.
func OpenFile(path string) (Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	a, err := Open(f, info.Size())
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileArchive{Archive: a, file: f}, nil
}

// fileArchive ties an Archive to the file it was read from.
type fileArchive struct {
	Archive
	file *os.File
}

// Close closes the archive and then the file.
func (a *fileArchive) Close() error {
	return errors.Join(a.Archive.Close(), a.file.Close())
}
