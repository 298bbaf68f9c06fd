// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// PE machine values accepted by MinimalPE.
const (
	MachineI386  uint16 = 0x014c
	MachineAMD64 uint16 = 0x8664
	MachineARM64 uint16 = 0xaa64
)

// ZipEntry describes one entry written by WriteZip. Names ending in "/" are
// written as directories. Method defaults to zip.Deflate.
type ZipEntry struct {
	Name   string
	Data   []byte
	Method uint16
}

// WriteZip writes a zip container holding entries, in order, to w.
// Entries using method 93 are compressed with Zstandard.
func WriteZip(w io.Writer, entries ...ZipEntry) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	for _, e := range entries {
		method := e.Method
		if method == 0 {
			method = zip.Deflate
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: method})
		if err != nil {
			return err
		}
		if len(e.Data) > 0 {
			if _, err := fw.Write(e.Data); err != nil {
				return err
			}
		}
	}
	return zw.Close()
}

// MustZip returns a zip container holding entries.
func MustZip(t testing.TB, entries ...ZipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteZip(&buf, entries...); err != nil {
		t.Fatalf("failed to build zip: %v", err)
	}
	return buf.Bytes()
}

// MinimalPE returns the smallest PE image debug/pe accepts: a DOS stub, the
// COFF header for machine, one empty section header per name in sections, and
// trailer appended verbatim (useful for installer signatures).
func MinimalPE(machine uint16, sections []string, trailer []byte) []byte {
	var buf bytes.Buffer

	// debug/pe reads a 96-byte DOS header, so the stub is padded past that.
	dos := make([]byte, 0x80)
	dos[0], dos[1] = 'M', 'Z'
	binary.LittleEndian.PutUint32(dos[0x3c:], 0x80)
	buf.Write(dos)
	buf.WriteString("PE\x00\x00")

	header := struct {
		Machine              uint16
		NumberOfSections     uint16
		TimeDateStamp        uint32
		PointerToSymbolTable uint32
		NumberOfSymbols      uint32
		SizeOfOptionalHeader uint16
		Characteristics      uint16
	}{
		Machine:          machine,
		NumberOfSections: uint16(len(sections)), //nolint:gosec // fixtures use a handful of sections
		Characteristics:  0x0102,
	}
	_ = binary.Write(&buf, binary.LittleEndian, header)

	for _, name := range sections {
		var sh [40]byte
		copy(sh[:8], name)
		buf.Write(sh[:])
	}

	buf.Write(trailer)
	return buf.Bytes()
}
