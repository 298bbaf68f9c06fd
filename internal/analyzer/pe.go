// SPDX-License-Identifier: MPL-2.0

package analyzer

import (
	"bytes"
	"debug/pe"
	"errors"
	"io"

	"forge-cli/pkg/installer"
)

const (
	burnSection = ".wixburn"
	scanChunk   = 1 << 20
)

var (
	innoSignature     = []byte("Inno Setup Setup Data")
	nullsoftSignature = []byte("NullsoftInst")
)

// analyzePE classifies a PE image. Burn bundles carry a .wixburn section;
// Inno Setup and NSIS installers embed their setup data signature in the
// image or its overlay.
func analyzePE(src Source, opts Options) (Result, error) {
	f, err := pe.NewFile(src)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	res := Result{Architecture: machineArchitecture(f.FileHeader.Machine)}

	if f.Section(burnSection) != nil {
		res.InstallerType = installer.InstallerTypeBurn
		return res, nil
	}

	switch idx, err := indexAny(src, innoSignature, nullsoftSignature); {
	case err != nil:
		return Result{}, err
	case idx == 0:
		res.InstallerType = installer.InstallerTypeInno
	case idx == 1:
		res.InstallerType = installer.InstallerTypeNullsoft
	case opts.InstallerTypeHint != "":
		res.InstallerType = opts.InstallerTypeHint
	default:
		res.InstallerType = installer.InstallerTypeExe
	}
	return res, nil
}

func machineArchitecture(machine uint16) installer.Architecture {
	switch machine {
	case pe.IMAGE_FILE_MACHINE_I386:
		return installer.ArchitectureX86
	case pe.IMAGE_FILE_MACHINE_AMD64:
		return installer.ArchitectureX64
	case pe.IMAGE_FILE_MACHINE_ARM, pe.IMAGE_FILE_MACHINE_ARMNT:
		return installer.ArchitectureArm
	case pe.IMAGE_FILE_MACHINE_ARM64:
		return installer.ArchitectureArm64
	default:
		return ""
	}
}

// indexAny scans src chunk by chunk and returns the index of the first needle
// found, or -1. Chunks overlap so matches spanning a boundary are found.
func indexAny(src Source, needles ...[]byte) (int, error) {
	longest := 0
	for _, n := range needles {
		longest = max(longest, len(n))
	}

	buf := make([]byte, scanChunk+longest)
	for off := int64(0); off < src.Size(); off += scanChunk {
		n, err := src.ReadAt(buf, off)
		if err != nil && !errors.Is(err, io.EOF) {
			return -1, err
		}
		for i, needle := range needles {
			if bytes.Contains(buf[:n], needle) {
				return i, nil
			}
		}
	}
	return -1, nil
}
