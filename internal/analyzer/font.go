// SPDX-License-Identifier: MPL-2.0

package analyzer

import (
	"bytes"
	"strings"

	"forge-cli/pkg/installer"
)

var (
	trueTypeMagic   = []byte{0x00, 0x01, 0x00, 0x00}
	openTypeMagic   = []byte("OTTO")
	collectionMagic = []byte("ttcf")
)

func isFont(head []byte, name string) bool {
	if bytes.HasPrefix(head, trueTypeMagic) || bytes.HasPrefix(head, openTypeMagic) || bytes.HasPrefix(head, collectionMagic) {
		return true
	}
	switch strings.ToLower(installer.FileExtension(name)) {
	case "ttf", "otf", "ttc", "fon", "fnt":
		return true
	default:
		return false
	}
}
