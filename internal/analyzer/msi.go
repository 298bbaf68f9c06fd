// SPDX-License-Identifier: MPL-2.0

package analyzer

import (
	"strings"

	"forge-cli/pkg/installer"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"
)

const summaryInformation = "SummaryInformation"

// analyzeMSI reads the summary information stream of a Windows Installer
// database. The Template property holds "<platform>;<languages>" and the
// creating application names the authoring toolset.
func analyzeMSI(src Source) (Result, error) {
	doc, err := mscfb.New(src)
	if err != nil {
		return Result{}, err
	}

	res := Result{InstallerType: installer.InstallerTypeMsi}
	props := msoleps.New()
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if !msoleps.IsMSOLEPS(entry.Initial) || strings.TrimLeft(entry.Name, "\x05") != summaryInformation {
			continue
		}
		if err := props.Reset(doc); err != nil {
			return Result{}, err
		}
		for _, prop := range props.Property {
			name := strings.ToLower(prop.Name)
			switch {
			case name == "template":
				platform, _, _ := strings.Cut(prop.String(), ";")
				platform, _, _ = strings.Cut(platform, ",")
				res.Architecture = installer.ParseArchitecture(platform)
			case strings.Contains(name, "application") && isWixToolset(prop.String()):
				res.InstallerType = installer.InstallerTypeWix
			}
		}
		break
	}
	return res, nil
}

func isWixToolset(creator string) bool {
	creator = strings.ToLower(creator)
	return strings.Contains(creator, "windows installer xml") || strings.Contains(creator, "wix toolset")
}
