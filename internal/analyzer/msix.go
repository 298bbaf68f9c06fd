// SPDX-License-Identifier: MPL-2.0

package analyzer

import (
	"strings"

	"forge-cli/pkg/installer"

	"github.com/antchfx/xmlquery"
	"github.com/klauspost/compress/zip"
)

const (
	appxManifest       = "AppxManifest.xml"
	appxBundleManifest = "AppxMetadata/AppxBundleManifest.xml"
)

// analyzeZip distinguishes MSIX/APPX packages and bundles, which are zip
// containers with a manifest at a fixed location, from plain zip archives.
func analyzeZip(src Source, name string, opts Options) (Result, error) {
	zr, err := zip.NewReader(src, src.Size())
	if err != nil {
		return Result{}, err
	}

	packageType := installer.InstallerTypeMsix
	if ext := strings.ToLower(installer.FileExtension(name)); ext == "appx" || ext == "appxbundle" {
		packageType = installer.InstallerTypeAppx
	}

	for _, f := range zr.File {
		switch f.Name {
		case appxManifest:
			arch, err := manifestArchitecture(f, "//*[local-name()='Identity']", "ProcessorArchitecture")
			if err != nil {
				return Result{}, err
			}
			return Result{InstallerType: packageType, Architecture: arch}, nil
		case appxBundleManifest:
			arch, err := manifestArchitecture(f, "//*[local-name()='Package'][@Type='application']", "Architecture")
			if err != nil {
				return Result{}, err
			}
			return Result{InstallerType: packageType, Architecture: arch}, nil
		}
	}

	return Result{
		InstallerType:         installer.InstallerTypeZip,
		NeedsNestedResolution: !opts.Nested,
	}, nil
}

// manifestArchitecture reads attr from the first node matching expr.
func manifestArchitecture(f *zip.File, expr, attr string) (installer.Architecture, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	doc, err := xmlquery.Parse(rc)
	if err != nil {
		return "", err
	}
	node := xmlquery.FindOne(doc, expr)
	if node == nil {
		return "", nil
	}
	return installer.ParseArchitecture(node.SelectAttr(attr)), nil
}
