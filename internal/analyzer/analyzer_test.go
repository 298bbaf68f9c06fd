// SPDX-License-Identifier: MPL-2.0

package analyzer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"forge-cli/internal/testutil"
	"forge-cli/pkg/installer"
)

func source(data []byte) *io.SectionReader {
	return io.NewSectionReader(bytes.NewReader(data), 0, int64(len(data)))
}

func TestAnalyze_PE(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		opts     Options
		wantType installer.InstallerType
		wantArch installer.Architecture
	}{
		{
			name:     "plain x64 exe",
			data:     testutil.MinimalPE(testutil.MachineAMD64, nil, nil),
			wantType: installer.InstallerTypeExe,
			wantArch: installer.ArchitectureX64,
		},
		{
			name:     "arm64 exe",
			data:     testutil.MinimalPE(testutil.MachineARM64, nil, nil),
			wantType: installer.InstallerTypeExe,
			wantArch: installer.ArchitectureArm64,
		},
		{
			name:     "inno setup",
			data:     testutil.MinimalPE(testutil.MachineI386, nil, []byte("....Inno Setup Setup Data (6.2.0)")),
			wantType: installer.InstallerTypeInno,
			wantArch: installer.ArchitectureX86,
		},
		{
			name:     "nullsoft",
			data:     testutil.MinimalPE(testutil.MachineI386, nil, []byte("\xef\xbe\xad\xdeNullsoftInst")),
			wantType: installer.InstallerTypeNullsoft,
			wantArch: installer.ArchitectureX86,
		},
		{
			name:     "burn bundle",
			data:     testutil.MinimalPE(testutil.MachineAMD64, []string{".text", ".wixburn"}, nil),
			wantType: installer.InstallerTypeBurn,
			wantArch: installer.ArchitectureX64,
		},
		{
			name:     "hint used for plain exe",
			data:     testutil.MinimalPE(testutil.MachineAMD64, nil, nil),
			opts:     Options{InstallerTypeHint: installer.InstallerTypePortable},
			wantType: installer.InstallerTypePortable,
			wantArch: installer.ArchitectureX64,
		},
		{
			name:     "hint ignored for detected framework",
			data:     testutil.MinimalPE(testutil.MachineAMD64, nil, []byte("Inno Setup Setup Data")),
			opts:     Options{InstallerTypeHint: installer.InstallerTypePortable},
			wantType: installer.InstallerTypeInno,
			wantArch: installer.ArchitectureX64,
		},
	}

	a := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := a.Analyze(context.Background(), source(tt.data), "setup.exe", tt.opts)
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if res.InstallerType != tt.wantType {
				t.Errorf("InstallerType = %q, want %q", res.InstallerType, tt.wantType)
			}
			if res.Architecture != tt.wantArch {
				t.Errorf("Architecture = %q, want %q", res.Architecture, tt.wantArch)
			}
			if res.NeedsNestedResolution {
				t.Error("PE payloads never need nested resolution")
			}
		})
	}
}

func TestAnalyze_Zip(t *testing.T) {
	t.Parallel()

	data := testutil.MustZip(t, testutil.ZipEntry{Name: "setup.exe", Data: []byte("x")})
	a := New()

	top, err := a.Analyze(context.Background(), source(data), "bundle.zip", Options{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if top.InstallerType != installer.InstallerTypeZip || !top.NeedsNestedResolution {
		t.Errorf("top-level zip = %+v, want zip needing nested resolution", top)
	}

	nested, err := a.Analyze(context.Background(), source(data), "bundle.zip", Options{Nested: true})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if nested.InstallerType != installer.InstallerTypeZip || nested.NeedsNestedResolution {
		t.Errorf("nested zip = %+v, want zip without nested resolution", nested)
	}
	if nested.InstallerType.ToNested() != "" {
		t.Error("nested zip should have no nested installer type")
	}
}

func TestAnalyze_Msix(t *testing.T) {
	t.Parallel()

	manifest := []byte(`<?xml version="1.0" encoding="utf-8"?>
<Package xmlns="http://schemas.microsoft.com/appx/manifest/foundation/windows10">
  <Identity Name="Contoso.App" Publisher="CN=Contoso" Version="1.0.0.0" ProcessorArchitecture="x64" />
</Package>`)
	bundle := []byte(`<?xml version="1.0" encoding="utf-8"?>
<Bundle xmlns="http://schemas.microsoft.com/appx/2013/bundle">
  <Packages>
    <Package Type="resource" FileName="res.appx" />
    <Package Type="application" Architecture="arm64" FileName="app_arm64.msix" />
  </Packages>
</Bundle>`)

	tests := []struct {
		name     string
		file     string
		entries  []testutil.ZipEntry
		wantType installer.InstallerType
		wantArch installer.Architecture
	}{
		{"msix", "app.msix", []testutil.ZipEntry{{Name: "AppxManifest.xml", Data: manifest}}, installer.InstallerTypeMsix, installer.ArchitectureX64},
		{"appx", "app.appx", []testutil.ZipEntry{{Name: "AppxManifest.xml", Data: manifest}}, installer.InstallerTypeAppx, installer.ArchitectureX64},
		{"msixbundle", "app.msixbundle", []testutil.ZipEntry{{Name: "AppxMetadata/AppxBundleManifest.xml", Data: bundle}}, installer.InstallerTypeMsix, installer.ArchitectureArm64},
	}

	a := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := a.Analyze(context.Background(), source(testutil.MustZip(t, tt.entries...)), tt.file, Options{Nested: true})
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if res.InstallerType != tt.wantType || res.Architecture != tt.wantArch {
				t.Errorf("Analyze() = %+v, want type %q arch %q", res, tt.wantType, tt.wantArch)
			}
		})
	}
}

func TestAnalyze_Font(t *testing.T) {
	t.Parallel()

	res, err := New().Analyze(context.Background(), source([]byte("OTTO\x00\x0a")), "font.bin", Options{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if res.InstallerType != installer.InstallerTypeFont {
		t.Errorf("InstallerType = %q, want font", res.InstallerType)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	t.Parallel()

	a := New()

	_, err := a.Analyze(context.Background(), source([]byte("plain text")), "readme.exe", Options{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unknown payload error = %v, want ErrUnsupportedFormat", err)
	}

	_, err = a.Analyze(context.Background(), source([]byte("MZ but not really a PE")), "broken.exe", Options{})
	if err == nil {
		t.Error("expected error for malformed PE image")
	}

	corruptMSI := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 16)...)
	if _, err := a.Analyze(context.Background(), source(corruptMSI), "broken.msi", Options{}); err == nil {
		t.Error("expected error for malformed compound file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Analyze(ctx, source(testutil.MinimalPE(testutil.MachineAMD64, nil, nil)), "setup.exe", Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled analysis error = %v, want context.Canceled", err)
	}
}

func TestIndexAny_SpansChunks(t *testing.T) {
	t.Parallel()

	data := make([]byte, scanChunk+64)
	copy(data[scanChunk-4:], innoSignature)

	idx, err := indexAny(source(data), nullsoftSignature, innoSignature)
	if err != nil {
		t.Fatalf("indexAny() error = %v", err)
	}
	if idx != 1 {
		t.Errorf("indexAny() = %d, want 1", idx)
	}
}
