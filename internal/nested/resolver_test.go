// SPDX-License-Identifier: MPL-2.0

package nested

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"

	"forge-cli/internal/analyzer"
	"forge-cli/internal/testutil"
	"forge-cli/pkg/installer"
)

func TestResolve_AutoResolved(t *testing.T) {
	t.Parallel()

	payload := []byte("MZ payload")
	a := openZip(t,
		testutil.ZipEntry{Name: "readme.txt", Data: []byte("read me")},
		testutil.ZipEntry{Name: "bin/"},
		testutil.ZipEntry{Name: "bin/setup.exe", Data: payload},
	)
	fa := &fakeAnalyzer{result: analyzer.Result{InstallerType: installer.InstallerTypeInno, Architecture: installer.ArchitectureX64}}
	ex, _ := memExtractor(t)

	res, err := NewResolver(fa, WithExtractor(ex)).Resolve(t.Context(), a, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got, want := res.Outcome(), (AutoResolved{Path: "bin/setup.exe"}); got != want {
		t.Errorf("Outcome() = %#v, want %#v", got, want)
	}
	if got := res.NestedInstallerFiles().Paths(); !slices.Equal(got, []string{"bin/setup.exe"}) {
		t.Errorf("NestedInstallerFiles() = %v, want [bin/setup.exe]", got)
	}
	if res.NestedInstallerType() != installer.NestedInstallerTypeInno {
		t.Errorf("NestedInstallerType() = %q, want %q", res.NestedInstallerType(), installer.NestedInstallerTypeInno)
	}
	if res.Architecture() != installer.ArchitectureX64 {
		t.Errorf("Architecture() = %q, want %q", res.Architecture(), installer.ArchitectureX64)
	}
	if res.IsPending() || res.PendingCandidates() != nil {
		t.Error("auto-resolved archive reports pending candidates")
	}

	calls := fa.Calls()
	if len(calls) != 1 {
		t.Fatalf("analyzer calls = %d, want 1", len(calls))
	}
	if !calls[0].opts.Nested {
		t.Error("analysis ran without the Nested flag")
	}
	if calls[0].name != "bin/setup.exe" {
		t.Errorf("analyzed name = %q, want bin/setup.exe", calls[0].name)
	}
	if !bytes.Equal(calls[0].data, payload) {
		t.Errorf("analyzed data = %q, want %q", calls[0].data, payload)
	}
}

func TestResolve_ExplicitResolved(t *testing.T) {
	t.Parallel()

	a := openZip(t,
		testutil.ZipEntry{Name: "x86/setup.exe", Data: []byte("x86")},
		testutil.ZipEntry{Name: "x64/setup.exe", Data: []byte("x64")},
	)

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		fa := &fakeAnalyzer{result: analyzer.Result{InstallerType: installer.InstallerTypeExe, Architecture: installer.ArchitectureX64}}
		ex, _ := memExtractor(t)
		res, err := NewResolver(fa, WithExtractor(ex)).Resolve(t.Context(), a, "x64/setup.exe")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got, want := res.Outcome(), (ExplicitResolved{Path: "x64/setup.exe", Found: true}); got != want {
			t.Errorf("Outcome() = %#v, want %#v", got, want)
		}
		if res.NestedInstallerType() != installer.NestedInstallerTypeExe || res.Architecture() != installer.ArchitectureX64 {
			t.Errorf("analysis = (%q, %q), want (exe, x64)", res.NestedInstallerType(), res.Architecture())
		}
		calls := fa.Calls()
		if len(calls) != 1 || string(calls[0].data) != "x64" {
			t.Errorf("analyzer calls = %+v, want one call on the x64 entry", calls)
		}
	})

	t.Run("missing path is recorded without analysis", func(t *testing.T) {
		t.Parallel()

		fa := &fakeAnalyzer{}
		ex, _ := memExtractor(t)
		res, err := NewResolver(fa, WithExtractor(ex)).Resolve(t.Context(), a, "arm64/setup.exe")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got, want := res.Outcome(), (ExplicitResolved{Path: "arm64/setup.exe"}); got != want {
			t.Errorf("Outcome() = %#v, want %#v", got, want)
		}
		if got := res.NestedInstallerFiles().Paths(); !slices.Equal(got, []string{"arm64/setup.exe"}) {
			t.Errorf("NestedInstallerFiles() = %v, want [arm64/setup.exe]", got)
		}
		if res.NestedInstallerType().IsSet() || res.Architecture().IsSet() {
			t.Error("missing explicit path produced analysis results")
		}
		if len(fa.Calls()) != 0 {
			t.Error("analyzer called for a missing explicit path")
		}
	})

	t.Run("blank path is a miss, not a failure", func(t *testing.T) {
		t.Parallel()

		fa := &fakeAnalyzer{}
		ex, _ := memExtractor(t)
		res, err := NewResolver(fa, WithExtractor(ex)).Resolve(t.Context(), a, "  ")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got, want := res.Outcome(), (ExplicitResolved{Path: "  "}); got != want {
			t.Errorf("Outcome() = %#v, want %#v", got, want)
		}
		if got := res.NestedInstallerFiles().Paths(); !slices.Equal(got, []string{"  "}) {
			t.Errorf("NestedInstallerFiles() = %q, want [\"  \"]", got)
		}
		if len(fa.Calls()) != 0 {
			t.Error("analyzer called for a missing explicit path")
		}
	})

	t.Run("blank entry name that exists is analyzed and recorded", func(t *testing.T) {
		t.Parallel()

		blank := openZip(t, testutil.ZipEntry{Name: "  ", Data: []byte("blank")})
		fa := &fakeAnalyzer{result: analyzer.Result{InstallerType: installer.InstallerTypeExe, Architecture: installer.ArchitectureX86}}
		ex, _ := memExtractor(t)
		res, err := NewResolver(fa, WithExtractor(ex)).Resolve(t.Context(), blank, "  ")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got, want := res.Outcome(), (ExplicitResolved{Path: "  ", Found: true}); got != want {
			t.Errorf("Outcome() = %#v, want %#v", got, want)
		}
		if res.NestedInstallerType() != installer.NestedInstallerTypeExe {
			t.Errorf("NestedInstallerType() = %q, want exe", res.NestedInstallerType())
		}
		if got := res.NestedInstallerFiles().Paths(); !slices.Equal(got, []string{"  "}) {
			t.Errorf("NestedInstallerFiles() = %q, want [\"  \"]", got)
		}
	})
}

func TestResolve_NestedZipHasNoNestedType(t *testing.T) {
	t.Parallel()

	inner := testutil.MustZip(t, testutil.ZipEntry{Name: "setup.exe", Data: testutil.MinimalPE(testutil.MachineAMD64, nil, nil)})
	a := openZip(t, testutil.ZipEntry{Name: "payload.zip", Data: inner})
	ex, _ := memExtractor(t)

	res, err := NewResolver(analyzer.New(), WithExtractor(ex)).Resolve(t.Context(), a, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got, want := res.Outcome(), (AutoResolved{Path: "payload.zip"}); got != want {
		t.Errorf("Outcome() = %#v, want %#v", got, want)
	}
	if res.NestedInstallerType().IsSet() {
		t.Errorf("NestedInstallerType() = %q, want unset for a nested zip", res.NestedInstallerType())
	}
	if got := res.NestedInstallerFiles().Paths(); !slices.Equal(got, []string{"payload.zip"}) {
		t.Errorf("NestedInstallerFiles() = %v, want [payload.zip]", got)
	}
}

func TestResolve_WithRealAnalyzer(t *testing.T) {
	t.Parallel()

	a := openZip(t,
		testutil.ZipEntry{Name: "setup.exe", Data: testutil.MinimalPE(testutil.MachineARM64, nil, nil), Method: 93},
		testutil.ZipEntry{Name: "notes.txt", Data: []byte("notes")},
	)
	ex, _ := memExtractor(t)

	res, err := NewResolver(analyzer.New(), WithExtractor(ex)).Resolve(t.Context(), a, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.NestedInstallerType() != installer.NestedInstallerTypeExe {
		t.Errorf("NestedInstallerType() = %q, want exe", res.NestedInstallerType())
	}
	if res.Architecture() != installer.ArchitectureArm64 {
		t.Errorf("Architecture() = %q, want arm64", res.Architecture())
	}
}

func TestResolve_Pending(t *testing.T) {
	t.Parallel()

	a := openZip(t,
		testutil.ZipEntry{Name: "x86/setup.exe", Data: []byte("x86")},
		testutil.ZipEntry{Name: "x64/setup.exe", Data: []byte("x64")},
		testutil.ZipEntry{Name: "readme.md", Data: []byte("docs")},
	)
	fa := &fakeAnalyzer{}
	ex, _ := memExtractor(t)

	res, err := NewResolver(fa, WithExtractor(ex)).Resolve(t.Context(), a, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := []string{"x86/setup.exe", "x64/setup.exe"}
	if !res.IsPending() {
		t.Fatalf("IsPending() = false, outcome %#v", res.Outcome())
	}
	if got := res.PendingCandidates(); !slices.Equal(got, want) {
		t.Errorf("PendingCandidates() = %v, want %v", got, want)
	}
	if len(res.NestedInstallerFiles()) != 0 {
		t.Errorf("NestedInstallerFiles() = %v, want none before prompting", res.NestedInstallerFiles())
	}
	if len(fa.Calls()) != 0 {
		t.Error("analyzer called for pending candidates")
	}
}

func TestResolve_AllowlistOption(t *testing.T) {
	t.Parallel()

	a := openZip(t,
		testutil.ZipEntry{Name: "a.exe", Data: []byte("a")},
		testutil.ZipEntry{Name: "b.msi", Data: []byte("b")},
	)
	ex, _ := memExtractor(t)

	res, err := NewResolver(&fakeAnalyzer{}, WithExtractor(ex), WithAllowlist([]string{"MSI"})).Resolve(t.Context(), a, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got, want := res.Outcome(), (AutoResolved{Path: "b.msi"}); got != want {
		t.Errorf("Outcome() = %#v, want %#v", got, want)
	}
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	t.Run("analysis failure", func(t *testing.T) {
		t.Parallel()

		a := openZip(t, testutil.ZipEntry{Name: "setup.exe", Data: []byte("MZ")})
		ex, _ := memExtractor(t)
		_, err := NewResolver(&fakeAnalyzer{err: errBoom}, WithExtractor(ex)).Resolve(t.Context(), a, "")
		if !errors.Is(err, ErrAnalysis) || !errors.Is(err, errBoom) {
			t.Errorf("Resolve() error = %v, want ErrAnalysis wrapping boom", err)
		}
		var analysisErr *AnalysisError
		if !errors.As(err, &analysisErr) || analysisErr.Entry != "setup.exe" {
			t.Errorf("Resolve() error = %#v, want *AnalysisError for setup.exe", err)
		}
	})

	t.Run("cancellation during analysis", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		a := openZip(t, testutil.ZipEntry{Name: "setup.exe", Data: []byte("MZ")})
		ex, _ := memExtractor(t)
		_, err := NewResolver(cancellingAnalyzer(cancel), WithExtractor(ex)).Resolve(ctx, a, "")
		if !errors.Is(err, ErrUserInput) || !errors.Is(err, context.Canceled) {
			t.Errorf("Resolve() error = %v, want ErrUserInput wrapping context.Canceled", err)
		}
		if errors.Is(err, ErrAnalysis) {
			t.Errorf("Resolve() error = %v, should not be reported as an analysis failure", err)
		}
	})

	t.Run("unsupported payload", func(t *testing.T) {
		t.Parallel()

		a := openZip(t, testutil.ZipEntry{Name: "setup.exe", Data: []byte("not an installer")})
		ex, _ := memExtractor(t)
		_, err := NewResolver(analyzer.New(), WithExtractor(ex)).Resolve(t.Context(), a, "")
		if !errors.Is(err, ErrAnalysis) || !errors.Is(err, analyzer.ErrUnsupportedFormat) {
			t.Errorf("Resolve() error = %v, want ErrAnalysis wrapping ErrUnsupportedFormat", err)
		}
	})

	t.Run("unreadable archive", func(t *testing.T) {
		t.Parallel()

		data := []byte("this is not an archive")
		_, err := NewResolver(&fakeAnalyzer{}).ResolveReader(t.Context(), bytes.NewReader(data), int64(len(data)), "")
		if !errors.Is(err, ErrArchive) {
			t.Errorf("ResolveReader() error = %v, want ErrArchive", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		a := openZip(t, testutil.ZipEntry{Name: "setup.exe", Data: []byte("MZ")})
		_, err := NewResolver(&fakeAnalyzer{}).Resolve(ctx, a, "")
		if !errors.Is(err, context.Canceled) || !errors.Is(err, ErrUserInput) {
			t.Errorf("Resolve() error = %v, want ErrUserInput wrapping context.Canceled", err)
		}
	})
}

func TestResolveReader(t *testing.T) {
	t.Parallel()

	data := testutil.MustZip(t,
		testutil.ZipEntry{Name: "app.msix", Data: []byte("PK")},
		testutil.ZipEntry{Name: "app.appx", Data: []byte("PK")},
	)
	ex, _ := memExtractor(t)

	res, err := NewResolver(&fakeAnalyzer{}, WithExtractor(ex)).ResolveReader(t.Context(), bytes.NewReader(data), int64(len(data)), "")
	if err != nil {
		t.Fatalf("ResolveReader() error = %v", err)
	}
	if got := res.PendingCandidates(); !slices.Equal(got, []string{"app.msix", "app.appx"}) {
		t.Errorf("PendingCandidates() = %v, want [app.msix app.appx]", got)
	}
}

type cancellingAnalyzer context.CancelFunc

func (c cancellingAnalyzer) Analyze(ctx context.Context, _ analyzer.Source, _ string, _ analyzer.Options) (analyzer.Result, error) {
	c()
	return analyzer.Result{}, ctx.Err()
}
