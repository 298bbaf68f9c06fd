// SPDX-License-Identifier: MPL-2.0

package nested

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"forge-cli/internal/analyzer"
	"forge-cli/internal/archive"
	"forge-cli/internal/testutil"

	"github.com/spf13/afero"
)

type (
	analyzeCall struct {
		name string
		opts analyzer.Options
		data []byte
	}

	fakeAnalyzer struct {
		mu     sync.Mutex
		calls  []analyzeCall
		result analyzer.Result
		err    error
	}

	selectCall struct {
		title   string
		options []string
	}

	fakeSelector struct {
		responses [][]string
		err       error
		calls     []selectCall
		// rejected collects validator errors for the returned responses.
		rejected []error
	}
)

func (f *fakeAnalyzer) Analyze(_ context.Context, src analyzer.Source, name string, opts analyzer.Options) (analyzer.Result, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return analyzer.Result{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, analyzeCall{name: name, opts: opts, data: data})
	return f.result, f.err
}

func (f *fakeAnalyzer) Calls() []analyzeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSelector) MultiSelect(_ context.Context, title string, options []string, validate func([]string) error) ([]string, error) {
	f.calls = append(f.calls, selectCall{title: title, options: options})
	if f.err != nil {
		return nil, f.err
	}
	i := min(len(f.calls)-1, len(f.responses)-1)
	resp := f.responses[i]
	if err := validate(resp); err != nil {
		f.rejected = append(f.rejected, err)
	}
	return resp, nil
}

// openZip builds an in-memory zip archive from entries.
func openZip(t *testing.T, entries ...testutil.ZipEntry) archive.Archive {
	t.Helper()

	data := testutil.MustZip(t, entries...)
	a, err := archive.Open(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("archive.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// memExtractor returns an extractor backed by an in-memory filesystem.
func memExtractor(t *testing.T) (*Extractor, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/tmp", 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	return NewExtractor(fs, "/tmp"), fs
}
