package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stdout []byte
	stderr []byte
	err    error
	args   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.args = append([]string{name}, args...)
	return f.stdout, f.stderr, f.err
}

func touchPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))
	return path
}

func TestExtractPages_SplitsOnFormFeed(t *testing.T) {
	path := touchPDF(t)
	runner := &fakeRunner{stdout: []byte("page one\ntext\fpage two\ftrailing page\f")}
	extractor := NewExtractor(Config{}, nil).WithRunner(runner)

	pages, err := extractor.ExtractPages(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "page one\ntext", pages[1])
	assert.Equal(t, "page two", pages[2])
	assert.Equal(t, "trailing page", pages[3])
	assert.Contains(t, runner.args, "-layout")
}

func TestExtractPages_MaxPages(t *testing.T) {
	path := touchPDF(t)
	runner := &fakeRunner{stdout: []byte("a\fb\fc\f")}
	extractor := NewExtractor(Config{MaxPages: 2}, nil).WithRunner(runner)

	pages, err := extractor.ExtractPages(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, pages, 2)
}

func TestExtractPages_MissingFile(t *testing.T) {
	extractor := NewExtractor(Config{}, nil).WithRunner(&fakeRunner{})

	pages, err := extractor.ExtractPages(context.Background(), "/nonexistent/menu.pdf")
	assert.Nil(t, pages, "no partial page map on a read error")
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestExtractPages_ExecFailure(t *testing.T) {
	path := touchPDF(t)
	runner := &fakeRunner{err: errors.New("boom"), stderr: []byte("corrupt xref table")}
	extractor := NewExtractor(Config{}, nil).WithRunner(runner)

	pages, err := extractor.ExtractPages(context.Background(), path)
	assert.Nil(t, pages)
	assert.ErrorIs(t, err, ErrUnreadable)
}
