// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/markitdown/internal/pdf/pdftest"
)

// fakeSource serves canned page texts and can fail on a chosen page.
type fakeSource struct {
	pages  []string
	failAt int // 1-based page that returns an error; 0 never fails
	read   []int
}

func (f *fakeSource) NumPage() int { return len(f.pages) }

func (f *fakeSource) PageText(n int) (string, error) {
	f.read = append(f.read, n)
	if n == f.failAt {
		return "", errors.New("bad content stream")
	}
	return f.pages[n-1], nil
}

// countingCloser records Close calls.
type countingCloser struct{ closed int }

func (c *countingCloser) Close() error {
	c.closed++
	return nil
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		opts  Options
		want  string
	}{
		{
			name:  "three pages with separators",
			pages: []string{"A", "B", "C"},
			opts:  Options{PageSeparators: true},
			want:  "A\n\n---\n\nB\n\n---\n\nC",
		},
		{
			name:  "three pages concatenated",
			pages: []string{"A", "B", "C"},
			want:  "ABC",
		},
		{
			name:  "page text keeps its own trailing newline",
			pages: []string{"first\n", "second\n"},
			want:  "first\nsecond\n",
		},
		{
			name:  "empty document with separators",
			pages: nil,
			opts:  Options{PageSeparators: true},
			want:  "",
		},
		{
			name:  "empty document without separators",
			pages: nil,
			want:  "",
		},
		{
			name:  "single page with separators",
			pages: []string{"only page"},
			opts:  Options{PageSeparators: true},
			want:  "only page",
		},
		{
			name:  "empty middle page still gets both separators",
			pages: []string{"A", "", "C"},
			opts:  Options{PageSeparators: true},
			want:  "A\n\n---\n\n\n\n---\n\nC",
		},
		{
			name:  "whitespace normalised per page",
			pages: []string{"  a \n b ", "c\t\td"},
			opts:  Options{PageSeparators: true, NormalizeWhitespace: true},
			want:  "a b\n\n---\n\nc d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := FromPageSource("test.pdf", &fakeSource{pages: tt.pages}, nil)
			got, err := Extract(doc, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_SeparatorCount(t *testing.T) {
	for n := 0; n <= 6; n++ {
		pages := make([]string, n)
		for i := range pages {
			pages[i] = strings.Repeat("x", i+1)
		}

		with, err := Extract(FromPageSource("p.pdf", &fakeSource{pages: pages}, nil), Options{PageSeparators: true})
		require.NoError(t, err)
		without, err := Extract(FromPageSource("p.pdf", &fakeSource{pages: pages}, nil), Options{})
		require.NoError(t, err)

		wantSeps := max(n-1, 0)
		assert.Equal(t, wantSeps, strings.Count(with, PageSeparator), "pages=%d", n)
		assert.Equal(t, 0, strings.Count(without, PageSeparator), "pages=%d", n)
		assert.Equal(t, strings.Join(pages, ""), without, "pages=%d", n)
		assert.Equal(t, strings.Join(pages, PageSeparator), with, "pages=%d", n)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	pages := []string{"Intro.", "Body text.", "Appendix."}
	opts := Options{PageSeparators: true}

	first, err := Extract(FromPageSource("p.pdf", &fakeSource{pages: pages}, nil), opts)
	require.NoError(t, err)
	second, err := Extract(FromPageSource("p.pdf", &fakeSource{pages: pages}, nil), opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtract_FailsMidStream(t *testing.T) {
	src := &fakeSource{pages: []string{"A", "B", "C"}, failAt: 2}
	doc := FromPageSource("broken.pdf", src, nil)

	got, err := Extract(doc, Options{PageSeparators: true})
	require.Error(t, err)
	assert.Empty(t, got, "no partial result on failure")
	assert.True(t, errors.Is(err, ErrExtraction))

	var exErr *ExtractionError
	require.True(t, errors.As(err, &exErr))
	assert.Equal(t, 2, exErr.Page)
	assert.Equal(t, "broken.pdf", exErr.Source)
	assert.Equal(t, []int{1, 2}, src.read, "pages after the failure are never read")
}

func TestExtract_FailsMidStreamWithHeaderRemoval(t *testing.T) {
	src := &fakeSource{pages: []string{"A.", "B.", "C."}, failAt: 3}
	got, err := Extract(FromPageSource("broken.pdf", src, nil), Options{RemoveHeadersFooters: true})
	require.Error(t, err)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestExtract_HeaderRemovalKeepsPageBoundaries(t *testing.T) {
	pages := []string{
		"Acme Report. Apples grow on trees. Page 1 of 3",
		"Acme Report. Bananas are yellow. Page 2 of 3",
		"Acme Report. Cherries are red. Page 3 of 3",
	}
	got, err := Extract(FromPageSource("r.pdf", &fakeSource{pages: pages}, nil),
		Options{PageSeparators: true, RemoveHeadersFooters: true})
	require.NoError(t, err)
	assert.Equal(t, "Apples grow on trees.\n\n---\n\nBananas are yellow.\n\n---\n\nCherries are red.", got)
}

func TestJoin_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	seq := func(yield func(string, error) bool) {
		if !yield("A", nil) {
			return
		}
		if !yield("", boom) {
			return
		}
		yield("C", nil)
	}
	got, err := Join(seq, true)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, got)
}

func TestDocument_CloseReleasesOnce(t *testing.T) {
	c := &countingCloser{}
	doc := FromPageSource("p.pdf", &fakeSource{}, c)
	require.NoError(t, doc.Close())
	require.NoError(t, doc.Close())
	assert.Equal(t, 1, c.closed)
}

func TestDocument_PagesStopsWhenConsumerStops(t *testing.T) {
	src := &fakeSource{pages: []string{"A", "B", "C"}}
	doc := FromPageSource("p.pdf", src, nil)
	for range doc.Pages() {
		break
	}
	assert.Equal(t, []int{1}, src.read)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()
	notPDF := filepath.Join(dir, "notes.pdf")
	require.NoError(t, os.WriteFile(notPDF, []byte("this is plain text, not a PDF document"), 0o644))
	empty := filepath.Join(dir, "empty.pdf")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.pdf")},
		{name: "not a PDF", path: notPDF},
		{name: "empty file", path: empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertFile(tt.path, Options{PageSeparators: true})
			require.Error(t, err)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, ErrSourceOpen)

			var openErr *SourceOpenError
			require.ErrorAs(t, err, &openErr)
			assert.Equal(t, tt.path, openErr.Source)
		})
	}
}

func TestOpen_MissingFileUnwrapsToNotExist(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestConvertFile_RealDocument(t *testing.T) {
	path := pdftest.WriteFile(t, t.TempDir(), "three.pdf", "Alpha", "Bravo", "Charlie")

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.NumPages())
	require.NoError(t, doc.Close())

	with, err := ConvertFile(path, Options{PageSeparators: true})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(with, PageSeparator))
	parts := strings.Split(with, PageSeparator)
	require.Len(t, parts, 3)
	assert.Contains(t, parts[0], "Alpha")
	assert.Contains(t, parts[1], "Bravo")
	assert.Contains(t, parts[2], "Charlie")

	without, err := ConvertFile(path, Options{})
	require.NoError(t, err)
	assert.NotContains(t, without, PageSeparator)
	assert.Less(t, strings.Index(without, "Alpha"), strings.Index(without, "Bravo"))
	assert.Less(t, strings.Index(without, "Bravo"), strings.Index(without, "Charlie"))
}

func TestConvertFile_ExactOutput(t *testing.T) {
	tests := []struct {
		name          string
		pages         []string
		withSeparator string
		without       string
	}{
		{
			name:          "three pages",
			pages:         []string{"A", "B", "C"},
			withSeparator: "A\n\n---\n\nB\n\n---\n\nC",
			without:       "ABC",
		},
		{
			name:          "empty middle page keeps its separators",
			pages:         []string{"A", "", "C"},
			withSeparator: "A\n\n---\n\n\n\n---\n\nC",
			without:       "AC",
		},
		{
			name:          "single page is the same either way",
			pages:         []string{"only"},
			withSeparator: "only",
			without:       "only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := pdftest.WriteFile(t, t.TempDir(), "doc.pdf", tt.pages...)

			with, err := ConvertFile(path, Options{PageSeparators: true})
			require.NoError(t, err)
			assert.Equal(t, tt.withSeparator, with)

			without, err := ConvertFile(path, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.without, without)
		})
	}
}
