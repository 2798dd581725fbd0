// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf extracts text from PDF documents page by page and joins the
// pages into a Markdown body, optionally separated by horizontal rules.
//
// Parsing is delegated to github.com/ledongthuc/pdf; this package owns the
// document lifecycle, page ordering, the separator contract and the error
// taxonomy (SourceOpenError, ExtractionError).
package pdf

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
)

// PageSource is the extraction capability behind a Document. Pages are
// numbered from 1. Implementations must return pages in a stable order.
// The ledongthuc/pdf source returns each page's text trimmed of leading and
// trailing whitespace; a page without text is "".
type PageSource interface {
	NumPage() int
	PageText(n int) (string, error)
}

// Document is an opened PDF. It must be closed by the caller.
type Document struct {
	source string
	pages  PageSource
	closer io.Closer
}

// Open opens the PDF at path. The returned Document owns the file handle.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceOpenError{Source: path, Err: err}
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &SourceOpenError{Source: path, Err: err}
	}
	doc, err := newDocument(path, f, fi.Size(), f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return doc, nil
}

// NewDocument parses a PDF from r. The caller keeps ownership of r; Close on
// the returned Document is a no-op for the underlying reader.
func NewDocument(source string, r io.ReaderAt, size int64) (*Document, error) {
	return newDocument(source, r, size, nil)
}

func newDocument(source string, r io.ReaderAt, size int64, closer io.Closer) (doc *Document, err error) {
	if size == 0 {
		return nil, &SourceOpenError{Source: source, Err: errors.New("empty file")}
	}
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if p := recover(); p != nil {
			doc, err = nil, &SourceOpenError{Source: source, Err: fmt.Errorf("malformed document: %v", p)}
		}
	}()
	rd, err := lpdf.NewReader(r, size)
	if err != nil {
		return nil, &SourceOpenError{Source: source, Err: err}
	}
	return &Document{source: source, pages: &readerSource{r: rd}, closer: closer}, nil
}

// FromPageSource wraps an arbitrary extraction capability in a Document.
// closer may be nil.
func FromPageSource(source string, ps PageSource, closer io.Closer) *Document {
	return &Document{source: source, pages: ps, closer: closer}
}

// Source returns the identifier used in errors.
func (d *Document) Source() string { return d.source }

// NumPages returns the page count.
func (d *Document) NumPages() int { return d.pages.NumPage() }

// Pages returns a lazy, one-pass sequence of page texts in document order.
// On failure it yields a single *ExtractionError and stops.
func (d *Document) Pages() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		n := d.pages.NumPage()
		for i := 1; i <= n; i++ {
			text, err := d.pages.PageText(i)
			if err != nil {
				yield("", &ExtractionError{Source: d.source, Page: i, Err: err})
				return
			}
			if !yield(text, nil) {
				return
			}
		}
	}
}

// Close releases the underlying file handle, if the Document owns one.
func (d *Document) Close() error {
	if d.closer == nil {
		return nil
	}
	c := d.closer
	d.closer = nil
	return c.Close()
}

// readerSource adapts a ledongthuc/pdf reader to PageSource.
type readerSource struct {
	r *lpdf.Reader
}

func (s *readerSource) NumPage() int { return s.r.NumPage() }

func (s *readerSource) PageText(n int) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("malformed page content: %v", p)
		}
	}()
	page := s.r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	// The reader starts each text run on a new line.
	return strings.TrimSpace(text), nil
}
