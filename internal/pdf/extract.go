// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"iter"
	"strings"
)

// PageSeparator is inserted between consecutive pages when separators are
// enabled: a blank line, a Markdown horizontal rule, a blank line.
const PageSeparator = "\n\n---\n\n"

// Options controls how page texts are combined.
type Options struct {
	// PageSeparators joins pages with PageSeparator instead of
	// concatenating them.
	PageSeparators bool

	// RemoveHeadersFooters drops repeated header/footer sentences. It needs
	// every page before joining, so the page sequence is buffered.
	RemoveHeadersFooters bool

	// NormalizeWhitespace collapses whitespace runs within each page and
	// trims it.
	NormalizeWhitespace bool
}

// ConvertFile opens the PDF at path, extracts every page and joins them.
// The file is closed on every path.
func ConvertFile(path string, opts Options) (string, error) {
	doc, err := Open(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return Extract(doc, opts)
}

// Extract reads all pages of doc and joins them according to opts. It
// returns either the complete text or an error, never a partial result.
func Extract(doc *Document, opts Options) (string, error) {
	pages := doc.Pages()

	if opts.NormalizeWhitespace {
		pages = mapPages(pages, normalizeWhitespace)
	}

	if opts.RemoveHeadersFooters {
		texts, err := collect(pages)
		if err != nil {
			return "", err
		}
		texts = RemoveHeadersFooters(texts)
		pages = sliceSeq(texts)
	}

	return Join(pages, opts.PageSeparators)
}

// Join combines page texts in order. With separators, PageSeparator appears
// exactly between consecutive pages (n-1 times for n pages), including
// around empty pages. Without, texts are concatenated as-is. The first
// error from pages aborts the join.
func Join(pages iter.Seq2[string, error], separators bool) (string, error) {
	var b strings.Builder
	first := true
	for text, err := range pages {
		if err != nil {
			return "", err
		}
		if separators && !first {
			b.WriteString(PageSeparator)
		}
		b.WriteString(text)
		first = false
	}
	return b.String(), nil
}

func mapPages(pages iter.Seq2[string, error], fn func(string) string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for text, err := range pages {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(fn(text), nil) {
				return
			}
		}
	}
}

func collect(pages iter.Seq2[string, error]) ([]string, error) {
	var texts []string
	for text, err := range pages {
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, nil
}

func sliceSeq(texts []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, t := range texts {
			if !yield(t, nil) {
				return
			}
		}
	}
}

// normalizeWhitespace replaces every whitespace run with a single space and
// trims the ends.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
