// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/markitdown/internal/pdf"
	"github.com/pdiddy/markitdown/pkg/types"
)

var pdfMIMEPrefixes = []string{"application/pdf", "application/x-pdf"}

// PDFConverter extracts the text layer of a PDF. Style information is
// ignored, so the output is essentially plain text, optionally with a
// horizontal rule between pages.
type PDFConverter struct {
	log logrus.FieldLogger
}

// NewPDFConverter returns a PDF converter that logs to log.
func NewPDFConverter(log logrus.FieldLogger) *PDFConverter {
	return &PDFConverter{log: log}
}

// Accepts reports whether info names a PDF by extension or MIME type.
func (c *PDFConverter) Accepts(info types.StreamInfo) bool {
	if info.NormalizedExtension() == ".pdf" {
		return true
	}
	mt := info.BaseMIMEType()
	for _, prefix := range pdfMIMEPrefixes {
		if strings.HasPrefix(mt, prefix) {
			return true
		}
	}
	return false
}

// Convert extracts every page of the PDF in r and joins them according to
// opts. Failures surface as *pdf.SourceOpenError or *pdf.ExtractionError.
func (c *PDFConverter) Convert(r io.ReadSeeker, info types.StreamInfo, opts types.ConvertOptions) (*types.Result, error) {
	source := info.Source()

	if opts.ValidatePDF {
		if err := pdf.Validate(source, r); err != nil {
			return nil, err
		}
	}

	ra, size, err := readerAt(r)
	if err != nil {
		return nil, &pdf.SourceOpenError{Source: source, Err: err}
	}

	doc, err := pdf.NewDocument(source, ra, size)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if c.log != nil {
		c.log.WithFields(logrus.Fields{
			"source":          source,
			"pages":           doc.NumPages(),
			"page_separators": opts.PageSeparators,
		}).Debug("extracting PDF text")
	}

	text, err := pdf.Extract(doc, pdf.Options{
		PageSeparators:       opts.PageSeparators,
		RemoveHeadersFooters: opts.RemoveHeadersFooters,
		NormalizeWhitespace:  opts.NormalizeWhitespace,
	})
	if err != nil {
		return nil, err
	}
	return &types.Result{Markdown: text}, nil
}

// readerAt exposes r as an io.ReaderAt with a known size, buffering it in
// memory when r does not support random access.
func readerAt(r io.ReadSeeker) (io.ReaderAt, int64, error) {
	if ra, ok := r.(io.ReaderAt); ok {
		size, err := r.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, err
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, 0, err
		}
		return ra, size, nil
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, 0, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	return bytes.NewReader(data), int64(len(data)), nil
}
