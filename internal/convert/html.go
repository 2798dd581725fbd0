// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/markitdown/pkg/types"
)

var (
	htmlExtensions   = map[string]bool{".html": true, ".htm": true, ".xhtml": true}
	htmlMIMEPrefixes = []string{"text/html", "application/xhtml"}
)

// HTMLConverter renders HTML documents as Markdown. Scripts and styles are
// dropped and only the body is converted; the <title> becomes the result
// title.
type HTMLConverter struct {
	conv *md.Converter
}

// NewHTMLConverter returns a converter producing ATX headings and fenced
// code blocks.
func NewHTMLConverter() *HTMLConverter {
	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:     "atx",
		CodeBlockStyle:   "fenced",
		BulletListMarker: "*",
	})
	return &HTMLConverter{conv: conv}
}

func (c *HTMLConverter) Accepts(info types.StreamInfo) bool {
	if htmlExtensions[info.NormalizedExtension()] {
		return true
	}
	mt := info.BaseMIMEType()
	for _, prefix := range htmlMIMEPrefixes {
		if strings.HasPrefix(mt, prefix) {
			return true
		}
	}
	return false
}

func (c *HTMLConverter) Convert(r io.ReadSeeker, info types.StreamInfo, _ types.ConvertOptions) (*types.Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script, style").Remove()

	sel := doc.Find("body")
	if sel.Length() == 0 {
		sel = doc.Selection
	}

	return &types.Result{
		Markdown: strings.TrimSpace(c.conv.Convert(sel)),
		Title:    title,
	}, nil
}
