// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/pdiddy/markitdown/pkg/types"
)

var (
	textExtensions = map[string]bool{
		".txt": true, ".text": true, ".md": true, ".markdown": true,
		".json": true, ".jsonl": true,
	}
	textMIMEPrefixes = []string{"text/", "application/json", "application/markdown"}
)

// PlainTextConverter passes text through unchanged, decoding it to UTF-8
// when the stream declares another charset.
type PlainTextConverter struct{}

func (c *PlainTextConverter) Accepts(info types.StreamInfo) bool {
	if textExtensions[info.NormalizedExtension()] {
		return true
	}
	mt := info.BaseMIMEType()
	for _, prefix := range textMIMEPrefixes {
		if strings.HasPrefix(mt, prefix) {
			return true
		}
	}
	return false
}

func (c *PlainTextConverter) Convert(r io.ReadSeeker, info types.StreamInfo, _ types.ConvertOptions) (*types.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}

	charset := strings.ToLower(strings.TrimSpace(info.Charset))
	switch charset {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return &types.Result{Markdown: string(data)}, nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", info.Charset, err)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s text: %w", charset, err)
	}
	return &types.Result{Markdown: string(decoded)}, nil
}
