// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"mime"
	"net/url"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pdiddy/markitdown/pkg/types"
)

const octetStream = "application/octet-stream"

// DetectStreamInfo completes info for rs. Fields already set are kept,
// except a generic application/octet-stream MIME type, which is replaced
// by content sniffing. The extension comes from the file name, local path
// or URL, falling back to the sniffed type. rs is rewound before returning.
func DetectStreamInfo(rs io.ReadSeeker, info types.StreamInfo) (types.StreamInfo, error) {
	if info.Extension == "" {
		for _, name := range []string{info.Filename, info.LocalPath, urlPath(info.URL)} {
			if ext := types.ExtensionFromName(name); ext != "" {
				info.Extension = ext
				break
			}
		}
	}

	if base := info.BaseMIMEType(); base == "" || base == octetStream {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return info, fmt.Errorf("rewinding %s: %w", info.Source(), err)
		}
		mt, err := mimetype.DetectReader(rs)
		if _, serr := rs.Seek(0, io.SeekStart); serr != nil {
			return info, fmt.Errorf("rewinding %s: %w", info.Source(), serr)
		}
		if err != nil {
			return info, fmt.Errorf("detecting type of %s: %w", info.Source(), err)
		}
		info.MIMEType = mt.String()
		if info.Extension == "" {
			info.Extension = mt.Extension()
		}
	}

	if info.Charset == "" {
		if _, params, err := mime.ParseMediaType(info.MIMEType); err == nil {
			info.Charset = params["charset"]
		}
	}

	info.Extension = info.NormalizedExtension()
	return info, nil
}

func urlPath(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}
