// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/markitdown/internal/container"
	"github.com/pdiddy/markitdown/pkg/types"
)

// DefaultMarkitdownImage is the image used when none is configured.
const DefaultMarkitdownImage = "markitdown:latest"

// containerFormats maps the MIME types handled by the container fallback to
// the extension hint passed to markitdown.
var containerFormats = map[string]string{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   ".docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         ".xlsx",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
	"application/vnd.ms-excel":   ".xls",
	"application/epub+zip":       ".epub",
	"application/vnd.ms-outlook": ".msg",
	"application/x-ipynb+json":   ".ipynb",
	"application/zip":            ".zip",
	"image/jpeg":                 ".jpg",
	"image/png":                  ".png",
	"audio/wav":                  ".wav",
	"audio/x-wav":                ".wav",
	"audio/mpeg":                 ".mp3",
	"audio/x-m4a":                ".m4a",
}

var containerExtensions = map[string]bool{
	".docx": true, ".xlsx": true, ".xls": true, ".pptx": true, ".epub": true,
	".msg": true, ".ipynb": true, ".zip": true, ".jpg": true, ".jpeg": true,
	".png": true, ".wav": true, ".mp3": true, ".m4a": true,
}

// ContainerConverter converts formats without a native converter by piping
// them through the markitdown container image. It depends on a
// container.Runtime (docker or podman) injected at construction time.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
}

// NewContainerConverter creates a converter that runs image (or
// DefaultMarkitdownImage) with rt. It verifies that the image exists locally
// before returning.
func NewContainerConverter(rt container.Runtime, image string) (*ContainerConverter, error) {
	if image == "" {
		image = DefaultMarkitdownImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image}, nil
}

func (m *ContainerConverter) Accepts(info types.StreamInfo) bool {
	return m.extension(info) != ""
}

// Convert pipes r through the markitdown container, passing the extension
// as a format hint, and returns the Markdown it prints.
func (m *ContainerConverter) Convert(r io.ReadSeeker, info types.StreamInfo, _ types.ConvertOptions) (*types.Result, error) {
	ext := m.extension(info)
	args := []string{"-x", strings.TrimPrefix(ext, ".")}

	var out bytes.Buffer
	if err := m.runtime.Run(m.image, args, r, &out); err != nil {
		return nil, fmt.Errorf("converting %s with markitdown: %w", info.Source(), err)
	}

	if out.Len() == 0 {
		return nil, fmt.Errorf("markitdown produced empty output for %s", info.Source())
	}

	return &types.Result{Markdown: out.String()}, nil
}

// extension returns the format hint for info, or "" when the container
// does not handle it.
func (m *ContainerConverter) extension(info types.StreamInfo) string {
	if ext := info.NormalizedExtension(); containerExtensions[ext] {
		return ext
	}
	return containerFormats[info.BaseMIMEType()]
}
