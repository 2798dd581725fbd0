// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns documents into Markdown. A Registry holds an ordered
// set of Converters; the first converter that accepts a stream's detected
// type performs the conversion.
package convert

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/markitdown/internal/container"
	"github.com/pdiddy/markitdown/internal/httputil"
	"github.com/pdiddy/markitdown/pkg/types"
)

// Converter transforms one input format into Markdown. Backends (native PDF,
// HTML, plain text, the markitdown container) implement this interface.
type Converter interface {
	// Accepts reports whether the converter handles streams described by
	// info. It must decide from info alone, without reading the stream.
	Accepts(info types.StreamInfo) bool

	// Convert reads r from the start and returns the Markdown content.
	Convert(r io.ReadSeeker, info types.StreamInfo, opts types.ConvertOptions) (*types.Result, error)
}

// Priorities for Register. Lower values are tried first.
const (
	PrioritySpecific = 0.0  // format-specific converters
	PriorityGeneric  = 10.0 // catch-all converters such as plain text
)

// ErrUnsupportedFormat is returned when no registered converter accepts the
// input.
var ErrUnsupportedFormat = errors.New("unsupported format")

type registration struct {
	converter Converter
	priority  float64
}

// Registry dispatches conversions to registered converters.
type Registry struct {
	entries []registration
	log     logrus.FieldLogger
}

// NewRegistry returns an empty registry. A nil log discards diagnostics.
func NewRegistry(log logrus.FieldLogger) *Registry {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Registry{log: log}
}

// NewDefaultRegistry builds the registry used by the CLI: native PDF, HTML
// and plain-text converters, plus the markitdown container fallback when
// cfg.Container.Enabled is set.
func NewDefaultRegistry(cfg types.Config, log logrus.FieldLogger) (*Registry, error) {
	reg := NewRegistry(log)
	reg.Register(&PlainTextConverter{}, PriorityGeneric)
	reg.Register(NewHTMLConverter(), PrioritySpecific)
	reg.Register(NewPDFConverter(reg.log), PrioritySpecific)

	if cfg.Container.Enabled {
		rt, err := container.DetectRuntime(cfg.Container.Runtime)
		if err != nil {
			return nil, err
		}
		cc, err := NewContainerConverter(rt, cfg.Container.Image)
		if err != nil {
			return nil, err
		}
		reg.Register(cc, PriorityGeneric)
	}
	return reg, nil
}

// Register adds c with the given priority. Among converters of equal
// priority, the most recently registered is tried first.
func (r *Registry) Register(c Converter, priority float64) {
	r.entries = slices.Insert(r.entries, 0, registration{converter: c, priority: priority})
	slices.SortStableFunc(r.entries, func(a, b registration) int {
		return cmp.Compare(a.priority, b.priority)
	})
}

// ConvertStream detects the type of rs, completing info, and hands it to the
// first accepting converter. The converter's error is returned wrapped; no
// other converter is tried.
func (r *Registry) ConvertStream(rs io.ReadSeeker, info types.StreamInfo, opts types.ConvertOptions) (*types.Result, error) {
	info, err := DetectStreamInfo(rs, info)
	if err != nil {
		return nil, err
	}

	for _, e := range r.entries {
		if !e.converter.Accepts(info) {
			continue
		}
		r.log.WithFields(logrus.Fields{
			"source":    info.Source(),
			"converter": fmt.Sprintf("%T", e.converter),
			"mime_type": info.MIMEType,
			"extension": info.Extension,
		}).Debug("dispatching conversion")

		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewinding %s: %w", info.Source(), err)
		}
		res, err := e.converter.Convert(rs, info, opts)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", info.Source(), err)
		}
		return res, nil
	}

	return nil, fmt.Errorf("%s (type %q, extension %q): %w",
		info.Source(), info.MIMEType, info.Extension, ErrUnsupportedFormat)
}

// ConvertFile converts the file at path. The file is closed before
// returning.
func (r *Registry) ConvertFile(path string, opts types.ConvertOptions) (*types.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return r.ConvertStream(f, types.StreamInfo{
		LocalPath: path,
		Filename:  filepath.Base(path),
	}, opts)
}

// ConvertURL downloads rawURL with fetcher and converts the body. The
// response Content-Type is used as the MIME type hint.
func (r *Registry) ConvertURL(ctx context.Context, fetcher *httputil.Fetcher, rawURL string, opts types.ConvertOptions) (*types.Result, error) {
	resp, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	info := types.StreamInfo{URL: resp.URL, MIMEType: resp.ContentType}
	if u, err := url.Parse(resp.URL); err == nil {
		if base := path.Base(u.Path); base != "/" && base != "." {
			info.Filename = base
		}
	}
	return r.ConvertStream(bytes.NewReader(resp.Body), info, opts)
}
