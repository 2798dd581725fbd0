// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines data structures shared by the converters, the batch
// runner and the CLI.
package types

import (
	"path/filepath"
	"strings"
)

// ConversionStatus indicates the outcome of converting one document.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Document is one batch input.
type Document struct {
	// ID is a slug derived from the file name (e.g. "annual-report").
	ID string `json:"id" yaml:"id"`

	// SourcePath is the local filesystem path to the input file.
	SourcePath string `json:"source_path" yaml:"source_path"`
}

// StreamInfo describes an input stream. Converters decide whether they
// accept a stream from these fields alone.
type StreamInfo struct {
	MIMEType  string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
	Charset   string `json:"charset,omitempty" yaml:"charset,omitempty"`
	Filename  string `json:"filename,omitempty" yaml:"filename,omitempty"`
	LocalPath string `json:"local_path,omitempty" yaml:"local_path,omitempty"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Source returns the most specific identifier available for error messages
// and logs.
func (s StreamInfo) Source() string {
	switch {
	case s.LocalPath != "":
		return s.LocalPath
	case s.URL != "":
		return s.URL
	case s.Filename != "":
		return s.Filename
	}
	return "<stream>"
}

// NormalizedExtension returns the lower-case extension with a leading dot,
// or "" when none is known.
func (s StreamInfo) NormalizedExtension() string {
	ext := strings.ToLower(strings.TrimSpace(s.Extension))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// BaseMIMEType returns the lower-case MIME type without parameters.
func (s StreamInfo) BaseMIMEType() string {
	mt, _, _ := strings.Cut(s.MIMEType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// ExtensionFromName returns the extension of a path or file name, or "".
func ExtensionFromName(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// Result is the output of a conversion.
type Result struct {
	// Markdown is the converted body.
	Markdown string `json:"markdown" yaml:"markdown"`

	// Title is the document title when the format carries one (HTML).
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}
