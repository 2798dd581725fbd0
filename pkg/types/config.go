// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// ConvertOptions controls a single conversion. The zero value reproduces the
// plain continuous output: no page separators, no cleanup.
type ConvertOptions struct {
	// PageSeparators inserts a Markdown horizontal rule between PDF pages.
	PageSeparators bool `json:"page_separators" yaml:"page_separators"`

	// RemoveHeadersFooters drops sentences that repeat across PDF pages
	// (running headers, footers, page numbers).
	RemoveHeadersFooters bool `json:"remove_headers_footers" yaml:"remove_headers_footers"`

	// NormalizeWhitespace collapses whitespace runs inside each PDF page.
	NormalizeWhitespace bool `json:"normalize_whitespace" yaml:"normalize_whitespace"`

	// ValidatePDF runs a structural validation pass before extraction.
	ValidatePDF bool `json:"validate" yaml:"validate"`
}

// HTTPConfig holds settings used when the input is a URL.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// Container runtime names accepted in ContainerConfig.Runtime.
const (
	RuntimeAuto   = ""
	RuntimeDocker = "docker"
	RuntimePodman = "podman"
)

// ContainerConfig controls the markitdown container fallback used for
// formats without a native converter (DOCX, XLSX, PPTX, ...).
type ContainerConfig struct {
	// Enabled registers the container fallback converter.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Runtime forces "docker" or "podman"; empty means auto-detect.
	Runtime string `json:"runtime" yaml:"runtime"`

	// Image is the markitdown image reference (default "markitdown:latest").
	Image string `json:"image" yaml:"image"`
}

// BatchConfig holds settings for converting many files into a directory.
type BatchConfig struct {
	// OutputDir receives one <name>.md per input.
	OutputDir string `json:"out_dir" yaml:"out_dir"`

	// Overwrite re-converts inputs whose Markdown output already exists.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}

// ChunkConfig holds settings for the chunk command.
type ChunkConfig struct {
	// TokenLimit is the maximum number of tokens per chunk (default 500).
	TokenLimit int `json:"tokens" yaml:"tokens"`

	// Overlap is the number of characters shared by adjacent chunks (default 50).
	Overlap int `json:"overlap" yaml:"overlap"`
}

// Config groups every setting the CLI resolves from flags, environment and
// the config file.
type Config struct {
	Convert   ConvertOptions  `json:"convert" yaml:"convert"`
	HTTP      HTTPConfig      `json:"http" yaml:"http"`
	Container ContainerConfig `json:"container" yaml:"container"`
	Batch     BatchConfig     `json:"batch" yaml:"batch"`
	Chunk     ChunkConfig     `json:"chunk" yaml:"chunk"`
}

// ConfigError reports an invalid or conflicting option.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Option, e.Reason)
}

// Validate checks option combinations that cannot be honoured.
func (c Config) Validate() error {
	switch c.Container.Runtime {
	case RuntimeAuto, RuntimeDocker, RuntimePodman:
	default:
		return &ConfigError{Option: "container.runtime", Reason: fmt.Sprintf("unknown runtime %q (want docker or podman)", c.Container.Runtime)}
	}
	if c.Chunk.TokenLimit < 0 {
		return &ConfigError{Option: "chunk.tokens", Reason: "must not be negative"}
	}
	if c.Chunk.Overlap < 0 {
		return &ConfigError{Option: "chunk.overlap", Reason: "must not be negative"}
	}
	if c.HTTP.MaxRetries < 0 {
		return &ConfigError{Option: "http.max_retries", Reason: "must not be negative"}
	}
	return nil
}
