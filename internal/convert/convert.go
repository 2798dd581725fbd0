// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/markitdown/pkg/types"
)

// FileConverter converts a file on disk. *Registry implements it.
type FileConverter interface {
	ConvertFile(path string, opts types.ConvertOptions) (*types.Result, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// frontmatter is the YAML header written above each batch output.
type frontmatter struct {
	Source         string `yaml:"source"`
	Title          string `yaml:"title,omitempty"`
	ConvertedAt    string `yaml:"converted_at"`
	PageSeparators bool   `yaml:"page_separators"`
}

// ConvertDocument converts a single document, writing <ID>.md into
// cfg.OutputDir. If the output already exists and cfg.Overwrite is false, it
// skips conversion and returns ConversionNone. Nothing is written for a
// failed conversion.
func ConvertDocument(c FileConverter, doc types.Document, cfg types.BatchConfig, opts types.ConvertOptions, w io.Writer) types.ConversionStatus {
	mdPath := filepath.Join(cfg.OutputDir, doc.ID+".md")

	if !cfg.Overwrite {
		if _, err := os.Stat(mdPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", doc.ID)
			return types.ConversionNone
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed
	}

	res, err := c.ConvertFile(doc.SourcePath, opts)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed
	}

	content, err := addFrontmatter(doc, res, opts)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed
	}

	if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", doc.ID)
	return types.ConversionDone
}

// ConvertBatch processes documents in order, printing per-file status to w
// and returning a summary.
func ConvertBatch(c FileConverter, docs []types.Document, cfg types.BatchConfig, opts types.ConvertOptions, w io.Writer) BatchResult {
	var result BatchResult
	for _, d := range docs {
		switch ConvertDocument(c, d, cfg, opts, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertPaths builds Document records from file paths and delegates to
// ConvertBatch. Each ID is the file name without its extension.
func ConvertPaths(c FileConverter, paths []string, cfg types.BatchConfig, opts types.ConvertOptions, w io.Writer) BatchResult {
	docs := make([]types.Document, len(paths))
	for i, p := range paths {
		docs[i] = types.Document{
			ID:         strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
			SourcePath: p,
		}
	}
	return ConvertBatch(c, docs, cfg, opts, w)
}

// addFrontmatter prepends YAML frontmatter to the converted Markdown.
func addFrontmatter(doc types.Document, res *types.Result, opts types.ConvertOptions) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		Source:         doc.SourcePath,
		Title:          res.Title,
		ConvertedAt:    time.Now().UTC().Format(time.RFC3339),
		PageSeparators: opts.PageSeparators,
	})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(res.Markdown)
	return b.String(), nil
}
