// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/markitdown/pkg/types"
)

// fakeFileConverter implements FileConverter for testing. It returns canned
// Markdown or an error, depending on configuration.
type fakeFileConverter struct {
	output string
	title  string
	err    error
	calls  int
	opts   types.ConvertOptions
}

func (f *fakeFileConverter) ConvertFile(path string, opts types.ConvertOptions) (*types.Result, error) {
	f.calls++
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &types.Result{Markdown: f.output, Title: f.title}, nil
}

// setupInput creates a temporary input file and returns its path and the
// output directory.
func setupInput(t *testing.T) (inPath, outDir string) {
	t.Helper()
	tmpDir := t.TempDir()
	inPath = filepath.Join(tmpDir, "report.pdf")
	require.NoError(t, os.WriteFile(inPath, []byte("fake pdf"), 0o644))
	return inPath, filepath.Join(tmpDir, "markdown")
}

func TestConvertDocument(t *testing.T) {
	tests := []struct {
		name       string
		converter  *fakeFileConverter
		preCreate  bool // create output MD before running
		overwrite  bool
		wantStatus types.ConversionStatus
		wantLog    string
		wantCalls  int
	}{
		{
			name:       "successful conversion",
			converter:  &fakeFileConverter{output: "Page one"},
			wantStatus: types.ConversionDone,
			wantLog:    "converted: report",
			wantCalls:  1,
		},
		{
			name:       "skip existing markdown",
			converter:  &fakeFileConverter{output: "should not be called"},
			preCreate:  true,
			wantStatus: types.ConversionNone,
			wantLog:    "skipped: report",
		},
		{
			name:       "overwrite existing markdown",
			converter:  &fakeFileConverter{output: "fresh"},
			preCreate:  true,
			overwrite:  true,
			wantStatus: types.ConversionDone,
			wantLog:    "converted: report",
			wantCalls:  1,
		},
		{
			name:       "conversion failure",
			converter:  &fakeFileConverter{err: errors.New("opening PDF report.pdf: not a PDF file")},
			wantStatus: types.ConversionFailed,
			wantLog:    "failed:  report (opening PDF report.pdf",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inPath, outDir := setupInput(t)

			if tt.preCreate {
				require.NoError(t, os.MkdirAll(outDir, 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(outDir, "report.md"), []byte("existing"), 0o644))
			}

			doc := types.Document{ID: "report", SourcePath: inPath}
			cfg := types.BatchConfig{OutputDir: outDir, Overwrite: tt.overwrite}
			var log bytes.Buffer

			status := ConvertDocument(tt.converter, doc, cfg, types.ConvertOptions{}, &log)

			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, log.String(), tt.wantLog)
			assert.Equal(t, tt.wantCalls, tt.converter.calls)
		})
	}
}

func TestConvertDocument_FailureWritesNothing(t *testing.T) {
	inPath, outDir := setupInput(t)
	conv := &fakeFileConverter{err: errors.New("extracting page 2: bad stream")}

	status := ConvertDocument(conv, types.Document{ID: "report", SourcePath: inPath},
		types.BatchConfig{OutputDir: outDir}, types.ConvertOptions{}, &bytes.Buffer{})
	require.Equal(t, types.ConversionFailed, status)

	_, err := os.Stat(filepath.Join(outDir, "report.md"))
	assert.True(t, os.IsNotExist(err), "no output file for a failed conversion")
}

func TestConvertDocument_Frontmatter(t *testing.T) {
	inPath, outDir := setupInput(t)
	conv := &fakeFileConverter{output: "A\n\n---\n\nB", title: "Annual Report"}
	opts := types.ConvertOptions{PageSeparators: true}

	status := ConvertDocument(conv, types.Document{ID: "report", SourcePath: inPath},
		types.BatchConfig{OutputDir: outDir}, opts, &bytes.Buffer{})
	require.Equal(t, types.ConversionDone, status)
	assert.True(t, conv.opts.PageSeparators, "options reach the converter")

	data, err := os.ReadFile(filepath.Join(outDir, "report.md"))
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "---\n"), "output should start with YAML frontmatter delimiter")
	assert.Contains(t, content, "source: "+inPath)
	assert.Contains(t, content, "title: Annual Report")
	assert.Contains(t, content, "converted_at:")
	assert.Contains(t, content, "page_separators: true")
	assert.True(t, strings.HasSuffix(content, "---\n\nA\n\n---\n\nB"), "body follows the frontmatter unchanged")
}

func TestConvertBatch(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("pdf"), 0o644))
	}

	// Pre-create output for "b" to trigger skip.
	outDir := filepath.Join(tmpDir, "markdown")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "b.md"), []byte("existing"), 0o644))

	// Converter that fails for "c.pdf".
	conv := &selectiveConverter{
		outputs: map[string]string{
			filepath.Join(tmpDir, "a.pdf"): "Report A",
			filepath.Join(tmpDir, "b.pdf"): "Report B",
		},
		errors: map[string]error{
			filepath.Join(tmpDir, "c.pdf"): errors.New("bad pdf"),
		},
	}

	docs := []types.Document{
		{ID: "a", SourcePath: filepath.Join(tmpDir, "a.pdf")},
		{ID: "b", SourcePath: filepath.Join(tmpDir, "b.pdf")},
		{ID: "c", SourcePath: filepath.Join(tmpDir, "c.pdf")},
	}

	var log bytes.Buffer
	result := ConvertBatch(conv, docs, types.BatchConfig{OutputDir: outDir}, types.ConvertOptions{}, &log)

	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 3, result.Total())
	assert.Contains(t, log.String(), "Batch summary: 1 converted, 1 skipped, 1 failed (total: 3)")
}

func TestConvertPaths(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "quarterly.results.pdf")
	require.NoError(t, os.WriteFile(inPath, []byte("pdf"), 0o644))
	outDir := filepath.Join(tmpDir, "out")

	conv := &fakeFileConverter{output: "Results"}
	result := ConvertPaths(conv, []string{inPath}, types.BatchConfig{OutputDir: outDir}, types.ConvertOptions{}, &bytes.Buffer{})

	assert.Equal(t, 1, result.Converted)
	assert.FileExists(t, filepath.Join(outDir, "quarterly.results.md"))
}

// selectiveConverter returns different results per file path.
type selectiveConverter struct {
	outputs map[string]string
	errors  map[string]error
}

func (s *selectiveConverter) ConvertFile(path string, _ types.ConvertOptions) (*types.Result, error) {
	if err, ok := s.errors[path]; ok {
		return nil, err
	}
	if out, ok := s.outputs[path]; ok {
		return &types.Result{Markdown: out}, nil
	}
	return nil, errors.New("unexpected path: " + path)
}
