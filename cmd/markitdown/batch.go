// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/markitdown/internal/convert"
)

var batchCmd = &cobra.Command{
	Use:   "batch [files or directories...]",
	Short: "Convert many documents into a directory of Markdown files",
	Long: `Batch converts each input to <name>.md in the output directory, with
YAML frontmatter recording the source, conversion time and whether page
separators were used. Directories are searched (non-recursively) for PDF,
HTML and text files. Existing outputs are skipped unless --overwrite is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("out-dir", "", "directory for Markdown output (default \"markdown\")")
	batchCmd.Flags().Bool("overwrite", false, "re-convert inputs whose output already exists")

	bindFlags(batchCmd, map[string]string{
		"batch.out_dir":   "out-dir",
		"batch.overwrite": "overwrite",
	})

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	paths, err := expandInputs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no convertible files found in %v", args)
	}

	result := convert.ConvertPaths(reg, paths, cfg.Batch, cfg.Convert, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}

// batchExtensions are picked up when a directory is given to batch.
var batchExtensions = []string{".pdf", ".html", ".htm", ".txt", ".md"}

// expandInputs replaces each directory in args with the convertible files
// it contains, sorted by name. Files are kept as given.
func expandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", arg, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if slices.Contains(batchExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	return paths, nil
}
