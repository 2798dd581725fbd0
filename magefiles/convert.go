//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert batch-converts every document in dir into dir/markdown with page
// separators, using the freshly built binary.
func Convert(dir string) error {
	mg.Deps(Build)
	out := filepath.Join(dir, "markdown")
	bin := filepath.Join(binDir, binName)
	if err := sh.RunV(bin, "batch", "--page-separators", "--out-dir", out, dir); err != nil {
		return fmt.Errorf("converting %s: %w", dir, err)
	}
	return nil
}
