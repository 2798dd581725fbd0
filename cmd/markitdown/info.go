// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/markitdown/internal/convert"
	"github.com/pdiddy/markitdown/internal/pdf"
	"github.com/pdiddy/markitdown/pkg/types"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show the detected type of a document, and its page count for PDFs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printInfo(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := convert.DetectStreamInfo(f, types.StreamInfo{LocalPath: path})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "source:    %s\n", path)
	fmt.Fprintf(w, "mime_type: %s\n", info.MIMEType)
	fmt.Fprintf(w, "extension: %s\n", info.Extension)

	if info.BaseMIMEType() != "application/pdf" && info.Extension != ".pdf" {
		return nil
	}
	pages, err := pdf.PageCount(path, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "pages:     %d\n", pages)
	return nil
}
