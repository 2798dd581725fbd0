// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/markitdown/internal/convert"
	"github.com/pdiddy/markitdown/pkg/types"
)

// input names what the root command converts.
type input struct {
	// Arg is a file path, an http(s) or file URL, or "-" for stdin.
	Arg       string
	Extension string
	MIMEType  string
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	in := input{Arg: "-"}
	if len(args) == 1 {
		in.Arg = args[0]
	}
	in.Extension, _ = cmd.Flags().GetString("extension")
	in.MIMEType, _ = cmd.Flags().GetString("mime-type")

	res, err := convertInput(cmd.Context(), reg, cfg, in, cmd.InOrStdin())
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	return writeOutput(output, res.Markdown, cmd.OutOrStdout())
}

// convertInput dispatches in to the registry as a URL, a local file or
// stdin.
func convertInput(ctx context.Context, reg *convert.Registry, cfg types.Config, in input, stdin io.Reader) (*types.Result, error) {
	if ext := in.Extension; ext != "" && !strings.HasPrefix(ext, ".") {
		in.Extension = "." + ext
	}
	info := types.StreamInfo{Extension: in.Extension, MIMEType: in.MIMEType}

	switch {
	case in.Arg == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return reg.ConvertStream(bytes.NewReader(data), info, cfg.Convert)

	case strings.HasPrefix(in.Arg, "http://"), strings.HasPrefix(in.Arg, "https://"):
		return reg.ConvertURL(ctx, newFetcher(cfg.HTTP), in.Arg, cfg.Convert)

	case strings.HasPrefix(in.Arg, "file://"):
		u, err := url.Parse(in.Arg)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", in.Arg, err)
		}
		in.Arg = u.Path
	}

	f, err := os.Open(in.Arg)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", in.Arg, err)
	}
	defer f.Close()

	info.LocalPath = in.Arg
	info.Filename = filepath.Base(in.Arg)
	return reg.ConvertStream(f, info, cfg.Convert)
}

// writeOutput writes markdown to path, or to stdout when path is empty.
// It is only called after a conversion has fully succeeded.
func writeOutput(path, markdown string, stdout io.Writer) error {
	if path == "" {
		_, err := io.WriteString(stdout, markdown)
		return err
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
