// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the markitdown CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// log carries diagnostics to stderr. Converted Markdown goes to stdout.
var log = newLogger()

// rootCmd converts a single input to Markdown.
var rootCmd = &cobra.Command{
	Use:   "markitdown [file|url|-]",
	Short: "Convert documents to Markdown",
	Long: `markitdown converts PDF, HTML and text documents to Markdown. With no
argument, or with "-", the document is read from stdin.

PDF text is extracted page by page. With --page-separators a Markdown
horizontal rule ("---" on its own line) is written between consecutive
pages. Formats without a native converter (DOCX, XLSX, PPTX, ...) can be
handled by the markitdown container image with --container.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("verbose") {
			log.SetLevel(logrus.DebugLevel)
		}
		if f := viper.ConfigFileUsed(); f != "" {
			log.WithField("file", f).Debug("using config file")
		}
		return nil
	},
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./markitdown.yaml or ~/.config/markitdown/markitdown.yaml)")
	pf.BoolP("verbose", "v", false, "log diagnostics to stderr")
	pf.BoolP("page-separators", "p", false, "insert a horizontal rule between PDF pages")
	pf.Bool("remove-headers-footers", false, "drop sentences repeated across PDF pages")
	pf.Bool("normalize-whitespace", false, "collapse whitespace within each PDF page")
	pf.Bool("validate", false, "validate PDF structure before extracting text")
	pf.Bool("container", false, "convert unsupported formats with the markitdown container")
	pf.String("container-image", "", "markitdown container image (default markitdown:latest)")
	pf.String("container-runtime", "", "container runtime: docker or podman (default: auto-detect)")

	rootCmd.Flags().StringP("output", "o", "", "write Markdown to this file instead of stdout")
	rootCmd.Flags().StringP("extension", "x", "", "file extension hint, e.g. pdf (useful for stdin)")
	rootCmd.Flags().StringP("mime-type", "m", "", "MIME type hint, e.g. application/pdf")

	bindFlags(rootCmd, map[string]string{
		"verbose":                "verbose",
		"page_separators":        "page-separators",
		"remove_headers_footers": "remove-headers-footers",
		"normalize_whitespace":   "normalize-whitespace",
		"validate":               "validate",
		"container.enabled":      "container",
		"container.image":        "container-image",
		"container.runtime":      "container-runtime",
	})
}

// bindFlags binds viper keys to cmd's flags (local or persistent).
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			f = cmd.PersistentFlags().Lookup(flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("markitdown")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "markitdown"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("MARKITDOWN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		log.WithError(err).Warn("reading config file")
	}
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
