// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/markitdown/internal/chunk"
	"github.com/pdiddy/markitdown/internal/convert"
	"github.com/pdiddy/markitdown/internal/httputil"
	"github.com/pdiddy/markitdown/pkg/types"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultUserAgent  = "markitdown/0.1"
	defaultMaxRetries = 5
	defaultOutDir     = "markdown"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", defaultTimeout)
	v.SetDefault("http.user_agent", defaultUserAgent)
	v.SetDefault("http.max_retries", defaultMaxRetries)
	v.SetDefault("container.image", convert.DefaultMarkitdownImage)
	v.SetDefault("batch.out_dir", defaultOutDir)
	v.SetDefault("chunk.tokens", chunk.DefaultTokenLimit)
	v.SetDefault("chunk.overlap", chunk.DefaultOverlap)
}

// configFrom resolves the effective configuration from flags, environment
// and config file, in viper's precedence order.
func configFrom(v *viper.Viper) (types.Config, error) {
	cfg := types.Config{
		Convert: types.ConvertOptions{
			PageSeparators:       v.GetBool("page_separators"),
			RemoveHeadersFooters: v.GetBool("remove_headers_footers"),
			NormalizeWhitespace:  v.GetBool("normalize_whitespace"),
			ValidatePDF:          v.GetBool("validate"),
		},
		HTTP: types.HTTPConfig{
			Timeout:    v.GetDuration("http.timeout"),
			UserAgent:  v.GetString("http.user_agent"),
			MaxRetries: v.GetInt("http.max_retries"),
		},
		Container: types.ContainerConfig{
			Enabled: v.GetBool("container.enabled"),
			Runtime: v.GetString("container.runtime"),
			Image:   v.GetString("container.image"),
		},
		Batch: types.BatchConfig{
			OutputDir: v.GetString("batch.out_dir"),
			Overwrite: v.GetBool("batch.overwrite"),
		},
		Chunk: types.ChunkConfig{
			TokenLimit: v.GetInt("chunk.tokens"),
			Overlap:    v.GetInt("chunk.overlap"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func loadConfig() (types.Config, error) {
	return configFrom(viper.GetViper())
}

// newRegistry builds the converter registry for cfg.
func newRegistry(cfg types.Config) (*convert.Registry, error) {
	return convert.NewDefaultRegistry(cfg, log)
}

// newFetcher returns the HTTP fetcher used for URL inputs.
func newFetcher(cfg types.HTTPConfig) *httputil.Fetcher {
	return &httputil.Fetcher{
		Client:     &http.Client{Timeout: cfg.Timeout},
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		Log:        log,
	}
}
