// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil downloads remote documents for conversion.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// maxBodySize caps a downloaded document at 512 MiB.
const maxBodySize = 512 << 20

// Response is a fully read HTTP response body.
type Response struct {
	// URL is the final URL after redirects.
	URL string

	// ContentType is the Content-Type header, possibly with parameters.
	ContentType string

	Body []byte
}

// Fetcher downloads documents over HTTP, retrying on rate limiting.
type Fetcher struct {
	Client     *http.Client
	UserAgent  string
	MaxRetries int // 0 means the default (5)
	Log        logrus.FieldLogger
}

// Fetch GETs rawURL and returns the whole body. Responses outside 2xx are
// errors. Cancelling ctx aborts the request and any backoff wait.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.doWithRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("fetching %s: body exceeds %d bytes", rawURL, maxBodySize)
	}

	return &Response{
		URL:         resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// doWithRetry executes req and retries on HTTP 429 with exponential
// backoff: RetryBaseDelay, then doubling each attempt. After exhausting
// retries the last 429 response is returned so the caller can inspect it.
func (f *Fetcher) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	maxRetries := f.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		if f.Log != nil {
			f.Log.WithFields(logrus.Fields{
				"url":     req.URL.String(),
				"attempt": attempt + 1,
				"backoff": backoff,
			}).Warn("rate limited, retrying")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
