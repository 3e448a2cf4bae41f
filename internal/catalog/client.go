// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

// Package catalog searches the Jikan anime catalog and picks the record that
// best matches a requested title.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/config"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/metrics"
)

const (
	maxErrorBodySize = 64 * 1024
	maxBodySize      = 8 << 20
)

// Searcher runs a free-text anime search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Anime, error)
}

// Client is the HTTP client for the Jikan v4 API.
type Client struct {
	baseURL        string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg *config.CatalogConfig) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		client:         &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
	}
}

// Search returns the catalog's ranked candidates for query, in API order.
func (c *Client) Search(ctx context.Context, query string) ([]Anime, error) {
	reqURL := c.baseURL + "/anime?" + url.Values{"q": {query}}.Encode()

	start := time.Now()
	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		result := "transport_error"
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			result = "rate_limited"
		}
		metrics.RecordCatalogRequest(result, time.Since(start))
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logging.Ctx(ctx).Debug().Err(cerr).Msg("Failed to close catalog response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordCatalogRequest("http_error", time.Since(start))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(readBodyForError(resp.Body))}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		metrics.RecordCatalogRequest("transport_error", time.Since(start))
		return nil, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}

	results, err := decodeSearch(body)
	if err != nil {
		metrics.RecordCatalogRequest("decode_error", time.Since(start))
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	metrics.RecordCatalogRequest("success", time.Since(start))
	return results, nil
}

// doRequestWithRateLimit waits for the client-side limiter, then retries
// HTTP 429 responses with exponential backoff, honoring Retry-After.
func (c *Client) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransport, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransport, err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		body := readBodyForError(resp.Body)
		_ = resp.Body.Close()

		if attempt >= c.maxRetries {
			return nil, &StatusError{
				StatusCode: http.StatusTooManyRequests,
				Body:       fmt.Sprintf("rate limit exceeded after %d retries: %s", c.maxRetries, body),
			}
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, perr := strconv.Atoi(retryAfter); perr == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
		}

		metrics.CatalogRetries.Inc()
		logging.Ctx(ctx).Debug().Int("attempt", attempt+1).Dur("delay", delay).Msg("Catalog rate limited, retrying")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
		}
	}
}

// readBodyForError reads at most 64KB of an error body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
