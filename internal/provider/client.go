// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider contains adapters for the external metadata services
// queried during resolution: Unpaywall for open-access metadata, and
// Crossref or OpenAlex as a fallback source of publication year.
//
// Each adapter issues exactly one HTTP request per call, bounded by the
// configured timeout, and reports every failure as *UnavailableError.
// Adapters never retry.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/paper-metadata/internal/httputil"
	"github.com/pdiddy/paper-metadata/pkg/types"
)

// DefaultTimeout bounds a provider call when the configuration leaves the
// timeout unset.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is sent when the configuration leaves it unset.
const DefaultUserAgent = "paper-metadata/0.1"

// Option configures an adapter.
type Option func(*client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.http = hc
	}
}

// WithLimiter replaces the limiter derived from ProviderConfig.RateLimit.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *client) {
		c.limiter = l
	}
}

// client holds the immutable transport settings shared by all adapters.
type client struct {
	name      string
	http      *http.Client
	limiter   *rate.Limiter
	baseURL   string
	timeout   time.Duration
	userAgent string
}

func newClient(name, defaultBase string, cfg types.ProviderConfig, opts []Option) *client {
	c := &client{
		name:      name,
		http:      http.DefaultClient,
		baseURL:   cfg.BaseURL,
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBase
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs one bounded GET and wraps any failure as *UnavailableError.
func (c *client) get(ctx context.Context, reqURL string, header http.Header, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if header == nil {
		header = http.Header{}
	}
	if header.Get("User-Agent") == "" {
		header.Set("User-Agent", c.userAgent)
	}

	err := httputil.GetJSON(ctx, c.http, c.limiter, reqURL, header, v)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s: %w", c.timeout, err)
	}
	return &UnavailableError{Provider: c.name, Err: err}
}

// escapeDOI path-escapes each segment of a DOI while keeping the slashes
// that separate prefix and suffix.
func escapeDOI(doi string) string {
	segs := strings.Split(doi, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
