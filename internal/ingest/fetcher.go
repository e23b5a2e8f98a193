package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// FetcherConfig holds configuration for the remote CSV fetcher.
type FetcherConfig struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second
}

// DefaultFetcherConfig returns recommended defaults.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Timeout:      30 * time.Second,
		MaxRetries:   3,
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		RateLimit:    5.0,
	}
}

// Fetcher downloads fixture files over HTTP with retries and a client
// side rate limit, so scheduled re-analysis cannot hammer a source.
type Fetcher struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewFetcher creates a rate-limited retrying fetcher.
func NewFetcher(cfg FetcherConfig, logger *logrus.Logger) *Fetcher {
	if logger == nil {
		logger = logrus.New()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 1
	}

	return &Fetcher{
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(limit), 1),
		logger:  logger,
	}
}

// Fetch downloads the content at url, honoring the rate limit and the
// context deadline.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	f.logger.WithFields(logrus.Fields{"url": url, "bytes": len(body)}).Debug("Fetched dataset")
	return body, nil
}
