package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"car-scraper/models"
)

// DefaultFetchTimeout bounds the full-page download.
const DefaultFetchTimeout = 30 * time.Second

// PageFetcher downloads the HTML of a single page.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// HTTPFetcher fetches pages with a plain GET request.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates a fetcher with the given timeout and optional User-Agent.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	client := resty.New().SetTimeout(timeout)
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &HTTPFetcher{client: client}
}

// Fetch returns the response body. Transport errors and HTTP statuses >= 400
// are reported as models.ErrFetchFailure.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	res, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("httpfetch: GET %s: %w: %v", rawURL, models.ErrFetchFailure, err)
	}
	if res.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("httpfetch: HTTP %d for %s: %w", res.StatusCode(), rawURL, models.ErrFetchFailure)
	}
	return res.Body(), nil
}
