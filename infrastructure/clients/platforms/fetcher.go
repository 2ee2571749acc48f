package platforms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher is the shared bounded HTTP client behind every platform handler.
// Every request carries the configured timeout and every body is capped at
// maxBody bytes; exceeding either is a fetch failure, not an application
// error. The underlying client is long-lived and must be Closed on shutdown.
type Fetcher struct {
	client    *http.Client
	maxBody   int64
	userAgent string
}

func NewFetcher(timeout time.Duration, maxBody int64, userAgent string) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		maxBody:   maxBody,
		userAgent: userAgent,
	}
}

// Get fetches rawURL and returns the body. Non-2xx statuses and oversized
// bodies are errors; any partially read response is discarded.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// Read one byte past the cap so an exactly-at-limit body still passes.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("response exceeds %d bytes", f.maxBody)
	}
	return body, nil
}

// ResolveRedirects issues a HEAD request following redirects and returns the
// final URL, for providers whose share links bounce through a shortener.
func (f *Fetcher) ResolveRedirects(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Request.URL.String(), nil
}

// Close releases the pooled connections. Handlers share one Fetcher, so this
// is called once at process shutdown.
func (f *Fetcher) Close() {
	f.client.CloseIdleConnections()
}
