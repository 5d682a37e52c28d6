package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "bandcamp-dl/0.0.17"

// StatusError is returned when a request completes with a non-success
// HTTP status. Callers running multi-URL batches match on it to skip the
// failing URL and continue with the rest.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.StatusCode, e.URL)
}

// Client wraps HTTP operations with Bandcamp-specific configuration.
//
// Client provides:
//   - A fixed identifying User-Agent header on every request
//   - A single reusable connection pool shared across all fetches
//   - Parsed-document retrieval for page scraping
//   - Streaming retrieval for track assets
//
// Example usage:
//
//	client := NewClient(logger)
//
//	doc, err := client.Document(ctx, "https://artist.bandcamp.com/album/name")
//
//	body, length, err := client.Stream(ctx, mp3URL)
//	defer body.Close()
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new HTTP client configured for Bandcamp.
//
// The client uses a 60 second timeout and reuses its underlying
// connection pool for every request of a run.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		c.logger.Debug("request failed", "url", url, "status", resp.StatusCode)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	return resp, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns a *StatusError if the response status is not 200 OK.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// Document performs a GET request and parses the response as HTML.
//
// This is the primary entry point for page scraping:
//
//	doc, err := client.Document(ctx, "https://artist.bandcamp.com/music")
//	grid := doc.Find("#music-grid")
func (c *Client) Document(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return doc, nil
}

// Stream performs a GET request and returns the unread response body
// together with the declared content length (-1 when unknown).
//
// The caller owns the returned body and must close it. Use this for
// track assets, which are streamed to disk in chunks rather than read
// into memory.
func (c *Client) Stream(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.ContentLength, nil
}
