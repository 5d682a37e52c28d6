// Package http provides the HTTP client used for all Bandcamp requests.
//
// The Client in this package handles:
//   - The fixed identifying User-Agent header
//   - One reusable connection pool per run
//   - HTML document retrieval (goquery) for page scraping
//   - Streaming retrieval for track assets
//
// Non-success statuses surface as *StatusError so a multi-URL run can
// skip the failing URL and continue:
//
//	doc, err := client.Document(ctx, url)
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) {
//	    log.Warn("page unavailable", "status", statusErr.StatusCode)
//	}
package http
