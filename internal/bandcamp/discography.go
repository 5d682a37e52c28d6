package bandcamp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sort"

	"github.com/PuerkitoBio/goquery"
)

// Discography lists the album and track page URLs of an artist's
// /music page.
//
// The page exposes its items two ways, and either may be incomplete on
// its own: a data-client-items JSON attribute on the #music-grid
// element, and plain anchors inside the grid's list items. Both are
// scanned and the results unioned.
//
// Example usage:
//
//	disco := NewDiscography(client, logger)
//	urls := disco.AlbumURLs(ctx, "someartist")
//	for _, u := range urls {
//	    fmt.Println(u) // e.g. "https://someartist.bandcamp.com/album/x"
//	}
type Discography struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

// NewDiscography creates a Discography enumerator.
func NewDiscography(fetcher PageFetcher, logger *slog.Logger) *Discography {
	return &Discography{fetcher: fetcher, logger: logger}
}

// AlbumURLs returns the unique album/track URLs of the artist's music
// page, resolved against the page URL and sorted.
//
// Failures are not fatal to the caller: a network error or a page
// without a #music-grid element yields an empty result and a log entry.
func (d *Discography) AlbumURLs(ctx context.Context, artist string) []string {
	musicURL := fmt.Sprintf("https://%s.bandcamp.com/music", artist)
	d.logger.Info("scraping discography", "url", musicURL)

	doc, err := d.fetcher.Document(ctx, musicURL)
	if err != nil {
		d.logger.Error("could not fetch artist page", "url", musicURL, "error", err)
		return nil
	}

	grid := doc.Find("#music-grid")
	if grid.Length() == 0 {
		d.logger.Warn("no music grid on page, no albums found", "url", musicURL)
		return nil
	}

	base, err := url.Parse(musicURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	add := func(ref string) {
		u, err := url.Parse(ref)
		if err != nil {
			return
		}
		seen[base.ResolveReference(u).String()] = struct{}{}
	}

	if items, ok := grid.Attr("data-client-items"); ok {
		d.logger.Debug("parsing data-client-items for album URLs")
		var entries []struct {
			PageURL string `json:"page_url"`
		}
		if err := json.Unmarshal([]byte(items), &entries); err != nil {
			d.logger.Error("failed to parse data-client-items", "error", err)
		} else {
			for _, e := range entries {
				if e.PageURL != "" {
					add(e.PageURL)
				}
			}
		}
	}

	grid.Find("li.music-grid-item a").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && href != "" {
			add(href)
		}
	})

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	d.logger.Info("discography scraped", "unique_urls", len(urls))
	return urls
}
