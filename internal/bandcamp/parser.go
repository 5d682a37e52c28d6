package bandcamp

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"bandcamp-dl/internal/model"
)

// PageFetcher retrieves a URL and returns the parsed HTML document. It
// is the only transport capability this package needs; the concrete
// implementation lives in internal/http.
type PageFetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// Parser extracts album information from Bandcamp album and track pages.
//
// A page embeds its metadata redundantly across several data blobs; the
// Parser runs the full pipeline over them: fetch the page, extract and
// normalize the embedded fragments, merge them, and reconcile the
// result into a model.Album.
//
// Example usage:
//
//	parser := NewParser(client, logger)
//
//	album, err := parser.ParseAlbumPage(ctx, "https://artist.bandcamp.com/album/name", opts)
//	if err != nil {
//	    return err
//	}
//	if album == nil {
//	    // URL had no scheme, nothing to do
//	}
type Parser struct {
	fetcher    PageFetcher
	extractor  *Extractor
	reconciler *Reconciler
	logger     *slog.Logger
}

// NewParser creates a Parser using the default lenient fragment decoder.
func NewParser(fetcher PageFetcher, logger *slog.Logger) *Parser {
	return &Parser{
		fetcher:    fetcher,
		extractor:  NewExtractor(nil, logger),
		reconciler: NewReconciler(fetcher, logger),
		logger:     logger,
	}
}

// ParseAlbumPage fetches a Bandcamp album or track page and reconciles
// it into an Album.
//
// A URL without a scheme yields (nil, nil): there is no album there,
// but the run is not at fault. Transport failures, missing page
// structure (ErrPageStructure) and invalid metadata (ErrMetadata) are
// returned as errors scoped to this page.
func (p *Parser) ParseAlbumPage(ctx context.Context, pageURL string, opts ReconcileOptions) (*model.Album, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" {
		p.logger.Debug("skipping URL without scheme", "url", pageURL)
		return nil, nil
	}

	doc, err := p.fetcher.Document(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	fragments, err := p.extractor.Fragments(doc)
	if err != nil {
		return nil, err
	}

	merged, err := Merge(fragments)
	if err != nil {
		return nil, err
	}

	return p.reconciler.Reconcile(ctx, pageURL, merged, doc, opts)
}

// GenerateAlbumURL builds an album or track page URL from an artist
// slug and an item slug. pageType is "album" or "track".
func GenerateAlbumURL(artist, slug, pageType string) string {
	return fmt.Sprintf("http://%s.bandcamp.com/%s/%s", artist, pageType, slug)
}
