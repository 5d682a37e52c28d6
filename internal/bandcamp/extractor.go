package bandcamp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	hjson "github.com/hjson/hjson-go/v4"
)

// ErrPageStructure is returned when a page is missing one of the
// required embedded-data locations (the #pagedata element or the
// ld+json script). It marks the page as unusable; other pages of the
// same run are unaffected.
var ErrPageStructure = errors.New("required page structure not found")

// LooseDecoder parses a JavaScript object literal (unquoted keys,
// trailing commas and other non-strict syntax the page templating
// emits) and re-serializes it as strict JSON.
type LooseDecoder func(src string) ([]byte, error)

// DecodeLoose is the default LooseDecoder, backed by hjson.
func DecodeLoose(src string) ([]byte, error) {
	var v any
	if err := hjson.Unmarshal([]byte(src), &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Extractor locates the data blobs a Bandcamp page embeds in its markup
// and normalizes each of them to strict JSON.
//
// The blobs live in three places, extracted in this order:
//  1. The data-blob attribute of the #pagedata element
//  2. The single script of type application/ld+json
//  3. The data-tralbum attribute of any script carrying it
//
// Example usage:
//
//	ex := NewExtractor(DecodeLoose, logger)
//	fragments, err := ex.Fragments(doc)
//	if errors.Is(err, ErrPageStructure) {
//	    // not an album/track page
//	}
type Extractor struct {
	decode LooseDecoder
	logger *slog.Logger
}

// NewExtractor creates an Extractor. A nil decode falls back to
// DecodeLoose.
func NewExtractor(decode LooseDecoder, logger *slog.Logger) *Extractor {
	if decode == nil {
		decode = DecodeLoose
	}
	return &Extractor{decode: decode, logger: logger}
}

// Fragments returns the page's embedded data blobs as an ordered
// sequence of strict-JSON fragments.
//
// The #pagedata element and the ld+json script are required; their
// absence returns an error wrapping ErrPageStructure. Pages without any
// data-tralbum script are valid and simply contribute fewer fragments.
func (e *Extractor) Fragments(doc *goquery.Document) ([]json.RawMessage, error) {
	var raw []string

	blob, ok := doc.Find("#pagedata").Attr("data-blob")
	if !ok {
		return nil, fmt.Errorf("%w: missing #pagedata data-blob", ErrPageStructure)
	}
	raw = append(raw, blob)

	ld := doc.Find(`script[type="application/ld+json"]`)
	if ld.Length() == 0 {
		return nil, fmt.Errorf("%w: missing ld+json script", ErrPageStructure)
	}
	raw = append(raw, ld.First().Text())

	doc.Find("script[data-tralbum]").Each(func(_ int, s *goquery.Selection) {
		if tralbum, ok := s.Attr("data-tralbum"); ok {
			raw = append(raw, tralbum)
		}
	})

	e.logger.Debug("extracted embedded data", "fragments", len(raw))

	fragments := make([]json.RawMessage, 0, len(raw))
	for i, src := range raw {
		strict, err := e.decode(src)
		if err != nil {
			return nil, fmt.Errorf("decoding fragment %d: %w", i, err)
		}
		fragments = append(fragments, strict)
	}

	return fragments, nil
}
