package bandcamp

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// albumArtURL derives the cover art URL from the page's #tralbumArt
// anchor. The linked image ends in a numeric size code before the
// extension (e.g. "..._10.jpg"); the requested quality code is
// substituted in its place. Returns "" when the page has no art.
func albumArtURL(doc *goquery.Document, quality int) string {
	href, ok := doc.Find("#tralbumArt a").First().Attr("href")
	if !ok || len(href) < 10 {
		return ""
	}
	return fmt.Sprintf("%s%d%s", href[:len(href)-6], quality, href[len(href)-4:])
}
