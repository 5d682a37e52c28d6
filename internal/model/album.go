package model

// Album represents a reconciled Bandcamp album or single-track page.
//
// An Album is constructed once per page by the metadata reconciler and is
// not mutated afterwards; the download manager only reads from it. The
// Tracks slice is owned exclusively by the Album and is ordered by the
// reconciled track numbers.
type Album struct {
	// Title is the album title. For single-track pages without album
	// metadata this is the first track's title.
	Title string

	// Artist is the album artist name.
	Artist string

	// Label is the selling label's name, or empty if the page carries
	// no seller entry.
	Label string

	// Date is the release year as a 4-digit string.
	Date string

	// URL is the page URL the album was parsed from.
	URL string

	// Genres is the page's keyword list joined with "; ", or empty when
	// genres were not requested.
	Genres string

	// ArtURL is the album cover URL at the requested quality, or empty
	// when art was not requested or not present on the page.
	ArtURL string

	// ID is the platform album identifier, or nil when the page type
	// carries none.
	ID *int64

	// Tracks are the downloadable tracks in reconciled order. Tracks
	// without a resolvable download URL are already filtered out.
	Tracks []*Track

	// AllTracksHaveURL is true only if every track discovered on the
	// page, before filtering, had a download URL. It gates "full album"
	// downloads and the incomplete-track-list confirmation prompt.
	AllTracksHaveURL bool
}

// HasArt reports whether cover art is available for download.
func (a *Album) HasArt() bool {
	return a.ArtURL != ""
}
