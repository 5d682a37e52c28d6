package model

// Track represents a single track within an album.
//
// Track holds the reconciled metadata for one song:
//   - Title, duration and track number for ID3 tagging
//   - The MP3 download URL selected from the page's streaming-format map
//   - Lyrics (if present on the page or fetched from the track page)
//   - The platform track identifier, when it could be resolved
//
// PartialURL and ArtistURL are set during reconciliation; their
// concatenation (FullURL) is the join key used to match a track against
// the page's position and identifier tables.
type Track struct {
	// Title is the track title.
	Title string

	// Duration is the track length in seconds.
	Duration float64

	// Number is the track number (1-indexed), or 0 when the page
	// carries none, as on single-track pages. It may be renumbered
	// during reconciliation when the page carries duplicate numbers.
	Number int

	// ID is the platform track identifier, or nil if none could be
	// resolved for this track.
	ID *int64

	// PartialURL is the path component of the track page URL,
	// e.g. "/track/my-song".
	PartialURL string

	// ArtistURL is the artist's base URL, applied to every track of an
	// album after construction.
	ArtistURL string

	// DownloadURL is the URL of the streamable MP3 asset. Empty means
	// the track has no resolvable audio and is excluded from the final
	// track list.
	DownloadURL string

	// Artist is the track artist. Empty means the album artist applies.
	Artist string

	// Lyrics contains the song lyrics, if available.
	Lyrics string
}

// FullURL returns the absolute track page URL, the concatenation of the
// artist base URL and the track's partial URL.
func (t *Track) FullURL() string {
	return t.ArtistURL + t.PartialURL
}

// HasDownloadURL reports whether the track has a resolvable audio asset.
func (t *Track) HasDownloadURL() bool {
	return t.DownloadURL != ""
}
