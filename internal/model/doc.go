// Package model defines the core data structures shared by the page
// reconciler and the download pipeline.
//
// # Album
//
// Album is the canonical result of parsing one Bandcamp page. It is
// built once by the reconciler and consumed read-only afterwards:
//
//	album, err := parser.ParseAlbumPage(ctx, url, opts)
//	fmt.Println(album.Title, album.Date, len(album.Tracks))
//
// # Track
//
// Track represents a single downloadable song. The join key against the
// page's position and identifier tables is the full track URL:
//
//	track.FullURL() // artist URL + partial URL
//
// Tracks whose streaming-format map yielded no MP3 URL never appear in
// Album.Tracks; Album.AllTracksHaveURL records whether any were dropped.
package model
