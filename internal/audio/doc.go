// Package audio embeds ID3 metadata into downloaded MP3 files.
//
// The Tagger writes the reconciled per-track frames (title, artist,
// album, year, track number, page URL, optional grouping, lyrics,
// genres and cover art) into the track's temp file, then atomically
// renames it to the final name. Files on disk therefore only ever
// appear under their final name once fully tagged.
package audio
