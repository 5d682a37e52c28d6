package dto

import (
	"bytes"
	"encoding/json"
)

// TrackInfo is one entry of the merged page data's "trackinfo" array.
//
// Fields that Bandcamp leaves null on some pages (the streaming-format
// map, the track artist, the identifier) are pointers or nilable maps so
// the reconciler can tell "absent" from "empty".
type TrackInfo struct {
	Duration  float64           `json:"duration"`
	Number    *int              `json:"track_num"`
	Title     string            `json:"title"`
	Artist    *string           `json:"artist"`
	ID        *int64            `json:"track_id"`
	TitleLink *string           `json:"title_link"`
	File      map[string]string `json:"file"`
	HasLyrics json.RawMessage   `json:"has_lyrics"`
	Lyrics    *string           `json:"lyrics"`
}

// LyricsDisabled reports whether has_lyrics is explicitly false. Any
// other value, including absent or null, counts as "maybe".
func (t *TrackInfo) LyricsDisabled() bool {
	return string(bytes.TrimSpace(t.HasLyrics)) == "false"
}

// Current is the merged page data's "current" object, carrying the
// item-level album metadata.
type Current struct {
	Title         string  `json:"title"`
	ReleaseDate   *string `json:"release_date"`
	SellingBandID *int64  `json:"selling_band_id"`
}

// EmbedInfo is the merged page data's "embed_info" object. Its publish
// date is the last resort of the release-date fallback chain.
type EmbedInfo struct {
	ItemPublic *string `json:"item_public"`
}

// ItemSeller is one entry of the "item_sellers" map, keyed by band id.
type ItemSeller struct {
	Name string `json:"name"`
}
