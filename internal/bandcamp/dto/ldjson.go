package dto

import (
	"encoding/json"
	"strconv"
)

// AdditionalProperty is a schema.org name/value pair as used by the
// page's ld+json block. Values arrive as JSON numbers or strings
// depending on the page generation, so Int64 normalizes them.
type AdditionalProperty struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Int64 returns the property value coerced to an integer. The second
// return is false when the value is absent or not numeric.
func (p AdditionalProperty) Int64() (int64, bool) {
	switch v := p.Value.(type) {
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	case int64:
		return v, true
	default:
		return 0, false
	}
}

// FindProperty returns the first property with the given name.
func FindProperty(props []AdditionalProperty, name string) (AdditionalProperty, bool) {
	for _, p := range props {
		if p.Name == name {
			return p, true
		}
	}
	return AdditionalProperty{}, false
}

// ListItem is one element of the ld+json "track.itemListElement" array.
// Item.ID is the full track URL, the join key against reconciled tracks.
type ListItem struct {
	Position int `json:"position"`
	Item     struct {
		ID                 string               `json:"@id"`
		AdditionalProperty []AdditionalProperty `json:"additionalProperty"`
	} `json:"item"`
}

// TrackList is the ld+json "track" object.
type TrackList struct {
	ItemListElement []ListItem `json:"itemListElement"`
}

// AlbumRelease is one element of the ld+json "albumRelease" array, whose
// additional properties carry the album's item_id on MusicAlbum pages.
type AlbumRelease struct {
	AdditionalProperty []AdditionalProperty `json:"additionalProperty"`
}
