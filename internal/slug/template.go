package slug

import "strings"

// templateTokens are the %{token} placeholders recognized in path
// templates, in substitution order. The trackartist token reads the
// per-track artist while artist reads the album artist.
var templateTokens = []string{
	"trackartist", "artist", "album", "title",
	"date", "label", "track", "album_id", "track_id",
}

// ExpandTemplate substitutes %{token} placeholders into a path
// template from the given metadata values.
//
// meta is keyed by metadata field name: the trackartist token reads
// meta["artist"] and the artist token reads meta["albumartist"]; every
// other token reads the key of the same name. Values are slugified with
// opts unless noSlugify is set.
//
//	ExpandTemplate("%{artist}/%{album}/%{track} - %{title}", meta, false, opts)
func ExpandTemplate(template string, meta map[string]string, noSlugify bool, opts Options) string {
	for _, token := range templateTokens {
		key := token
		switch token {
		case "trackartist":
			key = "artist"
		case "artist":
			key = "albumartist"
		}

		value := meta[key]
		if !noSlugify {
			value = Slugify(value, opts)
		}
		template = strings.ReplaceAll(template, "%{"+token+"}", value)
	}
	return template
}
