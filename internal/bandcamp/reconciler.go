package bandcamp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"bandcamp-dl/internal/bandcamp/dto"
	"bandcamp-dl/internal/model"
)

// ErrMetadata is returned when a page's merged data is missing required
// fields or carries an unparseable release date. Like ErrPageStructure
// it is fatal for the page, not for the run.
var ErrMetadata = errors.New("page metadata invalid")

// Release dates arrive as e.g. "14 Feb 2020 00:00:00 GMT", with the day
// sometimes unpadded.
var releaseDateLayouts = []string{
	"02 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 MST",
}

// ReconcileOptions selects the optional enrichment steps performed
// while building an Album.
type ReconcileOptions struct {
	// IncludeArt derives the cover art URL from the page.
	IncludeArt bool

	// CoverQuality is the art quality code substituted into the cover
	// URL: 0 is source, 10 the album page size, 16 the embed size.
	CoverQuality int

	// FetchLyrics issues a secondary page fetch per track to pull the
	// lyrics text. Failures degrade to empty lyrics.
	FetchLyrics bool

	// IncludeGenres joins the page's keyword list into Album.Genres.
	IncludeGenres bool
}

// Merge combines the ordered fragments of a page into one mapping by
// shallow key overwrite: a top-level key present in a later fragment
// replaces the same key of an earlier one.
func Merge(fragments []json.RawMessage) (map[string]json.RawMessage, error) {
	merged := make(map[string]json.RawMessage)
	for i, fragment := range fragments {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(fragment, &m); err != nil {
			return nil, fmt.Errorf("merging fragment %d: %w", i, err)
		}
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged, nil
}

// Reconciler turns a page's merged data into a canonical model.Album,
// resolving the fallback chains and identifier tables the page spreads
// across its fragments.
//
// The fetcher is only used for the optional per-track lyrics fetch.
type Reconciler struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(fetcher PageFetcher, logger *slog.Logger) *Reconciler {
	return &Reconciler{fetcher: fetcher, logger: logger}
}

// Reconcile builds the Album for one page.
//
// pageURL is the URL the page was requested at and becomes Album.URL;
// the artist base URL is derived from the page's own canonical "url"
// key. doc is the parsed page, used for cover art derivation.
//
// Tracks whose streaming-format map yields no MP3 URL are dropped from
// the result; Album.AllTracksHaveURL reflects the pre-filter set.
func (r *Reconciler) Reconcile(ctx context.Context, pageURL string, merged map[string]json.RawMessage, doc *goquery.Document, opts ReconcileOptions) (*model.Album, error) {
	rawInfo, ok := merged["trackinfo"]
	if !ok {
		return nil, fmt.Errorf("%w: missing trackinfo", ErrMetadata)
	}
	var infos []dto.TrackInfo
	if err := json.Unmarshal(rawInfo, &infos); err != nil {
		return nil, fmt.Errorf("%w: trackinfo: %v", ErrMetadata, err)
	}

	tracks := make([]*model.Track, 0, len(infos))
	for i := range infos {
		tracks = append(tracks, r.buildTrack(&infos[i]))
	}

	var canonicalURL string
	if raw, ok := merged["url"]; ok {
		_ = json.Unmarshal(raw, &canonicalURL)
	}
	artistURL := artistBaseURL(canonicalURL)
	for _, t := range tracks {
		t.ArtistURL = artistURL
	}

	var trackList dto.TrackList
	if raw, ok := merged["track"]; ok {
		_ = json.Unmarshal(raw, &trackList)
	}

	trackIDs := make(map[string]int64)
	for _, item := range trackList.ItemListElement {
		if prop, ok := dto.FindProperty(item.Item.AdditionalProperty, "track_id"); ok {
			if id, ok := prop.Int64(); ok {
				trackIDs[item.Item.ID] = id
			}
		}
	}

	r.renumberDuplicates(tracks, trackList)

	var current dto.Current
	if raw, ok := merged["current"]; ok {
		_ = json.Unmarshal(raw, &current)
	}

	year, err := r.releaseYear(merged, current)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if title == "" && len(infos) > 0 {
		title = infos[0].Title
	}

	var artist string
	if raw, ok := merged["artist"]; ok {
		_ = json.Unmarshal(raw, &artist)
	}

	albumID, recordingTrackID := r.resolveAlbumID(merged)

	for _, t := range tracks {
		if recordingTrackID != nil {
			id := *recordingTrackID
			t.ID = &id
		} else if t.ID == nil {
			if id, ok := trackIDs[t.FullURL()]; ok {
				id := id
				t.ID = &id
			}
		}

		if opts.FetchLyrics {
			t.Lyrics = r.trackLyrics(ctx, t.FullURL())
		}
	}

	allHaveURL := true
	kept := make([]*model.Track, 0, len(tracks))
	for _, t := range tracks {
		if t.HasDownloadURL() {
			kept = append(kept, t)
		} else {
			allHaveURL = false
		}
	}

	album := &model.Album{
		Title:            title,
		Artist:           artist,
		Label:            r.sellerName(merged, current),
		Date:             year,
		URL:              pageURL,
		ID:               albumID,
		Tracks:           kept,
		AllTracksHaveURL: allHaveURL,
	}

	if opts.IncludeGenres {
		album.Genres = pageGenres(merged)
	}
	if opts.IncludeArt {
		album.ArtURL = albumArtURL(doc, opts.CoverQuality)
	}

	r.logger.Debug("album reconciled", "title", album.Title, "tracks", len(album.Tracks), "complete", album.AllTracksHaveURL)
	return album, nil
}

// buildTrack constructs a Track from one raw trackinfo entry.
func (r *Reconciler) buildTrack(info *dto.TrackInfo) *model.Track {
	t := &model.Track{
		Title:    info.Title,
		Duration: info.Duration,
	}
	if info.Number != nil {
		t.Number = *info.Number
	}
	if info.ID != nil {
		id := *info.ID
		t.ID = &id
	}
	if info.Artist != nil {
		t.Artist = *info.Artist
	}
	if info.TitleLink != nil {
		t.PartialURL = *info.TitleLink
	}

	if u, ok := info.File["mp3-128"]; ok && u != "" {
		if !strings.HasPrefix(u, "http") {
			u = "http:" + u
		}
		t.DownloadURL = u
	}

	if !info.LyricsDisabled() && info.Lyrics != nil {
		// Lyrics arrive double-escaped on some pages, carrying literal
		// \r\n sequences after JSON decoding.
		lyrics := strings.ReplaceAll(*info.Lyrics, `\r\n`, "\n")
		t.Lyrics = strings.ReplaceAll(lyrics, "\r\n", "\n")
	}

	return t
}

// renumberDuplicates repairs track numbering when two tracks share a
// number, using the position table of the page's itemListElement array.
// Tracks without a position entry fall back to their 1-based index in
// the original order.
func (r *Reconciler) renumberDuplicates(tracks []*model.Track, trackList dto.TrackList) {
	seen := make(map[int]bool, len(tracks))
	duplicate := false
	for _, t := range tracks {
		if seen[t.Number] {
			duplicate = true
			break
		}
		seen[t.Number] = true
	}
	if !duplicate {
		return
	}

	r.logger.Debug("duplicate track numbers found, renumbering from list positions")
	positions := make(map[string]int)
	for _, item := range trackList.ItemListElement {
		positions[item.Item.ID] = item.Position
	}

	for i, t := range tracks {
		if pos, ok := positions[t.FullURL()]; ok {
			t.Number = pos
		} else {
			r.logger.Debug("no position entry for track", "url", t.FullURL())
			t.Number = i + 1
		}
	}
}

// releaseYear resolves the release date fallback chain and reduces it
// to the 4-digit year.
func (r *Reconciler) releaseYear(merged map[string]json.RawMessage, current dto.Current) (string, error) {
	var date string
	if raw, ok := merged["album_release_date"]; ok {
		var s *string
		_ = json.Unmarshal(raw, &s)
		if s != nil {
			date = *s
		}
	}
	if date == "" && current.ReleaseDate != nil {
		date = *current.ReleaseDate
	}
	if date == "" {
		var embed dto.EmbedInfo
		if raw, ok := merged["embed_info"]; ok {
			_ = json.Unmarshal(raw, &embed)
		}
		if embed.ItemPublic != nil {
			date = *embed.ItemPublic
		}
	}

	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("2006"), nil
		}
	}
	return "", fmt.Errorf("%w: unparseable release date %q", ErrMetadata, date)
}

// sellerName looks up the selling band in the item_sellers map. Absence
// at any step means no label, not an error.
func (r *Reconciler) sellerName(merged map[string]json.RawMessage, current dto.Current) string {
	if current.SellingBandID == nil {
		return ""
	}
	var sellers map[string]dto.ItemSeller
	if raw, ok := merged["item_sellers"]; ok {
		_ = json.Unmarshal(raw, &sellers)
	}
	return sellers[strconv.FormatInt(*current.SellingBandID, 10)].Name
}

// resolveAlbumID derives the album identifier from the page's
// structured type. On single-track (MusicRecording) pages the same
// value also overrides every track's identifier, so it is returned
// separately.
func (r *Reconciler) resolveAlbumID(merged map[string]json.RawMessage) (albumID, recordingTrackID *int64) {
	switch pageType(merged) {
	case "MusicRecording":
		var props []dto.AdditionalProperty
		if raw, ok := merged["additionalProperty"]; ok {
			_ = json.Unmarshal(raw, &props)
		}
		if p, ok := dto.FindProperty(props, "track_id"); ok {
			if id, ok := p.Int64(); ok {
				r.logger.Debug("single track page", "track_id", id)
				return &id, &id
			}
		}
	case "MusicAlbum":
		var releases []dto.AlbumRelease
		if raw, ok := merged["albumRelease"]; ok {
			_ = json.Unmarshal(raw, &releases)
		}
		for _, release := range releases {
			if p, ok := dto.FindProperty(release.AdditionalProperty, "item_id"); ok {
				if id, ok := p.Int64(); ok {
					r.logger.Debug("album page", "album_id", id)
					return &id, nil
				}
			}
		}
	}
	return nil, nil
}

// trackLyrics fetches the track page and extracts the lyrics text.
// Any failure degrades to empty lyrics.
func (r *Reconciler) trackLyrics(ctx context.Context, trackURL string) string {
	doc, err := r.fetcher.Document(ctx, trackURL+"#lyrics")
	if err != nil {
		r.logger.Debug("lyrics fetch failed", "url", trackURL, "error", err)
		return ""
	}
	return doc.Find("div.lyricsText").First().Text()
}

// artistBaseURL truncates the canonical page URL at the last /track/ or
// /album/ segment, yielding the artist's base URL.
func artistBaseURL(pageURL string) string {
	if i := strings.LastIndex(pageURL, "/track/"); i >= 0 {
		return pageURL[:i]
	}
	if i := strings.LastIndex(pageURL, "/album/"); i >= 0 {
		return pageURL[:i]
	}
	return ""
}

// pageType returns the page's structured @type, tolerating both string
// and array forms.
func pageType(merged map[string]json.RawMessage) string {
	raw, ok := merged["@type"]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

// pageGenres joins the page's keyword list with "; ". Keywords appear
// as either an array or a comma-separated string depending on the page.
func pageGenres(merged map[string]json.RawMessage) string {
	raw, ok := merged["keywords"]
	if !ok {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.Join(strings.Split(s, ","), "; ")
	}
	return ""
}
