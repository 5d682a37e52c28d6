package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"

	"bandcamp-dl/internal/audio"
	"bandcamp-dl/internal/config"
	ioutils "bandcamp-dl/internal/io"
	"bandcamp-dl/internal/model"
	"bandcamp-dl/internal/slug"
)

const (
	// tmpSuffix marks in-progress downloads. A crash leaves either no
	// file or a file carrying this suffix.
	tmpSuffix = ".tmp"

	// maxAttempts bounds the re-streams of a track whose byte count
	// does not match the declared content length.
	maxAttempts = 3

	coverFileName = "cover.jpg"
)

// Fetcher is the transport capability the Manager needs: streamed
// retrieval for track assets and whole-body retrieval for cover art.
// The concrete implementation lives in internal/http.
type Fetcher interface {
	Stream(ctx context.Context, url string) (io.ReadCloser, int64, error)
	Get(ctx context.Context, url string) ([]byte, error)
}

// Confirmer asks the user a yes/no question. Injected so the manager
// stays testable and free of terminal concerns.
type Confirmer func(prompt string) bool

// Manager drives the sequential download-and-tag pipeline for one
// album at a time: path templating, temp-file streaming with integrity
// checking and bounded retry, cover art caching, and tag writing.
//
// Example usage:
//
//	mgr := NewManager(settings, client, confirm, logger)
//	if err := mgr.Start(ctx, album); err != nil {
//	    // the album's remaining tracks were aborted
//	}
type Manager struct {
	settings *config.Settings
	fetcher  Fetcher
	tagger   *audio.Tagger
	images   *ioutils.ImageService
	confirm  Confirmer
	logger   *slog.Logger
}

// NewManager creates a Manager.
func NewManager(settings *config.Settings, fetcher Fetcher, confirm Confirmer, logger *slog.Logger) *Manager {
	return &Manager{
		settings: settings,
		fetcher:  fetcher,
		tagger: audio.NewTagger(audio.Options{
			Group:       settings.Group,
			EmbedLyrics: settings.EmbedLyrics,
			EmbedGenres: settings.EmbedGenres,
		}, logger),
		images:  ioutils.NewImageService(),
		confirm: confirm,
		logger:  logger,
	}
}

// albumState holds the mutable per-album state of one download run.
// The cached cover path is an explicit optional field; empty means no
// cover is on disk for this album. coverOwned marks a cover written by
// this run rather than found on disk.
type albumState struct {
	coverPath  string
	coverOwned bool
	coverTried bool
	artwork    []byte
}

// outcome describes how one track left the fetch step.
type outcome int

const (
	outcomeDownloaded outcome = iota
	outcomeStaleTmp
	outcomeSkipped
	outcomeGaveUp
)

// Start runs the download pipeline for one album.
//
// When the reconciled track list is incomplete the user is asked to
// confirm first; the gate is skipped if every track resolved or if
// non-interactive mode is set. A declined confirmation is not an error.
func (m *Manager) Start(ctx context.Context, album *model.Album) error {
	if !album.AllTracksHaveURL && !m.settings.NoConfirm {
		if !m.confirm("Track list incomplete, some tracks may be private, download anyway?") {
			m.logger.Info("download cancelled", "album", album.Title)
			return nil
		}
	}
	return m.downloadAlbum(ctx, album)
}

// downloadAlbum processes tracks sequentially in album order. Retry
// exhaustion and existing-file skips move on to the next track; any
// unexpected error aborts the remaining tracks of the album.
func (m *Manager) downloadAlbum(ctx context.Context, album *model.Album) error {
	state := &albumState{}
	total := len(album.Tracks)

	for i, track := range album.Tracks {
		finalPath := m.trackPath(album, track)
		tmpPath := finalPath + tmpSuffix
		dir := filepath.Dir(finalPath)
		if err := ioutils.EnsureDir(dir); err != nil {
			return err
		}

		if !m.settings.NoArt && album.HasArt() {
			m.ensureCover(ctx, album, dir, state)
		}

		m.logger.Debug("processing track", "track", i+1, "of", total, "file", finalPath)

		res, err := m.fetchTrack(ctx, track, finalPath, tmpPath)
		if err != nil {
			return fmt.Errorf("downloading %s: %w", track.Title, err)
		}
		if res == outcomeSkipped || res == outcomeGaveUp {
			continue
		}

		var artwork []byte
		if m.settings.EmbedArt {
			artwork = m.coverBytes(state)
		}

		if err := m.tagger.Tag(tmpPath, finalPath, m.trackTags(album, track), artwork); err != nil {
			return fmt.Errorf("tagging %s: %w", track.Title, err)
		}
	}

	// The cover was only cached for embedding; drop it once the whole
	// album is done. A cover.jpg that predates this run stays.
	if m.settings.EmbedArt && state.coverOwned {
		if err := os.Remove(state.coverPath); err != nil {
			m.logger.Debug("could not remove cached cover", "error", err)
		}
	}

	return nil
}

// fetchTrack downloads one track to its temp file and verifies the
// byte count against the declared content length.
//
// A temp file left over from a previous run goes straight to tagging
// without a fresh download. An existing final file without overwrite
// skips the track before any asset bytes are requested.
func (m *Manager) fetchTrack(ctx context.Context, track *model.Track, finalPath, tmpPath string) (outcome, error) {
	if ioutils.Exists(tmpPath) {
		m.logger.Debug("found partial file from previous run, tagging as-is", "file", tmpPath)
		return outcomeStaleTmp, nil
	}
	if ioutils.Exists(finalPath) && !m.settings.Overwrite {
		m.logger.Info("file already exists and is complete, skipping", "file", filepath.Base(finalPath))
		return outcomeSkipped, nil
	}

	for attempts := 1; ; attempts++ {
		body, length, err := m.fetcher.Stream(ctx, track.DownloadURL)
		if err != nil {
			return 0, err
		}

		written, err := m.streamTo(tmpPath, body, length)
		body.Close()
		if err != nil {
			return 0, err
		}

		if length > 0 && written != length {
			if attempts >= maxAttempts {
				m.logger.Warn("maximum retries reached, skipping", "file", filepath.Base(finalPath))
				os.Remove(tmpPath)
				return outcomeGaveUp, nil
			}
			m.logger.Warn("incomplete download, retrying",
				"file", filepath.Base(finalPath), "written", written, "expected", length)
			continue
		}

		return outcomeDownloaded, nil
	}
}

// streamTo writes the response body to path in chunks sized to 1% of
// the declared length, showing a progress bar unless debug output is
// active.
func (m *Manager) streamTo(path string, body io.Reader, length int64) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := body
	if !m.settings.Debug && length > 0 {
		bar := pb.Full.Start64(length)
		defer bar.Finish()
		reader = bar.NewProxyReader(body)
	}

	chunk := length / 100
	if chunk <= 0 {
		return io.Copy(f, reader)
	}
	return io.CopyBuffer(f, reader, make([]byte, chunk))
}

// ensureCover fetches the album art once per album and caches it as a
// sibling cover.jpg. Failures are non-fatal and never retried within
// the album.
func (m *Manager) ensureCover(ctx context.Context, album *model.Album, dir string, state *albumState) {
	if state.coverTried {
		return
	}
	state.coverTried = true

	coverPath := filepath.Join(dir, coverFileName)
	if ioutils.Exists(coverPath) {
		state.coverPath = coverPath
		return
	}

	data, err := m.fetcher.Get(ctx, album.ArtURL)
	if err != nil {
		m.logger.Warn("could not download album art", "error", err)
		return
	}
	if err := ioutils.WriteFile(coverPath, data); err != nil {
		m.logger.Warn("could not save album art", "error", err)
		return
	}
	state.coverPath = coverPath
	state.coverOwned = true
}

// coverBytes returns the cached cover prepared for embedding, reading
// and processing it at most once per album.
func (m *Manager) coverBytes(state *albumState) []byte {
	if state.artwork != nil || state.coverPath == "" {
		return state.artwork
	}

	data, err := os.ReadFile(state.coverPath)
	if err != nil {
		m.logger.Warn("could not read cached cover", "error", err)
		return nil
	}

	if m.settings.ResizeCoverArt && m.settings.CoverArtMaxSize > 0 {
		if resized, err := m.images.Resize(data, m.settings.CoverArtMaxSize, m.settings.CoverArtMaxSize); err == nil {
			data = resized
		}
	} else if m.settings.ConvertCoverArtToJPG {
		if jpg, err := m.images.ToJPEG(data); err == nil {
			data = jpg
		}
	}

	state.artwork = data
	return data
}

// trackPath computes the final output path for a track by substituting
// the metadata tokens into the configured template.
func (m *Manager) trackPath(album *model.Album, track *model.Track) string {
	meta := map[string]string{
		"artist":      track.Artist,
		"albumartist": album.Artist,
		"label":       album.Label,
		"album":       album.Title,
		"title":       trackTitle(track),
		"track":       trackNumberToken(track.Number),
		"track_id":    idString(track.ID),
		"album_id":    idString(album.ID),
		"date":        album.Date,
	}
	if meta["artist"] == "" {
		m.logger.Debug("track artist missing, using album artist")
		meta["artist"] = album.Artist
	}

	if m.settings.UntitledPathFromSlug && strings.EqualFold(meta["album"], "untitled") {
		parts := strings.Split(album.URL, "/")
		meta["album"] = strings.ReplaceAll(parts[len(parts)-1], "-", " ")
	}

	if n := m.settings.TruncateAlbum; n > 0 && len(meta["album"]) > n {
		meta["album"] = meta["album"][:n]
	}
	if n := m.settings.TruncateTrack; n > 0 && len(meta["title"]) > n {
		meta["title"] = meta["title"][:n]
	}

	path := slug.ExpandTemplate(m.settings.Template, meta, m.settings.NoSlugify, m.settings.SlugOptions())
	if m.settings.BaseDir != "" {
		return filepath.Join(m.settings.BaseDir, path+".mp3")
	}
	return path + ".mp3"
}

// trackTags assembles the ID3 metadata for one track.
func (m *Manager) trackTags(album *model.Album, track *model.Track) audio.TrackTags {
	return audio.TrackTags{
		Title:       trackTitle(track),
		Artist:      track.Artist,
		AlbumArtist: album.Artist,
		Album:       album.Title,
		Date:        album.Date,
		Track:       trackNumberLabel(track.Number),
		URL:         album.URL,
		Label:       album.Label,
		Lyrics:      track.Lyrics,
		Genres:      album.Genres,
	}
}

// trackTitle strips a redundant leading "Artist - " prefix from the
// track title.
func trackTitle(track *model.Track) string {
	if track.Artist != "" {
		return strings.Replace(track.Title, track.Artist+" - ", "", 1)
	}
	return track.Title
}

// trackNumberLabel is the TRCK frame value. An absent number becomes
// "None", which the tag writer coerces to "1".
func trackNumberLabel(n int) string {
	if n == 0 {
		return "None"
	}
	return strconv.Itoa(n)
}

// trackNumberToken formats the track number for path substitution.
// Pages without a number, such as single-track pages, yield "Single".
func trackNumberToken(n int) string {
	if n == 0 {
		return "Single"
	}
	return fmt.Sprintf("%02d", n)
}

func idString(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
