package audio

import (
	"fmt"
	"log/slog"
	"os"
	"unicode"

	"github.com/bogem/id3v2"
)

// TrackTags is the reconciled per-track metadata written into a file's
// ID3 frames.
type TrackTags struct {
	// Title is the track title (TIT2).
	Title string

	// Artist is the track artist (TPE1). Empty falls back to
	// AlbumArtist.
	Artist string

	// AlbumArtist is the album artist (TPE2).
	AlbumArtist string

	// Album is the album title (TALB).
	Album string

	// Date is the release year (TYER).
	Date string

	// Track is the track number label (TRCK). A non-numeric label is
	// written as "1".
	Track string

	// URL is the album page URL, written as the official audio file
	// webpage frame (WOAF).
	URL string

	// Label is the selling label, written as grouping (TIT1) when
	// grouping is enabled.
	Label string

	// Lyrics is the unsynchronised lyrics text (USLT).
	Lyrics string

	// Genres is the genre text (TCON).
	Genres string
}

// Options selects the optional frames the Tagger writes.
type Options struct {
	// Group writes the label into the grouping frame.
	Group bool

	// EmbedLyrics writes the lyrics frame when lyrics are present.
	EmbedLyrics bool

	// EmbedGenres writes the genre frame when genres are present.
	EmbedGenres bool
}

// Tagger writes ID3 tags to downloaded temp files and performs the
// atomic rename to the final name.
//
// Example:
//
//	tagger := NewTagger(Options{EmbedLyrics: true}, logger)
//	err := tagger.Tag(tmpPath, finalPath, tags, artworkBytes)
type Tagger struct {
	opts   Options
	logger *slog.Logger
}

// NewTagger creates a Tagger.
func NewTagger(opts Options, logger *slog.Logger) *Tagger {
	return &Tagger{opts: opts, logger: logger}
}

// Tag writes the track's frames into the temp file and renames it to
// its final name. The rename comes last so a crash leaves either no
// file or a clearly-marked temp file, never a tagged-but-misnamed one.
func (t *Tagger) Tag(tmpPath, finalPath string, tags TrackTags, artwork []byte) error {
	if err := t.writeFrames(tmpPath, tags, artwork); err != nil {
		return err
	}
	return t.rename(tmpPath, finalPath)
}

func (t *Tagger) writeFrames(path string, tags TrackTags, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("opening %s for tagging: %w", path, err)
	}
	defer tag.Close()

	tag.DeleteAllFrames()

	tag.SetTitle(tags.Title)
	tag.AddFrame("WOAF", id3v2.UnknownFrame{Body: []byte(tags.URL)})

	if t.opts.Group && tags.Label != "" {
		tag.AddTextFrame("TIT1", id3v2.EncodingUTF8, tags.Label)
	}

	if t.opts.EmbedLyrics && tags.Lyrics != "" {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          "eng",
			ContentDescriptor: "",
			Lyrics:            tags.Lyrics,
		})
	}

	if artwork != nil {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     artwork,
		})
	}

	if t.opts.EmbedGenres && tags.Genres != "" {
		tag.SetGenre(tags.Genres)
	}

	trackNum := tags.Track
	if !isDigits(trackNum) {
		trackNum = "1"
	}
	tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, trackNum)

	artist := tags.Artist
	if artist == "" {
		artist = tags.AlbumArtist
	}
	tag.SetArtist(artist)
	tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, tags.AlbumArtist)
	tag.SetAlbum(tags.Album)
	tag.AddTextFrame("TYER", id3v2.EncodingUTF8, tags.Date)

	return tag.Save()
}

// rename moves the tagged temp file to its final name. A stale artifact
// at the final name is removed and the rename retried once.
func (t *Tagger) rename(tmpPath, finalPath string) error {
	t.logger.Debug("renaming", "from", tmpPath, "to", finalPath)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		if rmErr := os.Remove(finalPath); rmErr != nil {
			return err
		}
		return os.Rename(tmpPath, finalPath)
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
