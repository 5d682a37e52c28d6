package audio

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAudioFile writes a tagless body standing in for a downloaded MP3.
func fakeAudioFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, bytes.Repeat([]byte{0xff}, 128), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestTagger_Tag(t *testing.T) {
	dir := t.TempDir()
	tmpPath := filepath.Join(dir, "song.mp3.tmp")
	finalPath := filepath.Join(dir, "song.mp3")
	fakeAudioFile(t, tmpPath)

	tagger := NewTagger(Options{Group: true, EmbedLyrics: true, EmbedGenres: true}, testLogger())
	tags := TrackTags{
		Title:       "My Song",
		Artist:      "Guest",
		AlbumArtist: "Main Band",
		Album:       "First Album",
		Date:        "2020",
		Track:       "3",
		URL:         "https://band.bandcamp.com/album/first-album",
		Label:       "Some Label",
		Lyrics:      "first verse\nsecond verse",
		Genres:      "ambient; drone",
	}

	if err := tagger.Tag(tmpPath, finalPath, tags, []byte("jpegbytes")); err != nil {
		t.Fatalf("Tag() error = %v", err)
	}

	if _, err := os.Stat(tmpPath); !os.IsNotExist(err) {
		t.Error("tmp file should be renamed away")
	}

	tag, err := id3v2.Open(finalPath, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopening tagged file: %v", err)
	}
	defer tag.Close()

	if got := tag.Title(); got != "My Song" {
		t.Errorf("Title = %q, want %q", got, "My Song")
	}
	if got := tag.Artist(); got != "Guest" {
		t.Errorf("Artist = %q, want %q", got, "Guest")
	}
	if got := tag.Album(); got != "First Album" {
		t.Errorf("Album = %q, want %q", got, "First Album")
	}
	if got := tag.Genre(); got != "ambient; drone" {
		t.Errorf("Genre = %q, want %q", got, "ambient; drone")
	}
	if got := tag.GetTextFrame("TPE2").Text; got != "Main Band" {
		t.Errorf("TPE2 = %q, want %q", got, "Main Band")
	}
	if got := tag.GetTextFrame("TYER").Text; got != "2020" {
		t.Errorf("TYER = %q, want %q", got, "2020")
	}
	if got := tag.GetTextFrame("TRCK").Text; got != "3" {
		t.Errorf("TRCK = %q, want %q", got, "3")
	}
	if got := tag.GetTextFrame("TIT1").Text; got != "Some Label" {
		t.Errorf("TIT1 = %q, want %q", got, "Some Label")
	}
}

func TestTagger_Tag_ArtistFallsBackToAlbumArtist(t *testing.T) {
	dir := t.TempDir()
	tmpPath := filepath.Join(dir, "song.mp3.tmp")
	finalPath := filepath.Join(dir, "song.mp3")
	fakeAudioFile(t, tmpPath)

	tagger := NewTagger(Options{}, testLogger())
	tags := TrackTags{Title: "Song", AlbumArtist: "Main Band", Track: "1"}

	if err := tagger.Tag(tmpPath, finalPath, tags, nil); err != nil {
		t.Fatalf("Tag() error = %v", err)
	}

	tag, err := id3v2.Open(finalPath, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if got := tag.Artist(); got != "Main Band" {
		t.Errorf("Artist = %q, want album artist fallback", got)
	}
}

func TestTagger_Tag_NonNumericTrackNumber(t *testing.T) {
	dir := t.TempDir()
	tmpPath := filepath.Join(dir, "song.mp3.tmp")
	finalPath := filepath.Join(dir, "song.mp3")
	fakeAudioFile(t, tmpPath)

	tagger := NewTagger(Options{}, testLogger())
	if err := tagger.Tag(tmpPath, finalPath, TrackTags{Title: "Song", Track: "A1"}, nil); err != nil {
		t.Fatalf("Tag() error = %v", err)
	}

	tag, err := id3v2.Open(finalPath, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if got := tag.GetTextFrame("TRCK").Text; got != "1" {
		t.Errorf("TRCK = %q, want %q for a non-numeric label", got, "1")
	}
}

func TestTagger_Rename_ReplacesStaleArtifact(t *testing.T) {
	dir := t.TempDir()
	tmpPath := filepath.Join(dir, "song.mp3.tmp")
	finalPath := filepath.Join(dir, "song.mp3")

	if err := os.WriteFile(tmpPath, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(finalPath, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	tagger := NewTagger(Options{}, testLogger())
	if err := tagger.rename(tmpPath, finalPath); err != nil {
		t.Fatalf("rename() error = %v", err)
	}

	got, err := os.ReadFile(finalPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("final content = %q, want %q", got, "new")
	}
}

func TestIsDigits(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"42", true},
		{"", false},
		{"A1", false},
		{"1.5", false},
	}

	for _, tt := range tests {
		if got := isDigits(tt.input); got != tt.want {
			t.Errorf("isDigits(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
