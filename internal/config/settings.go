package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"bandcamp-dl/internal/slug"
)

// DefaultTemplate is the default output path template.
const DefaultTemplate = "%{artist}/%{album}/%{track} - %{title}"

// Settings holds all configuration options. They are persisted as JSON
// in the user config directory and overridable per-run by CLI flags.
type Settings struct {
	// BaseDir is the directory all files are downloaded under.
	BaseDir string `json:"base_dir"`

	// Template is the output path template using %{token} placeholders.
	Template string `json:"template"`

	// Overwrite re-downloads tracks whose final file already exists.
	Overwrite bool `json:"overwrite"`

	// NoArt skips grabbing album art entirely.
	NoArt bool `json:"no_art"`

	// EmbedArt embeds the cover image into each track's tags.
	EmbedArt bool `json:"embed_art"`

	// EmbedLyrics embeds track lyrics when available.
	EmbedLyrics bool `json:"embed_lyrics"`

	// Group writes the album label into the grouping frame.
	Group bool `json:"group"`

	// EmbedGenres writes the page's keyword list into the genre frame.
	EmbedGenres bool `json:"embed_genres"`

	// CoverQuality selects the art size code: 0 source, 10 album page,
	// 16 embed size.
	CoverQuality int `json:"cover_quality"`

	// Filename normalization.
	NoSlugify  bool   `json:"no_slugify"`
	OKChars    string `json:"ok_chars"`
	SpaceChar  string `json:"space_char"`
	CaseMode   string `json:"case_mode"`
	ASCIIOnly  bool   `json:"ascii_only"`
	KeepSpaces bool   `json:"keep_spaces"`

	// UntitledPathFromSlug names "untitled" albums after their URL slug.
	UntitledPathFromSlug bool `json:"untitled_path_from_slug"`

	// TruncateAlbum and TruncateTrack cap the album/title path tokens
	// at a maximum length; 0 means no limit.
	TruncateAlbum int `json:"truncate_album"`
	TruncateTrack int `json:"truncate_track"`

	// NoConfirm suppresses interactive confirmation prompts.
	NoConfirm bool `json:"no_confirm"`

	// Debug enables verbose logging and disables progress bars.
	Debug bool `json:"debug"`

	// Cover art processing before embedding.
	ResizeCoverArt       bool `json:"resize_cover_art"`
	CoverArtMaxSize      int  `json:"cover_art_max_size"`
	ConvertCoverArtToJPG bool `json:"convert_cover_art_to_jpg"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		BaseDir:   homeDir,
		Template:  DefaultTemplate,
		OKChars:   "-_~",
		SpaceChar: "-",
		CaseMode:  slug.CaseLower,

		CoverArtMaxSize:      1000,
		ConvertCoverArtToJPG: true,
	}
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		return filepath.Join(homeDir, ".bandcamp-dl", "bandcamp-dl.json")
	}
	return filepath.Join(homeDir, ".config", "bandcamp-dl.json")
}

// Load reads settings from a JSON file. A missing file yields the
// defaults, not an error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories as
// needed.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SlugOptions converts the filename normalization settings to
// slug.Options.
func (s *Settings) SlugOptions() slug.Options {
	return slug.Options{
		OKChars:    s.OKChars,
		SpaceChar:  s.SpaceChar,
		KeepSpaces: s.KeepSpaces,
		CaseMode:   s.CaseMode,
		ASCIIOnly:  s.ASCIIOnly,
	}
}
