package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bandcamp-dl/internal/bandcamp"
	"bandcamp-dl/internal/config"
	"bandcamp-dl/internal/download"
	httpclient "bandcamp-dl/internal/http"
)

const version = "0.0.17"

var (
	colorPrompt = color.New(color.FgBlue, color.Bold)
	colorError  = color.New(color.FgRed, color.Bold)
	colorInfo   = color.New(color.FgCyan)
)

func main() {
	settings, err := config.Load(config.DefaultPath())
	if err != nil {
		colorError.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		settings = config.DefaultSettings()
	}

	if err := newRootCmd(settings).Execute(); err != nil {
		colorError.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(settings *config.Settings) *cobra.Command {
	var (
		artistSlug  string
		albumSlug   string
		trackSlug   string
		fullAlbum   bool
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:           "bandcamp-dl [URL...]",
		Short:         "Download albums and tracks from Bandcamp",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Printf("bandcamp-dl %s\n", version)
				return nil
			}
			if len(args) == 0 && artistSlug == "" {
				cmd.Usage()
				return errors.New("a URL or --artist is required")
			}
			switch settings.CoverQuality {
			case 0, 10, 16:
			default:
				return fmt.Errorf("invalid --cover-quality %d (valid: 0, 10, 16)", settings.CoverQuality)
			}
			return run(cmd, settings, artistSlug, albumSlug, trackSlug, fullAlbum, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&artistSlug, "artist", "", "Artist slug to download the full discography of")
	flags.StringVar(&albumSlug, "album", "", "Album slug to download (requires --artist)")
	flags.StringVar(&trackSlug, "track", "", "Track slug to download (requires --artist)")
	flags.BoolVarP(&fullAlbum, "full-album", "f", false, "Download only if all tracks are available")
	flags.BoolVarP(&showVersion, "version", "v", false, "Show version")

	flags.StringVar(&settings.BaseDir, "base-dir", settings.BaseDir, "Base location all files are downloaded under")
	flags.StringVar(&settings.Template, "template", settings.Template, "Output filename template")
	flags.BoolVarP(&settings.Overwrite, "overwrite", "o", settings.Overwrite, "Overwrite tracks that already exist")
	flags.BoolVarP(&settings.NoArt, "no-art", "n", settings.NoArt, "Skip grabbing album art")
	flags.BoolVarP(&settings.EmbedLyrics, "embed-lyrics", "e", settings.EmbedLyrics, "Embed track lyrics (if available)")
	flags.BoolVarP(&settings.Group, "group", "g", settings.Group, "Use album/track label as grouping")
	flags.BoolVarP(&settings.EmbedArt, "embed-art", "r", settings.EmbedArt, "Embed album art (if available)")
	flags.BoolVar(&settings.EmbedGenres, "embed-genres", settings.EmbedGenres, "Embed album/track genres")
	flags.IntVar(&settings.CoverQuality, "cover-quality", settings.CoverQuality, "Cover art quality: 0 source, 10 album page, 16 embed")
	flags.BoolVar(&settings.UntitledPathFromSlug, "untitled-path-from-slug", settings.UntitledPathFromSlug, "Name untitled albums after their URL slug")
	flags.BoolVarP(&settings.NoSlugify, "no-slugify", "y", settings.NoSlugify, "Disable slugification of names")
	flags.StringVarP(&settings.OKChars, "ok-chars", "c", settings.OKChars, "Additional characters allowed in slugs")
	flags.StringVarP(&settings.SpaceChar, "space-char", "s", settings.SpaceChar, "Character used in place of spaces")
	flags.BoolVarP(&settings.ASCIIOnly, "ascii-only", "a", settings.ASCIIOnly, "Only allow ASCII characters in filenames")
	flags.BoolVarP(&settings.KeepSpaces, "keep-spaces", "k", settings.KeepSpaces, "Retain whitespace in filenames")
	flags.StringVarP(&settings.CaseMode, "case-convert", "x", settings.CaseMode, "Case conversion: lower, upper, camel or none")
	flags.BoolVar(&settings.NoConfirm, "no-confirm", settings.NoConfirm, "Skip confirmation prompts")
	flags.BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "Verbose logging")
	flags.IntVar(&settings.TruncateAlbum, "truncate-album", settings.TruncateAlbum, "Truncate album titles to a maximum length (0 = no limit)")
	flags.IntVar(&settings.TruncateTrack, "truncate-track", settings.TruncateTrack, "Truncate track titles to a maximum length (0 = no limit)")

	return cmd
}

func run(cmd *cobra.Command, settings *config.Settings, artistSlug, albumSlug, trackSlug string, fullAlbum bool, args []string) error {
	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := cmd.Context()
	client := httpclient.NewClient(logger)
	parser := bandcamp.NewParser(client, logger)
	disco := bandcamp.NewDiscography(client, logger)

	var urls []string
	switch {
	case artistSlug != "" && albumSlug != "":
		urls = []string{bandcamp.GenerateAlbumURL(artistSlug, albumSlug, "album")}
	case artistSlug != "" && trackSlug != "":
		urls = []string{bandcamp.GenerateAlbumURL(artistSlug, trackSlug, "track")}
	case artistSlug != "":
		urls = disco.AlbumURLs(ctx, artistSlug)
	default:
		for _, arg := range args {
			if artist, ok := artistPageURL(arg); ok {
				colorInfo.Printf("Found artist page, fetching full discography for: %s\n", artist)
				urls = append(urls, disco.AlbumURLs(ctx, artist)...)
			} else {
				urls = append(urls, arg)
			}
		}
	}

	opts := bandcamp.ReconcileOptions{
		IncludeArt:    !settings.NoArt,
		CoverQuality:  settings.CoverQuality,
		FetchLyrics:   settings.EmbedLyrics,
		IncludeGenres: settings.EmbedGenres,
	}

	manager := download.NewManager(settings, client, confirmPrompt, logger)

	var failed int
	for _, pageURL := range urls {
		if !strings.Contains(pageURL, "/album/") && !strings.Contains(pageURL, "/track/") {
			continue
		}
		logger.Debug("parsing page", "url", pageURL)

		album, err := parser.ParseAlbumPage(ctx, pageURL, opts)
		if err != nil {
			colorError.Fprintf(os.Stderr, "Error parsing %s: %v\n", pageURL, err)
			failed++
			continue
		}
		if album == nil {
			colorError.Fprintf(os.Stderr, "The album/track requested does not exist at: %s\n", pageURL)
			continue
		}

		if fullAlbum && !album.AllTracksHaveURL {
			colorInfo.Printf("Full album not available, skipping %s ...\n", album.Title)
			continue
		}

		if err := manager.Start(ctx, album); err != nil {
			colorError.Fprintf(os.Stderr, "Download failed for %s: %v\n", album.Title, err)
			failed++
		}
		fmt.Println()
	}

	if failed > 0 {
		return fmt.Errorf("%d page(s) failed", failed)
	}
	return nil
}

// artistPageURL reports whether the argument is an artist's root or
// music page rather than an album/track page, and returns the artist
// slug if so.
func artistPageURL(arg string) (string, bool) {
	u, err := url.Parse(arg)
	if err != nil || !strings.HasSuffix(u.Host, ".bandcamp.com") {
		return "", false
	}
	if u.Path == "/music" || u.Path == "/" || u.Path == "" {
		return strings.Split(u.Host, ".")[0], true
	}
	return "", false
}

// confirmPrompt asks a yes/no question on the terminal.
func confirmPrompt(prompt string) bool {
	colorPrompt.Printf("%s (yes/no): ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "yes" || answer == "y"
}
