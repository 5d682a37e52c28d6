package main

import "testing"

func TestArtistPageURL(t *testing.T) {
	tests := []struct {
		name       string
		arg        string
		wantArtist string
		wantOK     bool
	}{
		{
			name:       "music page",
			arg:        "https://someband.bandcamp.com/music",
			wantArtist: "someband",
			wantOK:     true,
		},
		{
			name:       "root page",
			arg:        "https://someband.bandcamp.com/",
			wantArtist: "someband",
			wantOK:     true,
		},
		{
			name:       "bare host",
			arg:        "https://someband.bandcamp.com",
			wantArtist: "someband",
			wantOK:     true,
		},
		{
			name:   "album page is not an artist page",
			arg:    "https://someband.bandcamp.com/album/first",
			wantOK: false,
		},
		{
			name:   "track page is not an artist page",
			arg:    "https://someband.bandcamp.com/track/single",
			wantOK: false,
		},
		{
			name:   "other host",
			arg:    "https://example.com/music",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, ok := artistPageURL(tt.arg)
			if ok != tt.wantOK {
				t.Fatalf("artistPageURL(%q) ok = %v, want %v", tt.arg, ok, tt.wantOK)
			}
			if ok && artist != tt.wantArtist {
				t.Errorf("artist = %q, want %q", artist, tt.wantArtist)
			}
		})
	}
}
