package model

import "testing"

func TestTrack_FullURL(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  string
	}{
		{
			name:  "artist url plus partial",
			track: Track{ArtistURL: "https://artist.bandcamp.com", PartialURL: "/track/my-song"},
			want:  "https://artist.bandcamp.com/track/my-song",
		},
		{
			name:  "empty partial",
			track: Track{ArtistURL: "https://artist.bandcamp.com"},
			want:  "https://artist.bandcamp.com",
		},
		{
			name:  "both empty",
			track: Track{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.FullURL(); got != tt.want {
				t.Errorf("FullURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrack_HasDownloadURL(t *testing.T) {
	withURL := Track{DownloadURL: "http://example.com/a.mp3"}
	if !withURL.HasDownloadURL() {
		t.Error("HasDownloadURL() should be true when a download URL is set")
	}

	withoutURL := Track{}
	if withoutURL.HasDownloadURL() {
		t.Error("HasDownloadURL() should be false when no download URL is set")
	}
}

func TestAlbum_HasArt(t *testing.T) {
	withArt := Album{ArtURL: "https://f4.bcbits.com/img/a1_10.jpg"}
	if !withArt.HasArt() {
		t.Error("HasArt() should be true when ArtURL is set")
	}

	withoutArt := Album{}
	if withoutArt.HasArt() {
		t.Error("HasArt() should be false when ArtURL is empty")
	}
}
