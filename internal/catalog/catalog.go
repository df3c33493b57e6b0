// Package catalog holds the static playlist data used when Spotify is
// unavailable, and as filler behind live search results.
package catalog

import (
	"github.com/justestif/go-spotify-mood-recommender/internal/emotion"
)

// playlistURLPrefix must stay bit-exact for links to open in the Spotify web client.
const playlistURLPrefix = "https://open.spotify.com/playlist/"

// Stub is a static playlist reference. ID may be empty.
type Stub struct {
	Name        string
	ID          string
	Description string
}

// PlaylistURL returns the Spotify web link for a playlist ID, or "" for an empty ID.
func PlaylistURL(id string) string {
	if id == "" {
		return ""
	}
	return playlistURLPrefix + id
}

var defaultPlaylists = map[emotion.Label][]Stub{
	emotion.Happy: {
		{Name: "Happy Hits", ID: "37i9dQZF1DX3XNs9D5lWnM", Description: "Upbeat pop and dance hits"},
		{Name: "Dance Party", ID: "37i9dQZF1DXcBWIGoYBM5M", Description: "High-energy dance music"},
		{Name: "Pop Mix", ID: "37i9dQZF1DXcF6B6QPhFDv", Description: "Popular pop songs"},
	},
	emotion.Sad: {
		{Name: "Chill Vibes", ID: "37i9dQZF1DX4WYpdgoIcn6", Description: "Relaxing chill music"},
		{Name: "Acoustic Covers", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Beautiful acoustic covers"},
		{Name: "Peaceful Piano", ID: "37i9dQZF1DX7KNKjOK0o75", Description: "Calming piano music"},
	},
	emotion.Angry: {
		{Name: "Rock Classics", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Classic rock anthems"},
		{Name: "Metal Essentials", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Essential metal tracks"},
		{Name: "Punk Rock", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "High-energy punk music"},
	},
	emotion.Fear: {
		{Name: "Ambient Relaxation", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Peaceful ambient sounds"},
		{Name: "Classical Music", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Beautiful classical pieces"},
		{Name: "Nature Sounds", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Soothing nature sounds"},
	},
	emotion.Surprise: {
		{Name: "Electronic Beats", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Electronic music beats"},
		{Name: "Funk & Soul", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Funky soul music"},
		{Name: "Disco Hits", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Classic disco tracks"},
	},
	emotion.Disgust: {
		{Name: "Alternative Rock", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Alternative rock music"},
		{Name: "Indie Vibes", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Indie music vibes"},
		{Name: "Experimental", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Experimental music"},
	},
	emotion.Neutral: {
		{Name: "Lo-Fi Beats", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Relaxing lo-fi music"},
		{Name: "Instrumental", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Beautiful instrumental music"},
		{Name: "Jazz Vibes", ID: "37i9dQZF1DX5Vy6DFOcx00", Description: "Smooth jazz music"},
	},
}

// Localized stubs carry names only; links are filled in by name search.
var localizedPlaylists = map[Language]map[emotion.Label][]Stub{
	Telugu: {
		emotion.Happy:    {{Name: "Telugu Party Hits"}},
		emotion.Sad:      {{Name: "Telugu Melody Sad Songs"}},
		emotion.Angry:    {{Name: "Telugu Mass Beats"}},
		emotion.Fear:     {{Name: "Telugu Soothing Melodies"}},
		emotion.Surprise: {{Name: "Telugu Dance Hits"}},
		emotion.Disgust:  {{Name: "Telugu Indie"}},
		emotion.Neutral:  {{Name: "Telugu Lo-Fi"}},
	},
	Tamil: {
		emotion.Happy:    {{Name: "Tamil Kuthu Hits"}},
		emotion.Sad:      {{Name: "Tamil Sad Melodies"}},
		emotion.Angry:    {{Name: "Tamil Mass Hits"}},
		emotion.Fear:     {{Name: "Tamil Calm Melodies"}},
		emotion.Surprise: {{Name: "Tamil Party Mix"}},
		emotion.Disgust:  {{Name: "Tamil Indie"}},
		emotion.Neutral:  {{Name: "Tamil Lo-Fi"}},
	},
	Kannada: {
		emotion.Happy:    {{Name: "Kannada Party Songs"}},
		emotion.Sad:      {{Name: "Kannada Sad Songs"}},
		emotion.Angry:    {{Name: "Kannada Mass Hits"}},
		emotion.Fear:     {{Name: "Kannada Melodies"}},
		emotion.Surprise: {{Name: "Kannada Dance Hits"}},
		emotion.Disgust:  {{Name: "Kannada Indie"}},
		emotion.Neutral:  {{Name: "Kannada Lo-Fi"}},
	},
	Hindi: {
		emotion.Happy:    {{Name: "Bollywood Party Hits"}, {Name: "Hindi Feel Good"}},
		emotion.Sad:      {{Name: "Bollywood Sad Songs"}, {Name: "Hindi Heartbreak"}},
		emotion.Angry:    {{Name: "Bollywood Workout"}},
		emotion.Fear:     {{Name: "Hindi Sufi Calm"}},
		emotion.Surprise: {{Name: "Bollywood Dance Hits"}},
		emotion.Disgust:  {{Name: "Hindi Indie"}},
		emotion.Neutral:  {{Name: "Bollywood Lo-Fi"}},
	},
}

// DefaultPlaylistsFor returns the generic fallback playlists for a label.
// Unknown labels yield an empty slice.
func DefaultPlaylistsFor(l emotion.Label) []Stub {
	return clone(defaultPlaylists[l])
}

// LocalizedDefaultsFor returns the fallback playlists for a label in the given
// language. The language is normalized first; unknown languages or labels yield
// an empty slice.
func LocalizedDefaultsFor(l emotion.Label, language string) []Stub {
	lang, ok := NormalizeLanguage(language)
	if !ok {
		return []Stub{}
	}
	return clone(localizedPlaylists[lang][l])
}

func clone(stubs []Stub) []Stub {
	out := make([]Stub, len(stubs))
	copy(out, stubs)
	return out
}
