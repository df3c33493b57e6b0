package recommend

import (
	"github.com/justestif/go-spotify-mood-recommender/internal/catalog"
	"github.com/justestif/go-spotify-mood-recommender/internal/emotion"
	"github.com/justestif/go-spotify-mood-recommender/internal/spotify"
)

// Source indicates where a playlist entry came from.
type Source string

const (
	// SourceDefault means the entry came from the static catalog.
	SourceDefault Source = "default"
	// SourceProvider means the entry came from a Spotify search.
	SourceProvider Source = "spotify"
)

// Entry is a recommended playlist.
// URL is only set together with an ID and always equals catalog.PlaylistURL(ID).
type Entry struct {
	Name        string  `json:"name"`
	ID          string  `json:"id,omitempty"`
	URL         *string `json:"url,omitempty"`          // nil if not known
	Description string  `json:"description,omitempty"`
	TracksTotal *int    `json:"tracks_total,omitempty"` // nil if unknown
	Source      Source  `json:"source"`
	Language    string  `json:"language,omitempty"`
}

// Recommendation is the outcome of a recommendation call.
type Recommendation struct {
	Emotion  emotion.Label `json:"emotion"`
	Language string        `json:"language"`
	Entries  []Entry       `json:"playlists"`
	Degraded bool          `json:"degraded"`           // Spotify was configured but failed
	Warnings []string      `json:"warnings,omitempty"` // Soft provider warnings
}

// fromStubs converts static catalog stubs to default entries.
func fromStubs(stubs []catalog.Stub, language string) []Entry {
	entries := make([]Entry, len(stubs))
	for i, s := range stubs {
		entries[i] = Entry{
			Name:        s.Name,
			ID:          s.ID,
			Description: s.Description,
			Source:      SourceDefault,
			Language:    language,
		}
	}
	return entries
}

// fromPlaylist converts a Spotify search result to a provider entry.
func fromPlaylist(p spotify.Playlist, language string) Entry {
	e := Entry{
		Name:        p.Name,
		Description: p.Description,
		Source:      SourceProvider,
		Language:    language,
	}
	e.link(p)
	return e
}

// link sets the identity fields of e from a Spotify playlist.
func (e *Entry) link(p spotify.Playlist) {
	url := catalog.PlaylistURL(p.ID)
	tracks := p.TrackCount
	e.ID = p.ID
	e.URL = &url
	e.TracksTotal = &tracks
}
