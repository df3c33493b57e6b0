package recommend

import (
	"context"
	"fmt"

	"github.com/justestif/go-spotify-mood-recommender/internal/emotion"
	"github.com/justestif/go-spotify-mood-recommender/internal/spotify"
)

// Summary describes the music suggested for an emotion.
type Summary struct {
	Emotion     emotion.Label  `json:"emotion"`
	Description string         `json:"description"`
	Genres      []string       `json:"genres"`
	Mood        string         `json:"mood"`
	Energy      emotion.Energy `json:"energy"`
	TopPlaylist *Entry         `json:"top_playlist,omitempty"`
}

// Summarize returns the profile of an emotion together with its top playlist.
// The profile of an unknown emotion is the generic fallback profile, while the
// playlist is picked as for neutral.
func (e *Engine) Summarize(ctx context.Context, emotionName, language string) Summary {
	profile := e.Profile(emotionName)

	s := Summary{
		Emotion:     emotion.Normalize(emotionName),
		Description: profile.Description,
		Genres:      profile.Genres,
		Mood:        profile.Mood,
		Energy:      profile.Energy,
	}

	if top := e.Recommend(ctx, emotionName, 1, language); len(top) > 0 {
		s.TopPlaylist = &top[0]
	}
	return s
}

// Profile returns the music profile for an emotion name, or the generic
// fallback profile when the name is not a known emotion.
func (e *Engine) Profile(emotionName string) emotion.Profile {
	label, ok := emotion.Parse(emotionName)
	if !ok {
		return emotion.FallbackProfile()
	}
	return emotion.ProfileFor(label)
}

// PlaylistTracks returns a short track preview for a playlist.
// It returns ErrNotConfigured when no Spotify session is available.
func (e *Engine) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]spotify.Track, error) {
	p := e.session()
	if p == nil {
		return nil, ErrNotConfigured
	}

	tracks, err := p.PlaylistTracks(ctx, playlistID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching tracks for playlist %s: %w", playlistID, err)
	}
	return tracks, nil
}
