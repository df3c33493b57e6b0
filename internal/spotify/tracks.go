package spotify

import (
	"context"

	"github.com/zmb3/spotify/v2"
)

const unknownArtist = "Unknown"

// PlaylistTracks retrieves up to limit tracks from a playlist.
// Episodes and removed tracks are skipped.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]Track, error) {
	if limit <= 0 {
		return []Track{}, nil
	}
	limit = min(limit, maxSearchLimit)

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	if err := c.wait(ctx, "fetching playlist tracks"); err != nil {
		return nil, err
	}

	opts := []spotify.RequestOption{spotify.Limit(limit)}
	if c.market != "" {
		opts = append(opts, spotify.Market(c.market))
	}

	page, err := c.api.GetPlaylistItems(ctx, spotify.ID(playlistID), opts...)
	if err != nil {
		return nil, newRequestError("fetching playlist tracks", err)
	}

	tracks := make([]Track, 0, len(page.Items))
	for _, item := range page.Items {
		if item.Track.Track == nil {
			continue
		}
		tracks = append(tracks, convertTrack(*item.Track.Track))
	}
	return tracks, nil
}

// convertTrack converts a Spotify FullTrack to a Track.
func convertTrack(t spotify.FullTrack) Track {
	artist := unknownArtist
	if len(t.Artists) > 0 {
		artist = t.Artists[0].Name
	}

	return Track{
		ID:         t.ID.String(),
		Name:       t.Name,
		Artist:     artist,
		Album:      t.Album.Name,
		URL:        t.ExternalURLs["spotify"],
		DurationMs: int(t.Duration),
	}
}
