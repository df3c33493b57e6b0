package spotify

import (
	"context"

	"github.com/zmb3/spotify/v2"
)

// SearchPlaylists searches the catalog for playlists matching query.
// Results keep Spotify's order; null items returned by the API are skipped.
// A non-positive limit returns no results without a request.
func (c *Client) SearchPlaylists(ctx context.Context, query string, limit int) ([]Playlist, error) {
	if limit <= 0 {
		return []Playlist{}, nil
	}
	limit = min(limit, maxSearchLimit)

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	if err := c.wait(ctx, "searching playlists"); err != nil {
		return nil, err
	}

	opts := []spotify.RequestOption{spotify.Limit(limit)}
	if c.market != "" {
		opts = append(opts, spotify.Market(c.market))
	}

	result, err := c.api.Search(ctx, query, spotify.SearchTypePlaylist, opts...)
	if err != nil {
		return nil, newRequestError("searching playlists", err)
	}

	if result == nil || result.Playlists == nil {
		return []Playlist{}, nil
	}

	playlists := make([]Playlist, 0, len(result.Playlists.Playlists))
	for _, p := range result.Playlists.Playlists {
		if p.ID == "" {
			continue
		}
		playlists = append(playlists, convertPlaylist(p))
	}
	return playlists, nil
}

// convertPlaylist converts a Spotify SimplePlaylist to a Playlist.
func convertPlaylist(p spotify.SimplePlaylist) Playlist {
	return Playlist{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		ExternalURL: p.ExternalURLs["spotify"],
		TrackCount:  int(p.Tracks.Total),
	}
}
