package recommend

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/justestif/go-spotify-mood-recommender/internal/spotify"
)

const defaultURLCacheSize = 256

// urlCache memoizes successful name lookups used by the enrichment pass.
// Misses and failures are not cached.
type urlCache struct {
	maxSize int

	mu      sync.RWMutex
	entries map[string]spotify.Playlist

	group singleflight.Group
}

func newURLCache(maxSize int) *urlCache {
	return &urlCache{
		maxSize: maxSize,
		entries: make(map[string]spotify.Playlist),
	}
}

type lookupResult struct {
	playlist spotify.Playlist
	found    bool
}

// lookup returns the first playlist matching query, searching only on a cache miss.
// Concurrent lookups of the same query share one request.
func (c *urlCache) lookup(ctx context.Context, p Provider, query string) (spotify.Playlist, bool, error) {
	c.mu.RLock()
	if cached, ok := c.entries[query]; ok {
		c.mu.RUnlock()
		return cached, true, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(query, func() (any, error) {
		results, err := p.SearchPlaylists(ctx, query, 1)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 || results[0].ID == "" {
			return lookupResult{}, nil
		}

		c.store(query, results[0])
		return lookupResult{playlist: results[0], found: true}, nil
	})
	if err != nil {
		return spotify.Playlist{}, false, err
	}

	res := v.(lookupResult)
	return res.playlist, res.found, nil
}

func (c *urlCache) store(query string, p spotify.Playlist) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Start over rather than track recency; the key space is tiny.
	if len(c.entries) >= c.maxSize {
		c.entries = make(map[string]spotify.Playlist)
	}
	c.entries[query] = p
}

func (c *urlCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
