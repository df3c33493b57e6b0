// Package recommend maps a detected emotion to playlists, blending Spotify search
// results with the static catalog.
package recommend

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/justestif/go-spotify-mood-recommender/internal/spotify"
)

// ErrNotConfigured is returned by operations that need a Spotify session.
var ErrNotConfigured = errors.New("spotify is not configured")

// Provider is the subset of the Spotify client the engine depends on.
type Provider interface {
	SearchPlaylists(ctx context.Context, query string, limit int) ([]spotify.Playlist, error)
	PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]spotify.Track, error)
}

var _ Provider = (*spotify.Client)(nil)

// Connector opens and verifies a provider session for the given credentials.
type Connector func(ctx context.Context, clientID, clientSecret string) (Provider, error)

// SpotifyConnector returns a Connector that uses the Spotify client-credentials
// flow. Fields of base other than the credentials (market, timeout, rate limit)
// apply to every session it opens.
func SpotifyConnector(base spotify.Config) Connector {
	return func(ctx context.Context, clientID, clientSecret string) (Provider, error) {
		cfg := base
		cfg.ClientID = clientID
		cfg.ClientSecret = clientSecret

		client, err := spotify.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// Engine produces playlist recommendations.
// It starts unconfigured and serves static data until Configure succeeds.
// An Engine is safe for concurrent use.
type Engine struct {
	connect Connector
	logger  *slog.Logger
	urls    *urlCache

	mu       sync.RWMutex
	provider Provider
}

// Option configures an Engine.
type Option func(*Engine)

// WithConnector sets how Configure opens provider sessions.
func WithConnector(c Connector) Option {
	return func(e *Engine) {
		if c != nil {
			e.connect = c
		}
	}
}

// WithProvider starts the engine configured with an existing session.
func WithProvider(p Provider) Option {
	return func(e *Engine) {
		e.provider = p
	}
}

// WithLogger sets the logger used for soft warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		connect: SpotifyConnector(spotify.Config{}),
		logger:  slog.Default(),
		urls:    newURLCache(defaultURLCacheSize),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configure validates the credentials and, on success, replaces the current
// provider session. It returns false if either value is empty or the
// connectivity probe fails; a failed call leaves any earlier session in place.
func (e *Engine) Configure(ctx context.Context, clientID, clientSecret string) bool {
	if clientID == "" || clientSecret == "" {
		e.logger.Warn("Spotify credentials not provided, using default playlists only")
		return false
	}

	p, err := e.connect(ctx, clientID, clientSecret)
	if err != nil {
		e.logger.Warn("Spotify setup failed, using default playlists only", "error", err)
		return false
	}

	e.mu.Lock()
	e.provider = p
	e.mu.Unlock()

	e.logger.Info("Spotify configured")
	return true
}

// Configured reports whether a provider session is available.
func (e *Engine) Configured() bool {
	return e.session() != nil
}

func (e *Engine) session() Provider {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.provider
}
