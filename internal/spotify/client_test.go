package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zmb3/spotify/v2"
)

// fakeAPI serves a token endpoint and the Web API paths used by Client.
type fakeAPI struct {
	tokenStatus int
	apiStatus   int
	delay       time.Duration
	search      any
	items       any

	searches  atomic.Int32
	lastQuery atomic.Value
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/token" {
		if f.tokenStatus != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.tokenStatus)
			w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
		return
	}

	if f.delay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(f.delay):
		}
	}

	if f.apiStatus != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.apiStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"status": f.apiStatus, "message": "test failure"},
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/v1/search":
		f.searches.Add(1)
		f.lastQuery.Store(r.URL.Query())
		json.NewEncoder(w).Encode(f.search)
	case r.URL.Path == "/v1/users/spotify/playlists":
		w.Write([]byte(`{"items":[],"total":0}`))
	case strings.HasPrefix(r.URL.Path, "/v1/playlists/"):
		json.NewEncoder(w).Encode(f.items)
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, f *fakeAPI, mutate func(*Config)) *Client {
	t.Helper()

	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	cfg := Config{
		ClientID:       "id",
		ClientSecret:   "secret",
		RequestTimeout: time.Second,
		APIURL:         server.URL + "/v1/",
		TokenURL:       server.URL + "/token",
	}
	if mutate != nil {
		mutate(&cfg)
	}

	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func searchResponse(items ...map[string]any) map[string]any {
	list := make([]any, len(items))
	for i, it := range items {
		if it != nil {
			list[i] = it
		}
	}
	return map[string]any{
		"playlists": map[string]any{"items": list, "total": len(items)},
	}
}

func playlistJSON(id, name string, tracks int) map[string]any {
	return map[string]any{
		"id":            id,
		"name":          name,
		"description":   name + " description",
		"external_urls": map[string]string{"spotify": "https://open.spotify.com/playlist/" + id},
		"tracks":        map[string]any{"total": tracks},
	}
}

func TestNewClientMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"both empty", Config{}},
		{"missing secret", Config{ClientID: "id"}},
		{"missing id", Config{ClientSecret: "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("NewClient() error = %v, want ErrMissingCredentials", err)
			}
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(Config{ClientID: "id", ClientSecret: "secret"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if c.timeout != DefaultRequestTimeout {
		t.Errorf("timeout = %v, want %v", c.timeout, DefaultRequestTimeout)
	}
	if c.limiter != nil {
		t.Error("limiter should be nil when RateLimit is zero")
	}
}

func TestConnect(t *testing.T) {
	f := &fakeAPI{}
	server := httptest.NewServer(f)
	defer server.Close()

	c, err := Connect(context.Background(), Config{
		ClientID:     "id",
		ClientSecret: "secret",
		APIURL:       server.URL + "/v1/",
		TokenURL:     server.URL + "/token",
	})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if c == nil {
		t.Fatal("Connect() returned nil client")
	}
}

func TestProbeUnauthorized(t *testing.T) {
	c := newTestClient(t, &fakeAPI{tokenStatus: http.StatusUnauthorized}, nil)

	err := c.Probe(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Probe() error = %v, want ErrUnauthorized", err)
	}
}

func TestSearchPlaylists(t *testing.T) {
	f := &fakeAPI{
		search: searchResponse(
			playlistJSON("p1", "Happy Hits", 50),
			nil,
			playlistJSON("p2", "Feel Good", 20),
		),
	}
	c := newTestClient(t, f, func(cfg *Config) { cfg.Market = "IN" })

	got, err := c.SearchPlaylists(context.Background(), "happy upbeat music", 3)
	if err != nil {
		t.Fatalf("SearchPlaylists() error = %v", err)
	}

	want := []Playlist{
		{ID: "p1", Name: "Happy Hits", Description: "Happy Hits description", ExternalURL: "https://open.spotify.com/playlist/p1", TrackCount: 50},
		{ID: "p2", Name: "Feel Good", Description: "Feel Good description", ExternalURL: "https://open.spotify.com/playlist/p2", TrackCount: 20},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d playlists, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("playlist[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	query, _ := f.lastQuery.Load().(url.Values)
	if q := query["q"]; len(q) != 1 || q[0] != "happy upbeat music" {
		t.Errorf("q = %v", q)
	}
	if typ := query["type"]; len(typ) != 1 || typ[0] != "playlist" {
		t.Errorf("type = %v, want playlist", typ)
	}
	if limit := query["limit"]; len(limit) != 1 || limit[0] != "3" {
		t.Errorf("limit = %v, want 3", limit)
	}
	if market := query["market"]; len(market) != 1 || market[0] != "IN" {
		t.Errorf("market = %v, want IN", market)
	}
}

func TestSearchPlaylistsNonPositiveLimit(t *testing.T) {
	f := &fakeAPI{search: searchResponse()}
	c := newTestClient(t, f, nil)

	got, err := c.SearchPlaylists(context.Background(), "anything", 0)
	if err != nil {
		t.Fatalf("SearchPlaylists() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d playlists, want 0", len(got))
	}
	if n := f.searches.Load(); n != 0 {
		t.Errorf("made %d requests, want 0", n)
	}
}

func TestSearchPlaylistsErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		api  *fakeAPI
		want error
	}{
		{"token rejected", &fakeAPI{tokenStatus: http.StatusBadRequest}, ErrUnauthorized},
		{"api unauthorized", &fakeAPI{apiStatus: http.StatusUnauthorized}, ErrUnauthorized},
		{"api forbidden", &fakeAPI{apiStatus: http.StatusForbidden}, ErrUnauthorized},
		{"server error", &fakeAPI{apiStatus: http.StatusServiceUnavailable}, ErrUnavailable},
		{"timeout", &fakeAPI{delay: 2 * time.Second, search: searchResponse()}, ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.api, func(cfg *Config) {
				cfg.RequestTimeout = 100 * time.Millisecond
			})

			_, err := c.SearchPlaylists(context.Background(), "q", 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("SearchPlaylists() error = %v, want %v", err, tt.want)
			}

			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("error %T is not a *RequestError", err)
			}
			if reqErr.Op != "searching playlists" {
				t.Errorf("Op = %q", reqErr.Op)
			}
		})
	}
}

func TestPlaylistTracks(t *testing.T) {
	f := &fakeAPI{
		items: map[string]any{
			"items": []any{
				map[string]any{
					"track": map[string]any{
						"type":          "track",
						"id":            "t1",
						"name":          "Song One",
						"duration_ms":   180000,
						"artists":       []any{map[string]any{"name": "Artist A"}, map[string]any{"name": "Artist B"}},
						"album":         map[string]any{"name": "Album One"},
						"external_urls": map[string]string{"spotify": "https://open.spotify.com/track/t1"},
					},
				},
				map[string]any{
					"track": map[string]any{
						"type":        "track",
						"id":          "t2",
						"name":        "Lonely Song",
						"duration_ms": 90000,
						"artists":     []any{},
						"album":       map[string]any{"name": "Album Two"},
					},
				},
			},
			"total": 2,
		},
	}
	c := newTestClient(t, f, nil)

	got, err := c.PlaylistTracks(context.Background(), "p1", 5)
	if err != nil {
		t.Fatalf("PlaylistTracks() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tracks, want 2", len(got))
	}

	first := Track{ID: "t1", Name: "Song One", Artist: "Artist A", Album: "Album One", URL: "https://open.spotify.com/track/t1", DurationMs: 180000}
	if got[0] != first {
		t.Errorf("track[0] = %+v, want %+v", got[0], first)
	}
	if got[1].Artist != unknownArtist {
		t.Errorf("track[1].Artist = %q, want %q", got[1].Artist, unknownArtist)
	}
}

func TestConvertPlaylist(t *testing.T) {
	p := spotify.SimplePlaylist{
		ID:           "abc",
		Name:         "Chill",
		Description:  "Relax",
		ExternalURLs: map[string]string{"spotify": "https://open.spotify.com/playlist/abc"},
	}

	got := convertPlaylist(p)
	if got.ID != "abc" || got.Name != "Chill" || got.Description != "Relax" {
		t.Errorf("convertPlaylist() = %+v", got)
	}
	if got.ExternalURL != "https://open.spotify.com/playlist/abc" {
		t.Errorf("ExternalURL = %q", got.ExternalURL)
	}
}

func TestRateLimitWaitHonorsDeadline(t *testing.T) {
	c := New(nil, WithRateLimit(0.001, 1), WithRequestTimeout(50*time.Millisecond))

	// Drain the single burst token.
	c.limiter.Allow()

	ctx, cancel := c.requestContext(context.Background())
	defer cancel()

	err := c.wait(ctx, "searching playlists")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("wait() error = %v, want ErrTimeout", err)
	}
}

func TestWithRateLimitDisabled(t *testing.T) {
	c := New(nil, WithRateLimit(0, 5))
	if c.limiter != nil {
		t.Error("limiter should be nil for a zero rate")
	}
	if err := c.wait(context.Background(), "op"); err != nil {
		t.Errorf("wait() error = %v", err)
	}
}
