// Package spotify provides a wrapper around the Spotify Web API.
package spotify

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	// DefaultRequestTimeout bounds every single Web API request.
	DefaultRequestTimeout = 5 * time.Second

	// probeUserID owns public playlists that any client-credentials token can read.
	probeUserID = "spotify"

	maxSearchLimit = 50
)

// ErrMissingCredentials is returned when the client ID or secret is empty.
var ErrMissingCredentials = errors.New("missing Spotify client ID or secret")

// Config holds the settings needed to open an app-level Spotify session.
type Config struct {
	ClientID       string
	ClientSecret   string
	Market         string        // ISO 3166-1 alpha-2 code, optional
	RequestTimeout time.Duration // zero means DefaultRequestTimeout
	RateLimit      float64       // requests per second, zero disables limiting
	RateBurst      int

	// APIURL and TokenURL override the public endpoints (used in tests).
	APIURL   string
	TokenURL string
}

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api     *spotify.Client
	market  string
	timeout time.Duration
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithMarket restricts search results to a market.
func WithMarket(code string) Option {
	return func(c *Client) {
		c.market = code
	}
}

// WithRequestTimeout sets the per-request timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests. A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client, opts ...Option) *Client {
	c := &Client{
		api:     api,
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClient builds a client authenticated with the client-credentials flow.
// No request is made until the first call.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	// Token refreshes run on this client, outside any request context.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})

	var apiOpts []spotify.ClientOption
	if cfg.APIURL != "" {
		apiOpts = append(apiOpts, spotify.WithBaseURL(cfg.APIURL))
	}
	api := spotify.New(creds.Client(tokenCtx), apiOpts...)

	return New(api,
		WithMarket(cfg.Market),
		WithRequestTimeout(timeout),
		WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	), nil
}

// Connect builds a client and verifies the credentials with a probe request.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Probe(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Probe fetches a known public resource to check connectivity and credentials.
func (c *Client) Probe(ctx context.Context) error {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	if err := c.wait(ctx, "probing"); err != nil {
		return err
	}

	if _, err := c.api.GetPlaylistsForUser(ctx, probeUserID, spotify.Limit(1)); err != nil {
		return newRequestError("probing", err)
	}
	return nil
}

// requestContext bounds a single request by the configured timeout.
func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// wait blocks on the rate limiter, if any.
func (c *Client) wait(ctx context.Context, op string) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return &RequestError{Op: op, Kind: ErrTimeout, Err: err}
	}
	return nil
}
