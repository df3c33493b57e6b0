// Package config loads application settings from defaults, an optional config
// file and environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/justestif/go-spotify-mood-recommender/internal/spotify"
)

// ErrInvalidConfig is returned when a setting is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds application settings.
type Config struct {
	SpotifyID      string
	SpotifySecret  string
	SpotifyMarket  string
	Addr           string
	RequestTimeout time.Duration
	RateLimit      float64 // requests per second; 0 disables limiting
	RateBurst      int
	DefaultLimit   int
	FeedbackPath   string // empty means the per-user default
	DatabaseURL    string // empty means feedback is kept in FeedbackPath
	LogLevel       string
	LogFormat      string
}

// Load reads settings. Environment variables override the file at path, which
// overrides the defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		SpotifyID:      v.GetString("SPOTIFY_ID"),
		SpotifySecret:  v.GetString("SPOTIFY_SECRET"),
		SpotifyMarket:  v.GetString("SPOTIFY_MARKET"),
		Addr:           v.GetString("ADDR"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		RateLimit:      v.GetFloat64("RATE_LIMIT"),
		RateBurst:      v.GetInt("RATE_BURST"),
		DefaultLimit:   v.GetInt("DEFAULT_LIMIT"),
		FeedbackPath:   v.GetString("FEEDBACK_PATH"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		LogLevel:       strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:      strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SPOTIFY_MARKET", "")
	v.SetDefault("ADDR", "127.0.0.1:8080")
	v.SetDefault("REQUEST_TIMEOUT", spotify.DefaultRequestTimeout)
	v.SetDefault("RATE_LIMIT", 10.0)
	v.SetDefault("RATE_BURST", 5)
	v.SetDefault("DEFAULT_LIMIT", 10)
	v.SetDefault("FEEDBACK_PATH", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: ADDR is empty", ErrInvalidConfig)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: REQUEST_TIMEOUT must be positive, got %s", ErrInvalidConfig, c.RequestTimeout)
	case c.RateLimit < 0:
		return fmt.Errorf("%w: RATE_LIMIT must not be negative, got %v", ErrInvalidConfig, c.RateLimit)
	case c.RateLimit > 0 && c.RateBurst < 1:
		return fmt.Errorf("%w: RATE_BURST must be at least 1 when RATE_LIMIT is set, got %d", ErrInvalidConfig, c.RateBurst)
	case c.DefaultLimit < 1:
		return fmt.Errorf("%w: DEFAULT_LIMIT must be at least 1, got %d", ErrInvalidConfig, c.DefaultLimit)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown LOG_LEVEL %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown LOG_FORMAT %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// HasSpotifyCredentials reports whether both Spotify credentials are set.
func (c *Config) HasSpotifyCredentials() bool {
	return c.SpotifyID != "" && c.SpotifySecret != ""
}

// Spotify returns the Spotify client settings.
func (c *Config) Spotify() spotify.Config {
	return spotify.Config{
		ClientID:       c.SpotifyID,
		ClientSecret:   c.SpotifySecret,
		Market:         c.SpotifyMarket,
		RequestTimeout: c.RequestTimeout,
		RateLimit:      c.RateLimit,
		RateBurst:      c.RateBurst,
	}
}
