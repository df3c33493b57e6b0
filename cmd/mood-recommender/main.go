// Command mood-recommender serves emotion-based playlist recommendations over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/justestif/go-spotify-mood-recommender/internal/config"
	"github.com/justestif/go-spotify-mood-recommender/internal/db"
	"github.com/justestif/go-spotify-mood-recommender/internal/feedback"
	"github.com/justestif/go-spotify-mood-recommender/internal/history"
	"github.com/justestif/go-spotify-mood-recommender/internal/logging"
	"github.com/justestif/go-spotify-mood-recommender/internal/recommend"
	"github.com/justestif/go-spotify-mood-recommender/internal/web"
)

const startupTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	engine := recommend.New(
		recommend.WithConnector(recommend.SpotifyConnector(cfg.Spotify())),
		recommend.WithLogger(logger),
	)
	if cfg.HasSpotifyCredentials() {
		engine.Configure(ctx, cfg.SpotifyID, cfg.SpotifySecret)
	} else {
		logger.Info("Spotify credentials not set, serving default playlists until configured")
	}

	serverCfg := web.ServerConfig{
		Addr:         cfg.Addr,
		Engine:       engine,
		DefaultLimit: cfg.DefaultLimit,
		Logger:       logger,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}

		serverCfg.Feedback = feedback.NewDBStore(database.Feedback())
		serverCfg.MoodLog = history.NewDBLog(database.Moods())
		logger.Info("Using PostgreSQL for feedback and mood history")
	} else {
		path := cfg.FeedbackPath
		if path == "" {
			path, err = feedback.DefaultPath()
			if err != nil {
				return err
			}
		}

		store, err := feedback.OpenFileStore(path)
		if err != nil {
			return fmt.Errorf("opening feedback file: %w", err)
		}
		serverCfg.Feedback = store
		logger.Info("Using feedback file", "path", store.Path())
	}

	server, err := web.NewServer(serverCfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}
