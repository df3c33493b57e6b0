package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FeedbackRepository handles playlist feedback database operations.
type FeedbackRepository struct {
	pool *pgxpool.Pool
}

// Increment adds to the counters of a playlist, creating the row if needed,
// and returns the new totals.
func (r *FeedbackRepository) Increment(ctx context.Context, playlistID string, likes, dislikes int) (*FeedbackCount, error) {
	query := `
		INSERT INTO playlist_feedback (playlist_id, likes, dislikes, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (playlist_id) DO UPDATE SET
			likes = playlist_feedback.likes + EXCLUDED.likes,
			dislikes = playlist_feedback.dislikes + EXCLUDED.dislikes,
			updated_at = NOW()
		RETURNING playlist_id, likes, dislikes, updated_at
	`
	var fc FeedbackCount
	err := r.pool.QueryRow(ctx, query, playlistID, likes, dislikes).Scan(
		&fc.PlaylistID,
		&fc.Likes,
		&fc.Dislikes,
		&fc.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("incrementing feedback: %w", err)
	}
	return &fc, nil
}

// Get retrieves the counters for a playlist.
func (r *FeedbackRepository) Get(ctx context.Context, playlistID string) (*FeedbackCount, error) {
	query := `
		SELECT playlist_id, likes, dislikes, updated_at
		FROM playlist_feedback
		WHERE playlist_id = $1
	`
	var fc FeedbackCount
	err := r.pool.QueryRow(ctx, query, playlistID).Scan(
		&fc.PlaylistID,
		&fc.Likes,
		&fc.Dislikes,
		&fc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	return &fc, nil
}
