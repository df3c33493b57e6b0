package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MoodRepository handles mood history database operations.
type MoodRepository struct {
	pool *pgxpool.Pool
}

// Insert stores a mood entry, assigning an ID if it has none.
func (r *MoodRepository) Insert(ctx context.Context, entry *MoodEntry) error {
	query := `
		INSERT INTO mood_entries (id, session_id, emotion, confidence, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.SessionID,
		entry.Emotion,
		entry.Confidence,
		entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting mood entry: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries for a session, oldest first.
func (r *MoodRepository) ListRecent(ctx context.Context, sessionID string, limit int) ([]MoodEntry, error) {
	query := `
		SELECT id, session_id, emotion, confidence, recorded_at
		FROM (
			SELECT id, session_id, emotion, confidence, recorded_at
			FROM mood_entries
			WHERE session_id = $1
			ORDER BY recorded_at DESC
			LIMIT $2
		) recent
		ORDER BY recorded_at ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying mood entries: %w", err)
	}
	defer rows.Close()

	var entries []MoodEntry
	for rows.Next() {
		var e MoodEntry
		if err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.Emotion,
			&e.Confidence,
			&e.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning mood entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mood entries: %w", err)
	}
	return entries, nil
}
