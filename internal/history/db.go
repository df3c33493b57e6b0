package history

import (
	"context"

	"github.com/justestif/go-spotify-mood-recommender/internal/db"
	"github.com/justestif/go-spotify-mood-recommender/internal/emotion"
)

// DBLog stores mood readings in PostgreSQL.
type DBLog struct {
	repo *db.MoodRepository
}

var _ Log = (*DBLog)(nil)

// NewDBLog creates a Log backed by the mood repository.
func NewDBLog(repo *db.MoodRepository) *DBLog {
	return &DBLog{repo: repo}
}

// Append implements Log.
func (l *DBLog) Append(ctx context.Context, sessionID string, e Entry) error {
	return l.repo.Insert(ctx, &db.MoodEntry{
		SessionID:  sessionID,
		Emotion:    string(e.Emotion),
		Confidence: e.Confidence,
		RecordedAt: e.At,
	})
}

// Recent implements Log.
func (l *DBLog) Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	rows, err := l.repo.ListRecent(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{
			Emotion:    emotion.Normalize(r.Emotion),
			Confidence: r.Confidence,
			At:         r.RecordedAt,
		}
	}
	return entries, nil
}
