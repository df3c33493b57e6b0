package db

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackCount holds the like and dislike totals for a playlist.
type FeedbackCount struct {
	PlaylistID string
	Likes      int
	Dislikes   int
	UpdatedAt  time.Time
}

// MoodEntry is one recorded emotion reading for a web session.
type MoodEntry struct {
	ID         uuid.UUID
	SessionID  string
	Emotion    string
	Confidence float64
	RecordedAt time.Time
}
