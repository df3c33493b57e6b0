package feedback

import (
	"context"
	"errors"

	"github.com/justestif/go-spotify-mood-recommender/internal/db"
)

// DBStore keeps counters in PostgreSQL.
type DBStore struct {
	repo *db.FeedbackRepository
}

var _ Store = (*DBStore)(nil)

// NewDBStore creates a Store backed by the feedback repository.
func NewDBStore(repo *db.FeedbackRepository) *DBStore {
	return &DBStore{repo: repo}
}

// Record implements Store.
func (s *DBStore) Record(ctx context.Context, playlistID string, kind Kind) (Counts, error) {
	if err := validate(playlistID, kind); err != nil {
		return Counts{}, err
	}

	delta := Counts{}.add(kind)
	fc, err := s.repo.Increment(ctx, playlistID, delta.Likes, delta.Dislikes)
	if err != nil {
		return Counts{}, err
	}
	return Counts{Likes: fc.Likes, Dislikes: fc.Dislikes}, nil
}

// Counts implements Store.
func (s *DBStore) Counts(ctx context.Context, playlistID string) (Counts, error) {
	fc, err := s.repo.Get(ctx, playlistID)
	if errors.Is(err, db.ErrNotFound) {
		return Counts{}, nil
	}
	if err != nil {
		return Counts{}, err
	}
	return Counts{Likes: fc.Likes, Dislikes: fc.Dislikes}, nil
}
