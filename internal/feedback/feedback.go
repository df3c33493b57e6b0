// Package feedback records likes and dislikes for recommended playlists.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidKind is returned for feedback other than like or dislike.
	ErrInvalidKind = errors.New("invalid feedback kind")
	// ErrEmptyID is returned when no playlist ID is given.
	ErrEmptyID = errors.New("playlist id is required")
)

// Kind is the type of feedback.
type Kind string

const (
	Like    Kind = "like"
	Dislike Kind = "dislike"
)

// ParseKind parses a feedback kind, ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Like, Dislike:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Counts holds the feedback totals for one playlist.
type Counts struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

func (c Counts) add(k Kind) Counts {
	switch k {
	case Like:
		c.Likes++
	case Dislike:
		c.Dislikes++
	}
	return c
}

// Store persists feedback counters.
type Store interface {
	// Record adds one piece of feedback and returns the new totals.
	Record(ctx context.Context, playlistID string, kind Kind) (Counts, error)
	// Counts returns the totals for a playlist; unknown playlists have zero counts.
	Counts(ctx context.Context, playlistID string) (Counts, error)
}

func validate(playlistID string, kind Kind) error {
	if playlistID == "" {
		return ErrEmptyID
	}
	if kind != Like && kind != Dislike {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return nil
}
