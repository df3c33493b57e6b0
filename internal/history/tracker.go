// Package history keeps the recent mood readings of a session and summarizes them.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/justestif/go-spotify-mood-recommender/internal/emotion"
)

// MaxEntries is how many readings a Tracker keeps.
const MaxEntries = 50

// Entry is one mood reading.
type Entry struct {
	Emotion    emotion.Label `json:"emotion"`
	Confidence float64       `json:"confidence"`
	At         time.Time     `json:"at"`
}

// Summary describes a session's mood so far.
type Summary struct {
	MostFrequent      emotion.Label `json:"most_frequent_emotion"`
	Count             int           `json:"emotion_count"`
	AverageConfidence float64       `json:"avg_confidence"`
	Duration          time.Duration `json:"-"`
}

// MarshalJSON encodes Duration as whole seconds.
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	return json.Marshal(struct {
		plain
		DurationSeconds float64 `json:"session_duration_seconds"`
	}{
		plain:           plain(s),
		DurationSeconds: s.Duration.Round(time.Second).Seconds(),
	})
}

// Log persists mood readings beyond the lifetime of a Tracker.
type Log interface {
	Append(ctx context.Context, sessionID string, e Entry) error
	Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error)
}

// Tracker holds the newest MaxEntries readings of one session.
// It is safe for concurrent use.
type Tracker struct {
	sessionID string
	log       Log
	now       func() time.Time
	logger    *slog.Logger

	mu      sync.Mutex
	entries []Entry
	start   time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLog mirrors every reading to l.
func WithLog(l Log) Option {
	return func(t *Tracker) {
		t.log = l
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger sets the logger used when the log cannot be written.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTracker creates an empty tracker for a session.
func NewTracker(sessionID string, opts ...Option) *Tracker {
	t := &Tracker{
		sessionID: sessionID,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.start = t.now()
	return t
}

// Restore loads the newest readings from the log, replacing what is in memory.
// It is a no-op without a log.
func (t *Tracker) Restore(ctx context.Context) error {
	if t.log == nil {
		return nil
	}

	entries, err := t.log.Recent(ctx, t.sessionID, MaxEntries)
	if err != nil {
		return fmt.Errorf("restoring mood history: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = trim(entries)
	if len(t.entries) > 0 && t.entries[0].At.Before(t.start) {
		t.start = t.entries[0].At
	}
	return nil
}

// Record appends a reading. Unknown emotions are stored as neutral.
// A failure to write the log is logged and does not lose the in-memory entry.
func (t *Tracker) Record(ctx context.Context, label string, confidence float64) Entry {
	e := Entry{
		Emotion:    emotion.Normalize(label),
		Confidence: confidence,
		At:         t.now(),
	}

	t.mu.Lock()
	t.entries = trim(append(t.entries, e))
	t.mu.Unlock()

	if t.log != nil {
		if err := t.log.Append(ctx, t.sessionID, e); err != nil {
			t.logger.Warn("Could not persist mood entry", "session", t.sessionID, "error", err)
		}
	}
	return e
}

// Entries returns a copy of the readings, oldest first.
func (t *Tracker) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.entries)
}

// Summary reports the most frequent emotion, the number of readings, their
// average confidence and the session duration. Ties go to the emotion seen
// first. It returns false when there are no readings.
func (t *Tracker) Summary() (Summary, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) == 0 {
		return Summary{}, false
	}

	counts := make(map[emotion.Label]int)
	var order []emotion.Label
	var total float64
	for _, e := range t.entries {
		if counts[e.Emotion] == 0 {
			order = append(order, e.Emotion)
		}
		counts[e.Emotion]++
		total += e.Confidence
	}

	top := order[0]
	for _, l := range order[1:] {
		if counts[l] > counts[top] {
			top = l
		}
	}

	return Summary{
		MostFrequent:      top,
		Count:             len(t.entries),
		AverageConfidence: total / float64(len(t.entries)),
		Duration:          t.now().Sub(t.start),
	}, true
}

func trim(entries []Entry) []Entry {
	if len(entries) > MaxEntries {
		return slices.Clone(entries[len(entries)-MaxEntries:])
	}
	return entries
}
