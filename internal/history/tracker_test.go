package history

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/justestif/go-spotify-mood-recommender/internal/emotion"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type memLog struct {
	mu        sync.Mutex
	entries   map[string][]Entry
	appendErr error
}

func newMemLog() *memLog {
	return &memLog{entries: make(map[string][]Entry)}
}

func (m *memLog) Append(_ context.Context, sessionID string, e Entry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sessionID] = append(m.entries[sessionID], e)
	return nil
}

func (m *memLog) Recent(_ context.Context, sessionID string, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.entries[sessionID]
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return append([]Entry(nil), all...), nil
}

func TestTrackerSummary(t *testing.T) {
	tests := []struct {
		name     string
		readings []string
		conf     []float64
		want     emotion.Label
		wantAvg  float64
	}{
		{
			name:     "single",
			readings: []string{"happy"},
			conf:     []float64{0.9},
			want:     emotion.Happy,
			wantAvg:  0.9,
		},
		{
			name:     "most frequent wins",
			readings: []string{"sad", "happy", "happy"},
			conf:     []float64{0.3, 0.6, 0.9},
			want:     emotion.Happy,
			wantAvg:  0.6,
		},
		{
			name:     "tie goes to first seen",
			readings: []string{"angry", "fear", "fear", "angry"},
			conf:     []float64{0.5, 0.5, 0.5, 0.5},
			want:     emotion.Angry,
			wantAvg:  0.5,
		},
		{
			name:     "unknown stored as neutral",
			readings: []string{"bored", "sleepy", "happy"},
			conf:     []float64{0.4, 0.4, 0.4},
			want:     emotion.Neutral,
			wantAvg:  0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &clock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
			tr := NewTracker("s1", WithClock(c.now))

			for i, r := range tt.readings {
				c.advance(time.Minute)
				tr.Record(context.Background(), r, tt.conf[i])
			}

			got, ok := tr.Summary()
			if !ok {
				t.Fatal("Summary() ok = false, want true")
			}
			if got.MostFrequent != tt.want {
				t.Errorf("MostFrequent = %s, want %s", got.MostFrequent, tt.want)
			}
			if got.Count != len(tt.readings) {
				t.Errorf("Count = %d, want %d", got.Count, len(tt.readings))
			}
			if diff := got.AverageConfidence - tt.wantAvg; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("AverageConfidence = %f, want %f", got.AverageConfidence, tt.wantAvg)
			}
			if want := time.Duration(len(tt.readings)) * time.Minute; got.Duration != want {
				t.Errorf("Duration = %v, want %v", got.Duration, want)
			}
		})
	}
}

func TestTrackerSummaryEmpty(t *testing.T) {
	tr := NewTracker("s1")
	if _, ok := tr.Summary(); ok {
		t.Error("Summary() ok = true for empty tracker")
	}
}

func TestSummaryJSON(t *testing.T) {
	s := Summary{
		MostFrequent:      emotion.Happy,
		Count:             3,
		AverageConfidence: 0.5,
		Duration:          2*time.Minute + 400*time.Millisecond,
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got["session_duration_seconds"] != 120.0 {
		t.Errorf("session_duration_seconds = %v, want 120", got["session_duration_seconds"])
	}
	if _, ok := got["Duration"]; ok {
		t.Error("raw Duration field was encoded")
	}
	if got["most_frequent_emotion"] != "happy" || got["emotion_count"] != 3.0 {
		t.Errorf("encoded summary = %s", data)
	}
}

func TestTrackerKeepsNewest(t *testing.T) {
	tr := NewTracker("s1")
	for i := 0; i < MaxEntries+7; i++ {
		tr.Record(context.Background(), "sad", float64(i))
	}

	entries := tr.Entries()
	if len(entries) != MaxEntries {
		t.Fatalf("len(Entries()) = %d, want %d", len(entries), MaxEntries)
	}
	if entries[0].Confidence != 7 {
		t.Errorf("oldest kept confidence = %v, want 7", entries[0].Confidence)
	}
	if last := entries[len(entries)-1].Confidence; last != MaxEntries+6 {
		t.Errorf("newest confidence = %v, want %d", last, MaxEntries+6)
	}
}

func TestTrackerEntriesIsCopy(t *testing.T) {
	tr := NewTracker("s1")
	tr.Record(context.Background(), "happy", 0.5)

	entries := tr.Entries()
	entries[0].Emotion = emotion.Sad

	if got := tr.Entries()[0].Emotion; got != emotion.Happy {
		t.Errorf("stored emotion = %s, want happy", got)
	}
}

func TestTrackerLog(t *testing.T) {
	ctx := context.Background()
	log := newMemLog()
	c := &clock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}

	first := NewTracker("s1", WithLog(log), WithClock(c.now))
	first.Record(ctx, "happy", 0.8)
	c.advance(time.Hour)
	first.Record(ctx, "sad", 0.4)

	c.advance(time.Hour)
	second := NewTracker("s1", WithLog(log), WithClock(c.now))
	if err := second.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	entries := second.Entries()
	if len(entries) != 2 || entries[0].Emotion != emotion.Happy || entries[1].Emotion != emotion.Sad {
		t.Fatalf("restored entries = %+v, want happy then sad", entries)
	}

	// The session started with the oldest restored reading.
	s, _ := second.Summary()
	if s.Duration != 2*time.Hour {
		t.Errorf("Duration = %v, want 2h", s.Duration)
	}

	other := NewTracker("s2", WithLog(log))
	if err := other.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if n := len(other.Entries()); n != 0 {
		t.Errorf("other session restored %d entries, want 0", n)
	}
}

func TestTrackerLogFailureKeepsEntry(t *testing.T) {
	log := newMemLog()
	log.appendErr = errors.New("database down")
	tr := NewTracker("s1", WithLog(log), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	tr.Record(context.Background(), "fear", 0.7)

	if n := len(tr.Entries()); n != 1 {
		t.Errorf("len(Entries()) = %d, want 1", n)
	}
}

func TestRestoreWithoutLog(t *testing.T) {
	tr := NewTracker("s1")
	if err := tr.Restore(context.Background()); err != nil {
		t.Errorf("Restore() error = %v, want nil", err)
	}
}
