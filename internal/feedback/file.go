package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	configDirName    = "mood-recommender"
	feedbackFileName = "feedback.json"
)

// FileStore keeps all counters in one JSON file of the form
// {"<playlist id>": {"likes": n, "dislikes": m}}.
type FileStore struct {
	path string

	mu     sync.Mutex
	counts map[string]Counts
}

var _ Store = (*FileStore)(nil)

// DefaultPath returns the default file location:
// ~/.config/mood-recommender/feedback.json
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config dir: %w", err)
	}
	return filepath.Join(configDir, configDirName, feedbackFileName), nil
}

// OpenFileStore loads the counters at path.
// A missing file is treated as an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		counts: make(map[string]Counts),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading feedback file: %w", err)
	}

	if err := json.Unmarshal(data, &s.counts); err != nil {
		return nil, fmt.Errorf("parsing feedback file: %w", err)
	}
	if s.counts == nil {
		s.counts = make(map[string]Counts)
	}
	return s, nil
}

// Path returns the file path where counters are stored.
func (s *FileStore) Path() string {
	return s.path
}

// Record implements Store. The file is rewritten on every call.
func (s *FileStore) Record(_ context.Context, playlistID string, kind Kind) (Counts, error) {
	if err := validate(playlistID, kind); err != nil {
		return Counts{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.counts[playlistID]
	next := prev.add(kind)
	s.counts[playlistID] = next

	if err := s.save(); err != nil {
		if had {
			s.counts[playlistID] = prev
		} else {
			delete(s.counts, playlistID)
		}
		return Counts{}, err
	}
	return next, nil
}

// Counts implements Store.
func (s *FileStore) Counts(_ context.Context, playlistID string) (Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[playlistID], nil
}

// save writes the counters to a temp file and renames it over the target.
// Callers must hold s.mu.
func (s *FileStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating feedback directory: %w", err)
	}

	data, err := json.MarshalIndent(s.counts, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding feedback: %w", err)
	}

	tmp, err := os.CreateTemp(dir, feedbackFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing feedback file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing feedback file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing feedback file: %w", err)
	}
	return nil
}
