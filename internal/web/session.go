package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/justestif/go-spotify-mood-recommender/internal/history"
)

const (
	sessionCookieName = "session_id"
	sessionTTL        = 24 * time.Hour
	sessionIDBytes    = 32
)

// Session is an anonymous browser session holding its mood history.
type Session struct {
	ID        string
	History   *history.Tracker
	CreatedAt time.Time
}

// SessionStore manages sessions in memory. When a mood log is configured,
// a session unknown to this process (for example after a restart) is resumed
// from the log.
type SessionStore struct {
	log    history.Log
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates a session store. log may be nil.
func NewSessionStore(log history.Log, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		log:      log,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session.
func (s *SessionStore) Create(_ context.Context) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}
	return s.add(id), nil
}

// Get retrieves a live session by ID.
func (s *SessionStore) Get(_ context.Context, id string) *Session {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	// Check if session has expired
	if time.Since(session.CreatedAt) > sessionTTL {
		s.Delete(context.Background(), id)
		return nil
	}

	return session
}

// Delete removes a session by ID.
func (s *SessionStore) Delete(_ context.Context, id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// GetFromRequest extracts the session from the request cookie.
func (s *SessionStore) GetFromRequest(r *http.Request) *Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	if session := s.Get(r.Context(), cookie.Value); session != nil {
		return session
	}
	return s.resume(r.Context(), cookie.Value)
}

// GetOrCreate returns the request's session, starting one and setting the
// cookie if there is none.
func (s *SessionStore) GetOrCreate(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if session := s.GetFromRequest(r); session != nil {
		return session, nil
	}

	session, err := s.Create(r.Context())
	if err != nil {
		return nil, err
	}
	setCookie(w, session)
	return session, nil
}

// resume rebuilds a session from the mood log. It returns nil without a log,
// for malformed IDs, or when the log has no entries for id.
func (s *SessionStore) resume(ctx context.Context, id string) *Session {
	if s.log == nil || !validSessionID(id) {
		return nil
	}

	tracker := history.NewTracker(id, history.WithLog(s.log), history.WithLogger(s.logger))
	if err := tracker.Restore(ctx); err != nil {
		s.logger.Warn("Could not resume session", "error", err)
		return nil
	}
	if len(tracker.Entries()) == 0 {
		return nil
	}

	session := &Session{ID: id, History: tracker, CreatedAt: time.Now()}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[id]; ok {
		return existing
	}
	s.sessions[id] = session
	return session
}

func (s *SessionStore) add(id string) *Session {
	opts := []history.Option{history.WithLogger(s.logger)}
	if s.log != nil {
		opts = append(opts, history.WithLog(s.log))
	}

	session := &Session{
		ID:        id,
		History:   history.NewTracker(id, opts...),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return session
}

// generateSessionID creates a cryptographically random session ID.
func generateSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func validSessionID(id string) bool {
	if len(id) != 2*sessionIDBytes {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// setCookie sets the session cookie on the response.
func setCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})
}
