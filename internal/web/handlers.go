package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/justestif/go-spotify-mood-recommender/internal/catalog"
	"github.com/justestif/go-spotify-mood-recommender/internal/emotion"
	"github.com/justestif/go-spotify-mood-recommender/internal/feedback"
	"github.com/justestif/go-spotify-mood-recommender/internal/history"
	"github.com/justestif/go-spotify-mood-recommender/internal/recommend"
	"github.com/justestif/go-spotify-mood-recommender/internal/spotify"
)

const (
	defaultTrackLimit = 5
	maxBodyBytes      = 1 << 16
)

// Handlers contains HTTP handlers for the JSON API.
type Handlers struct {
	engine       *recommend.Engine
	feedback     feedback.Store
	sessions     *SessionStore
	defaultLimit int
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(engine *recommend.Engine, store feedback.Store, sessions *SessionStore, defaultLimit int, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		engine:       engine,
		feedback:     store,
		sessions:     sessions,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// Health reports liveness (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type emotionInfo struct {
	Emotion emotion.Label `json:"emotion"`
	Title   string        `json:"title"`
	Emoji   string        `json:"emoji"`
	emotion.Profile
}

// Emotions lists every emotion with its music profile (GET /api/emotions).
func (h *Handlers) Emotions(w http.ResponseWriter, _ *http.Request) {
	labels := emotion.Labels()
	out := make([]emotionInfo, len(labels))
	for i, l := range labels {
		out[i] = emotionInfo{
			Emotion: l,
			Title:   l.Title(),
			Emoji:   l.Emoji(),
			Profile: emotion.ProfileFor(l),
		}
	}
	h.writeJSON(w, http.StatusOK, out)
}

// Languages lists the supported language preferences (GET /api/languages).
func (h *Handlers) Languages(w http.ResponseWriter, _ *http.Request) {
	langs := catalog.Languages()
	out := make([]string, 0, len(langs)+1)
	out = append(out, catalog.Auto)
	for _, l := range langs {
		out = append(out, string(l))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// EmotionSummary describes an emotion and its top playlist
// (GET /api/emotions/{emotion}/summary).
func (h *Handlers) EmotionSummary(w http.ResponseWriter, r *http.Request) {
	summary := h.engine.Summarize(r.Context(), chi.URLParam(r, "emotion"), r.URL.Query().Get("language"))
	h.writeJSON(w, http.StatusOK, summary)
}

// Recommendations returns playlists for an emotion (GET /api/recommendations).
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := h.parseLimit(q.Get("limit"), h.defaultLimit)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	rec := h.engine.RecommendWithReport(r.Context(), q.Get("emotion"), limit, q.Get("language"))
	h.writeJSON(w, http.StatusOK, rec)
}

type tracksResponse struct {
	PlaylistID string          `json:"playlist_id"`
	Tracks     []spotify.Track `json:"tracks"`
	Warning    string          `json:"warning,omitempty"`
}

// PlaylistTracks previews the tracks of a playlist (GET /api/playlists/{id}/tracks).
// Provider problems produce an empty list with a warning.
func (h *Handlers) PlaylistTracks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	limit, err := h.parseLimit(r.URL.Query().Get("limit"), defaultTrackLimit)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	resp := tracksResponse{PlaylistID: id, Tracks: []spotify.Track{}}
	if limit > 0 {
		tracks, err := h.engine.PlaylistTracks(r.Context(), id, limit)
		switch {
		case errors.Is(err, recommend.ErrNotConfigured):
			resp.Warning = "Spotify is not configured"
		case err != nil:
			h.logger.Warn("Could not fetch playlist tracks", "playlist", id, "error", err)
			resp.Warning = "could not fetch playlist tracks"
		default:
			resp.Tracks = tracks
		}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type feedbackRequest struct {
	PlaylistID string `json:"playlist_id"`
	Kind       string `json:"kind"`
}

type feedbackResponse struct {
	PlaylistID string `json:"playlist_id"`
	feedback.Counts
}

// RecordFeedback stores a like or dislike (POST /api/feedback).
func (h *Handlers) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	kind, err := feedback.ParseKind(req.Kind)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "kind must be like or dislike")
		return
	}

	counts, err := h.feedback.Record(r.Context(), req.PlaylistID, kind)
	switch {
	case errors.Is(err, feedback.ErrEmptyID):
		h.writeError(w, http.StatusBadRequest, "playlist_id is required")
		return
	case err != nil:
		h.logger.Error("Could not save feedback", "playlist", req.PlaylistID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "could not save feedback")
		return
	}

	h.writeJSON(w, http.StatusOK, feedbackResponse{PlaylistID: req.PlaylistID, Counts: counts})
}

// Feedback returns the counters for a playlist (GET /api/feedback/{id}).
func (h *Handlers) Feedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	counts, err := h.feedback.Counts(r.Context(), id)
	if err != nil {
		h.logger.Error("Could not load feedback", "playlist", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "could not load feedback")
		return
	}

	h.writeJSON(w, http.StatusOK, feedbackResponse{PlaylistID: id, Counts: counts})
}

type moodRequest struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// RecordMood appends a reading to the session's history (POST /api/mood).
func (h *Handlers) RecordMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Emotion == "" {
		h.writeError(w, http.StatusBadRequest, "emotion is required")
		return
	}
	if req.Confidence < 0 {
		h.writeError(w, http.StatusBadRequest, "confidence must not be negative")
		return
	}

	session, err := h.sessions.GetOrCreate(w, r)
	if err != nil {
		h.logger.Error("Could not create session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	entry := session.History.Record(r.Context(), req.Emotion, req.Confidence)
	h.writeJSON(w, http.StatusCreated, entry)
}

// MoodHistory returns the session's readings, oldest first (GET /api/mood/history).
func (h *Handlers) MoodHistory(w http.ResponseWriter, r *http.Request) {
	entries := []history.Entry{}
	if session := h.sessions.GetFromRequest(r); session != nil {
		entries = session.History.Entries()
	}
	h.writeJSON(w, http.StatusOK, entries)
}

type moodSummaryResponse struct {
	Available         bool             `json:"available"`
	MostFrequent      emotion.Label    `json:"most_frequent_emotion,omitempty"`
	Count             int              `json:"emotion_count"`
	AverageConfidence float64          `json:"avg_confidence"`
	DurationSeconds   float64          `json:"session_duration_seconds"`
	TopPlaylist       *recommend.Entry `json:"top_playlist,omitempty"`
}

// MoodSummary summarizes the session's mood and suggests one playlist for the
// most frequent emotion (GET /api/mood/summary).
func (h *Handlers) MoodSummary(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if session == nil {
		h.writeJSON(w, http.StatusOK, moodSummaryResponse{})
		return
	}

	s, ok := session.History.Summary()
	if !ok {
		h.writeJSON(w, http.StatusOK, moodSummaryResponse{})
		return
	}

	resp := moodSummaryResponse{
		Available:         true,
		MostFrequent:      s.MostFrequent,
		Count:             s.Count,
		AverageConfidence: s.AverageConfidence,
		DurationSeconds:   s.Duration.Round(time.Second).Seconds(),
	}
	if top := h.engine.Recommend(r.Context(), string(s.MostFrequent), 1, r.URL.Query().Get("language")); len(top) > 0 {
		resp.TopPlaylist = &top[0]
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type providerRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type providerResponse struct {
	Configured bool `json:"configured"`
}

// ProviderStatus reports whether Spotify is configured (GET /api/provider).
func (h *Handlers) ProviderStatus(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, providerResponse{Configured: h.engine.Configured()})
}

// ConfigureProvider sets Spotify credentials (POST /api/provider).
// Failed attempts keep any working session and are reported in the body.
func (h *Handlers) ConfigureProvider(w http.ResponseWriter, r *http.Request) {
	var req providerRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ok := h.engine.Configure(r.Context(), req.ClientID, req.ClientSecret)
	h.writeJSON(w, http.StatusOK, providerResponse{Configured: ok})
}

// ============================================================================
// Helper Functions
// ============================================================================

func (h *Handlers) parseLimit(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Could not write response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
