package spotify

// Playlist is a search result from the Spotify catalog.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
	TrackCount  int    `json:"tracks_total"`
}

// Track is a playlist item prepared for preview.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"` // First artist, or "Unknown"
	Album      string `json:"album"`
	URL        string `json:"url,omitempty"`
	DurationMs int    `json:"duration_ms"`
}
