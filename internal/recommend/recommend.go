package recommend

import (
	"context"
	"fmt"

	"github.com/justestif/go-spotify-mood-recommender/internal/catalog"
	"github.com/justestif/go-spotify-mood-recommender/internal/emotion"
)

const (
	// maxQueryGenres is how many profile genres become language-biased queries.
	maxQueryGenres = 2

	// searchPrealloc caps the buffers reserved for a search pass.
	searchPrealloc = 50
)

// Recommend returns at most limit playlists for an emotion.
// See RecommendWithReport.
func (e *Engine) Recommend(ctx context.Context, emotionName string, limit int, language string) []Entry {
	return e.RecommendWithReport(ctx, emotionName, limit, language).Entries
}

// RecommendWithReport returns at most limit playlists for an emotion along with
// any soft warnings raised by Spotify.
//
// Unknown emotions are treated as neutral and unknown languages as no
// preference. Entries are ordered localized defaults first, then Spotify search
// results, then generic defaults. Spotify failures never fail the call; they
// only drop the affected search or enrichment step.
func (e *Engine) RecommendWithReport(ctx context.Context, emotionName string, limit int, language string) Recommendation {
	label := emotion.Normalize(emotionName)
	lang, hasLang := catalog.NormalizeLanguage(language)
	tag := catalog.Tag(language)

	rec := Recommendation{
		Emotion:  label,
		Language: tag,
		Entries:  []Entry{},
	}
	if limit <= 0 {
		return rec
	}

	var localized []Entry
	if hasLang {
		localized = fromStubs(catalog.LocalizedDefaultsFor(label, string(lang)), tag)
	}
	generic := fromStubs(catalog.DefaultPlaylistsFor(label), tag)

	provider := e.session()
	if provider == nil {
		rec.Entries = truncate(concat(localized, generic), limit)
		return rec
	}

	found, err := e.search(ctx, provider, searchQueries(label, lang, hasLang), limit, tag)
	if err != nil {
		e.logger.Warn("Could not fetch Spotify playlists", "emotion", label, "language", tag, "error", err)
		rec.Degraded = true
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("could not fetch Spotify playlists: %v", err))
		found = nil
	}

	// Enrichment only changes entries in place, so it can run after truncation.
	entries := truncate(concat(localized, found, generic), limit)
	e.enrich(ctx, provider, entries, lang, hasLang, tag)

	rec.Entries = entries
	return rec
}

// search runs the queries in order and collects up to limit playlists,
// skipping IDs already seen. Any error discards the whole pass.
func (e *Engine) search(ctx context.Context, p Provider, queries []string, limit int, tag string) ([]Entry, error) {
	seen := make(map[string]struct{}, min(limit, searchPrealloc))
	found := make([]Entry, 0, min(limit, searchPrealloc))

	for _, q := range queries {
		if len(found) >= limit {
			break
		}

		results, err := p.SearchPlaylists(ctx, q, limit)
		if err != nil {
			return nil, fmt.Errorf("searching %q: %w", q, err)
		}

		for _, r := range results {
			if r.ID == "" {
				continue
			}
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			found = append(found, fromPlaylist(r, tag))
			if len(found) >= limit {
				break
			}
		}
	}

	return found, nil
}

// enrich fills in links for entries that lack one using a single-result name
// search. Failures are logged and skipped per entry.
func (e *Engine) enrich(ctx context.Context, p Provider, entries []Entry, lang catalog.Language, hasLang bool, tag string) {
	for i := range entries {
		if entries[i].URL != nil {
			continue
		}

		query := enrichQuery(entries[i].Name, lang, hasLang)
		playlist, ok, err := e.urls.lookup(ctx, p, query)
		if err != nil {
			e.logger.Debug("Playlist link lookup failed", "query", query, "error", err)
			continue
		}
		if !ok {
			continue
		}

		entries[i].link(playlist)
		entries[i].Language = tag
	}
}

// searchQueries builds the ordered search pass queries.
func searchQueries(label emotion.Label, lang catalog.Language, hasLang bool) []string {
	profile := emotion.ProfileFor(label)

	if !hasLang {
		return []string{fmt.Sprintf("%s %s music", label, profile.Mood)}
	}

	queries := []string{
		fmt.Sprintf("%s %s music", lang, profile.Mood),
		fmt.Sprintf("%s %s playlist", lang, label),
	}
	for _, genre := range profile.Genres[:min(maxQueryGenres, len(profile.Genres))] {
		queries = append(queries, fmt.Sprintf("%s %s playlist", lang, genre))
	}
	return queries
}

// enrichQuery builds the name search used to find a link for an entry.
func enrichQuery(name string, lang catalog.Language, hasLang bool) string {
	if hasLang {
		return fmt.Sprintf("%s %s", lang, name)
	}
	return name
}

func concat(parts ...[]Entry) []Entry {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]Entry, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func truncate(entries []Entry, limit int) []Entry {
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
