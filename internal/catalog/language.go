package catalog

import "strings"

// Language is a regional language preference used to bias recommendations.
type Language string

const (
	Telugu  Language = "telugu"
	Tamil   Language = "tamil"
	Kannada Language = "kannada"
	Hindi   Language = "hindi"
)

// Auto is the language tag reported when there is no preference.
const Auto = "auto"

// languageAliases maps common alternate spellings to their canonical form.
var languageAliases = map[string]Language{
	"telegu":  Telugu,
	"thelugu": Telugu,
	"tamizh":  Tamil,
	"thamizh": Tamil,
	"kanada":  Kannada,
	"kannad":  Kannada,
	"hindhi":  Hindi,
}

// Languages returns the supported languages in a stable order.
func Languages() []Language {
	return []Language{Telugu, Tamil, Kannada, Hindi}
}

// NormalizeLanguage resolves a user-supplied preference to a supported language.
// It returns false for "", "auto", "none" and anything unsupported, all of which
// mean "no preference".
func NormalizeLanguage(s string) (Language, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := languageAliases[key]; ok {
		return alias, true
	}
	lang := Language(key)
	if _, ok := localizedPlaylists[lang]; !ok {
		return "", false
	}
	return lang, true
}

// Tag returns the language echoed on playlist entries: the canonical language
// name, or Auto when s does not resolve.
func Tag(s string) string {
	if lang, ok := NormalizeLanguage(s); ok {
		return string(lang)
	}
	return Auto
}
