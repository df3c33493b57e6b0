// Package emotion defines the fixed facial-emotion taxonomy and the music profile
// associated with each label.
package emotion

import "strings"

// Label is one of the seven facial-expression categories.
type Label string

const (
	Happy    Label = "happy"
	Sad      Label = "sad"
	Angry    Label = "angry"
	Fear     Label = "fear"
	Surprise Label = "surprise"
	Disgust  Label = "disgust"
	Neutral  Label = "neutral"
)

var labels = []Label{Happy, Sad, Angry, Fear, Surprise, Disgust, Neutral}

// Labels returns every known label in a stable order.
func Labels() []Label {
	out := make([]Label, len(labels))
	copy(out, labels)
	return out
}

// Valid reports whether l is a known label.
func (l Label) Valid() bool {
	_, ok := profiles[l]
	return ok
}

// String implements fmt.Stringer.
func (l Label) String() string {
	return string(l)
}

// Normalize maps free-form input onto a known label.
// Unrecognized input becomes Neutral.
func Normalize(s string) Label {
	l := Label(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return Neutral
	}
	return l
}

// Parse is like Normalize but reports whether the input was recognized.
func Parse(s string) (Label, bool) {
	l := Label(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return Neutral, false
	}
	return l, true
}

var emojis = map[Label]string{
	Happy:    "😀",
	Sad:      "😢",
	Angry:    "😡",
	Fear:     "😨",
	Surprise: "😲",
	Disgust:  "🤢",
	Neutral:  "😐",
}

var titles = map[Label]string{
	Happy:    "Happy",
	Sad:      "Sad",
	Angry:    "Angry",
	Fear:     "Fear",
	Surprise: "Surprised",
	Disgust:  "Disgusted",
	Neutral:  "Neutral",
}

// Emoji returns the display emoji for l, or "" for unknown labels.
func (l Label) Emoji() string {
	return emojis[l]
}

// Title returns a human-readable name for l.
func (l Label) Title() string {
	if t, ok := titles[l]; ok {
		return t
	}
	return string(l)
}
