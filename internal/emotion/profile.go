package emotion

// Energy is the coarse energy level of a profile.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// Profile describes the music that suits an emotion.
type Profile struct {
	Genres      []string `json:"genres"`
	Mood        string   `json:"mood"`
	Energy      Energy   `json:"energy"`
	Description string   `json:"description"`
}

var profiles = map[Label]Profile{
	Happy: {
		Genres:      []string{"pop", "dance", "electronic"},
		Mood:        "upbeat",
		Energy:      EnergyHigh,
		Description: "Upbeat and energetic music to match your happy mood!",
	},
	Sad: {
		Genres:      []string{"acoustic", "chill", "ambient"},
		Mood:        "calm",
		Energy:      EnergyLow,
		Description: "Calming and soothing music to comfort your mood.",
	},
	Angry: {
		Genres:      []string{"rock", "metal", "punk"},
		Mood:        "intense",
		Energy:      EnergyHigh,
		Description: "Powerful and intense music to channel your energy!",
	},
	Fear: {
		Genres:      []string{"ambient", "classical", "instrumental"},
		Mood:        "peaceful",
		Energy:      EnergyLow,
		Description: "Peaceful and calming music to help you relax.",
	},
	Surprise: {
		Genres:      []string{"electronic", "funk", "disco"},
		Mood:        "energetic",
		Energy:      EnergyHigh,
		Description: "Energetic and fun music to match your surprise!",
	},
	Disgust: {
		Genres:      []string{"alternative", "indie", "experimental"},
		Mood:        "unique",
		Energy:      EnergyMedium,
		Description: "Unique and interesting music for your mood.",
	},
	Neutral: {
		Genres:      []string{"lo-fi", "instrumental", "jazz"},
		Mood:        "relaxed",
		Energy:      EnergyMedium,
		Description: "Relaxed and chill music for your neutral mood.",
	},
}

// fallbackProfile is returned for labels outside the taxonomy.
var fallbackProfile = Profile{
	Genres:      []string{"pop"},
	Mood:        "neutral",
	Energy:      EnergyMedium,
	Description: "Music to match your current mood.",
}

// ProfileFor returns the profile for the given label.
// Unknown labels get a generic pop profile; it never fails.
// The returned Genres slice is a copy and may be modified by the caller.
func ProfileFor(l Label) Profile {
	p, ok := profiles[l]
	if !ok {
		return FallbackProfile()
	}
	p.Genres = append([]string(nil), p.Genres...)
	return p
}

// FallbackProfile returns the generic profile used for unrecognized emotions.
func FallbackProfile() Profile {
	p := fallbackProfile
	p.Genres = append([]string(nil), p.Genres...)
	return p
}
