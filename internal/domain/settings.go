package domain

// Settings is the process-wide preference bag, persisted with the snapshot.
type Settings struct {
	RTL           bool    `json:"rtl"`
	Hijri         bool    `json:"hijri"`
	Temperature   float64 `json:"temperature"`
	VoiceEnabled  bool    `json:"voice_enabled"`
	AutoTranslate bool    `json:"auto_translate"`
}

// DefaultSettings returns the first-load defaults. Arabic-first platform:
// RTL and the Hijri calendar start enabled.
func DefaultSettings() Settings {
	return Settings{
		RTL:          true,
		Hijri:        true,
		Temperature:  0.7,
		VoiceEnabled: true,
	}
}
