package domain

// VoiceState is the composer's voice-recording sub-state.
type VoiceState struct {
	IsRecording bool    `json:"is_recording"`
	DurationSec float64 `json:"duration_sec"`
	Transcript  string  `json:"transcript"`
}

// Composer is the transient input-staging area preceding a send.
// It is session-scoped and never persisted across the clear operation.
//
// Hint is derived from the active mode's configuration and is not
// user-settable.
type Composer struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Voice       VoiceState   `json:"voice"`
	Language    string       `json:"language"`
	Translate   bool         `json:"translate"`
	Hint        string       `json:"hint"`
}
