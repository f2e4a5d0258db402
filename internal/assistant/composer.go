package assistant

import (
	"github.com/muhandis-app/assistant-api/internal/domain"
)

// SetText replaces the composer text.
func (s *Store) SetText(text string) {
	s.mu.Lock()
	s.composer.Text = text
	s.mu.Unlock()

	s.publish()
}

// SeedPrompt fills the composer from a quick-action prompt.
func (s *Store) SeedPrompt(text string) {
	s.SetText(text)
}

// AttachFile stages a file on the composer.
func (s *Store) AttachFile(a domain.Attachment) {
	s.mu.Lock()
	s.composer.Attachments = append(s.composer.Attachments, a)
	s.mu.Unlock()

	s.publish()
}

// RemoveAttachment removes the first staged attachment with the given name.
// Unknown names are a silent no-op.
func (s *Store) RemoveAttachment(name string) {
	s.mu.Lock()
	for i, a := range s.composer.Attachments {
		if a.Name == name {
			s.composer.Attachments = append(s.composer.Attachments[:i], s.composer.Attachments[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.publish()
}

// StartVoiceRecording begins a voice capture.
func (s *Store) StartVoiceRecording() {
	s.mu.Lock()
	s.composer.Voice = domain.VoiceState{IsRecording: true}
	s.mu.Unlock()

	s.publish()
}

// StopVoiceRecording ends a voice capture, keeping the transcript gathered
// so far.
func (s *Store) StopVoiceRecording(durationSec float64) {
	s.mu.Lock()
	s.composer.Voice.IsRecording = false
	s.composer.Voice.DurationSec = durationSec
	s.mu.Unlock()

	s.publish()
}

// SetVoiceTranscript records the transcript and appends it to the composer
// text, space-separated. The transcript never replaces typed text.
func (s *Store) SetVoiceTranscript(transcript string) {
	s.mu.Lock()
	s.composer.Voice.Transcript = transcript
	if transcript != "" {
		if s.composer.Text == "" {
			s.composer.Text = transcript
		} else {
			s.composer.Text += " " + transcript
		}
	}
	s.mu.Unlock()

	s.publish()
}

// SetLanguage sets the composer language.
func (s *Store) SetLanguage(lang string) {
	s.mu.Lock()
	s.composer.Language = lang
	s.mu.Unlock()

	s.publish()
}

// ToggleTranslate flips the composer translate flag.
func (s *Store) ToggleTranslate() {
	s.mu.Lock()
	s.composer.Translate = !s.composer.Translate
	s.mu.Unlock()

	s.publish()
}

// ClearComposer wipes text, attachments, and voice state. Language,
// translate flag, and the derived hint are preserved.
func (s *Store) ClearComposer() {
	s.mu.Lock()
	s.clearComposerLocked()
	s.mu.Unlock()

	s.publish()
}

func (s *Store) clearComposerLocked() {
	s.composer.Text = ""
	s.composer.Attachments = nil
	s.composer.Voice = domain.VoiceState{}
}
