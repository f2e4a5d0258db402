package assistant

// ToggleRTL flips the text-direction preference and notifies the rendering
// layer through the installed direction notifier.
func (s *Store) ToggleRTL() {
	s.mu.Lock()
	s.settings.RTL = !s.settings.RTL
	rtl := s.settings.RTL
	notify := s.dirNotify
	s.mu.Unlock()

	if notify != nil {
		notify(rtl)
	}
	s.publish()
}

// ToggleHijri flips the Hijri calendar display preference.
func (s *Store) ToggleHijri() {
	s.mu.Lock()
	s.settings.Hijri = !s.settings.Hijri
	s.mu.Unlock()

	s.publish()
}

// SetTemperature sets the generation temperature, clamped to [0, 2].
func (s *Store) SetTemperature(t float64) {
	if t < 0 {
		t = 0
	}
	if t > 2 {
		t = 2
	}

	s.mu.Lock()
	s.settings.Temperature = t
	s.mu.Unlock()

	s.publish()
}

// ToggleVoice flips the voice-input preference.
func (s *Store) ToggleVoice() {
	s.mu.Lock()
	s.settings.VoiceEnabled = !s.settings.VoiceEnabled
	s.mu.Unlock()

	s.publish()
}

// ToggleAutoTranslate flips the automatic-translation preference.
func (s *Store) ToggleAutoTranslate() {
	s.mu.Lock()
	s.settings.AutoTranslate = !s.settings.AutoTranslate
	s.mu.Unlock()

	s.publish()
}
