// Package mode holds the service-mode registry: the static mapping from a
// mode identifier to the assistant persona bound to it. Core modes (chat,
// research, image, agent, connectors) have no entry here; a failed lookup
// means "use the default chat configuration".
package mode

import "github.com/muhandis-app/assistant-api/internal/domain"

// Config is the immutable configuration of a service mode.
type Config struct {
	Title              string   `json:"title"`
	Summary            string   `json:"summary"`
	SystemPrompt       string   `json:"-"`
	ComposerHint       string   `json:"composer_hint"`
	DefaultThreadTitle string   `json:"default_thread_title"`
	Tools              []string `json:"tools"`
	Workflow           []string `json:"workflow"`
}

// Lookup returns the configuration for a service mode. The second return is
// false for core modes and unknown identifiers.
func Lookup(m domain.Mode) (Config, bool) {
	cfg, ok := registry[m]
	return cfg, ok
}

// IsService reports whether m has a service-mode configuration.
func IsService(m domain.Mode) bool {
	_, ok := registry[m]
	return ok
}

// List returns all registered service mode identifiers in a stable order.
func List() []domain.Mode {
	return append([]domain.Mode(nil), order...)
}

// Hint returns the composer hint for a mode, falling back to the generic
// chat hint for core modes.
func Hint(m domain.Mode) string {
	if cfg, ok := registry[m]; ok {
		return cfg.ComposerHint
	}
	return DefaultHint
}

// ThreadTitle returns the default title for a new thread in the given mode.
func ThreadTitle(m domain.Mode) string {
	if cfg, ok := registry[m]; ok {
		return cfg.DefaultThreadTitle
	}
	return DefaultThreadTitle
}

// SystemPrompt returns the system prompt bound to a mode, or the default
// assistant prompt for core modes.
func SystemPrompt(m domain.Mode) string {
	if cfg, ok := registry[m]; ok {
		return cfg.SystemPrompt
	}
	return defaultSystemPrompt
}
