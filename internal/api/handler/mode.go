package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/muhandis-app/assistant-api/internal/api/response"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/mode"
)

// ListModes returns the service-mode catalog
func ListModes(w http.ResponseWriter, r *http.Request) {
	modes := make([]map[string]any, 0, len(mode.List()))
	for _, m := range mode.List() {
		cfg, _ := mode.Lookup(m)
		modes = append(modes, map[string]any{
			"id":                   m,
			"title":                cfg.Title,
			"summary":              cfg.Summary,
			"composer_hint":        cfg.ComposerHint,
			"default_thread_title": cfg.DefaultThreadTitle,
			"tools":                cfg.Tools,
			"workflow":             cfg.Workflow,
		})
	}

	response.OK(w, map[string]any{"modes": modes})
}

// GetMode returns one service-mode configuration
func GetMode(w http.ResponseWriter, r *http.Request) {
	id := domain.Mode(chi.URLParam(r, "modeID"))

	cfg, ok := mode.Lookup(id)
	if !ok {
		response.NotFound(w, "mode not found")
		return
	}

	response.OK(w, map[string]any{
		"id":                   id,
		"title":                cfg.Title,
		"summary":              cfg.Summary,
		"composer_hint":        cfg.ComposerHint,
		"default_thread_title": cfg.DefaultThreadTitle,
		"tools":                cfg.Tools,
		"workflow":             cfg.Workflow,
	})
}
