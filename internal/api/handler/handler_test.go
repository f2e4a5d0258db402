package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/muhandis-app/assistant-api/internal/api/handler"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["success"] != true {
		t.Error("expected success to be true")
	}

	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}
	if data["status"] != "ok" {
		t.Errorf("expected status ok, got %v", data["status"])
	}
}

func TestListModes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/modes", nil)
	rec := httptest.NewRecorder()

	handler.ListModes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}

	modes, ok := data["modes"].([]any)
	if !ok {
		t.Fatal("expected modes to be a list")
	}
	if len(modes) != 6 {
		t.Errorf("expected 6 service modes, got %d", len(modes))
	}

	first, ok := modes[0].(map[string]any)
	if !ok {
		t.Fatal("expected mode entry to be a map")
	}
	if first["id"] != "structural-analysis" {
		t.Errorf("expected first mode structural-analysis, got %v", first["id"])
	}
	if first["composer_hint"] == "" {
		t.Error("expected a composer hint")
	}
}

func TestGetMode(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/modes/{modeID}", handler.GetMode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/modes/geotechnical", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}
	if data["id"] != "geotechnical" {
		t.Errorf("expected id geotechnical, got %v", data["id"])
	}
	if data["title"] != "Geotechnical" {
		t.Errorf("expected title Geotechnical, got %v", data["title"])
	}

	// Core modes have no registry entry.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/modes/chat", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
