package mode_test

import (
	"testing"

	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/mode"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		m    domain.Mode
		want bool
	}{
		{"structural analysis", mode.StructuralAnalysis, true},
		{"geotechnical", mode.Geotechnical, true},
		{"mep design", mode.MEPDesign, true},
		{"surveying", mode.Surveying, true},
		{"site supervision", mode.Supervision, true},
		{"cost estimation", mode.CostEstimation, true},

		// Core modes have no service configuration
		{"chat", domain.ModeChat, false},
		{"research", domain.ModeResearch, false},
		{"image", domain.ModeImage, false},
		{"agent", domain.ModeAgent, false},
		{"connectors", domain.ModeConnectors, false},

		{"unknown", domain.Mode("astrology"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, ok := mode.Lookup(tt.m)
			if ok != tt.want {
				t.Errorf("Lookup(%q) ok = %v, want %v", tt.m, ok, tt.want)
			}
			if ok != mode.IsService(tt.m) {
				t.Errorf("IsService(%q) disagrees with Lookup", tt.m)
			}
			if ok && cfg.SystemPrompt == "" {
				t.Errorf("service mode %q has empty system prompt", tt.m)
			}
			if ok && cfg.ComposerHint == "" {
				t.Errorf("service mode %q has empty composer hint", tt.m)
			}
		})
	}
}

func TestList(t *testing.T) {
	modes := mode.List()
	if len(modes) != 6 {
		t.Fatalf("List() returned %d modes, want 6", len(modes))
	}
	if modes[0] != mode.StructuralAnalysis {
		t.Errorf("List()[0] = %q, want %q", modes[0], mode.StructuralAnalysis)
	}

	// The returned slice is a copy.
	modes[0] = "mutated"
	if mode.List()[0] != mode.StructuralAnalysis {
		t.Error("List() exposes internal state")
	}
}

func TestFallbacks(t *testing.T) {
	if got := mode.Hint(domain.ModeChat); got != mode.DefaultHint {
		t.Errorf("Hint(chat) = %q, want default hint", got)
	}
	if got := mode.ThreadTitle(domain.ModeResearch); got != mode.DefaultThreadTitle {
		t.Errorf("ThreadTitle(research) = %q, want default title", got)
	}
	if got := mode.SystemPrompt(domain.ModeChat); got == "" {
		t.Error("SystemPrompt(chat) is empty")
	}

	if got := mode.Hint(mode.Geotechnical); got == mode.DefaultHint {
		t.Error("Hint(geotechnical) fell back to the default hint")
	}
	if got := mode.ThreadTitle(mode.CostEstimation); got != "Cost Estimate" {
		t.Errorf("ThreadTitle(cost-estimation) = %q", got)
	}
}
