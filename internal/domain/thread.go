package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mode identifies the assistant configuration a thread is bound to.
// Core modes share the default chat configuration; service modes carry
// their own persona (see the mode package).
type Mode string

const (
	ModeChat       Mode = "chat"
	ModeResearch   Mode = "research"
	ModeImage      Mode = "image"
	ModeAgent      Mode = "agent"
	ModeConnectors Mode = "connectors"
)

// IsCore reports whether m is one of the built-in conversation modes.
func (m Mode) IsCore() bool {
	switch m {
	case ModeChat, ModeResearch, ModeImage, ModeAgent, ModeConnectors:
		return true
	}
	return false
}

// Thread represents a single conversation, scoped to one mode.
//
// MessageCount and LastMessage are denormalized caches maintained by the
// assistant store inside the same mutation that appends a message; they are
// never set independently.
type Thread struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Mode         Mode      `json:"mode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	IsStarred    bool      `json:"is_starred"`
	IsArchived   bool      `json:"is_archived"`
	MessageCount int       `json:"message_count"`
	LastMessage  string    `json:"last_message,omitempty"`
}
