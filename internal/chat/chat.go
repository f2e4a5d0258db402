package chat

import (
	"context"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/domain"
)

// Turn is one entry of the bounded conversation-history window passed to a
// provider.
type Turn struct {
	Role    domain.MessageRole
	Content string
}

// Request contains everything a provider needs to produce one completion.
type Request struct {
	Message      string
	ThreadID     uuid.UUID
	Role         domain.Role
	Language     string
	Mode         domain.Mode
	SystemPrompt string
	Temperature  float64
	Attachments  []domain.Attachment
	History      []Turn
}

// Response contains a provider's completion result
type Response struct {
	Text       string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for chat-completion backends
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Complete generates one assistant reply for the request
	Complete(ctx context.Context, req Request, model string) (*Response, error)
}

// Client is the single completion entry point the assistant store depends
// on; the Router satisfies it with its default provider.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
