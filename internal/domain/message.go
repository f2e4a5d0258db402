package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Attachment is an opaque file reference carried with a message.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Mime string `json:"mime,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// Citation is a source reference attached to an assistant reply.
type Citation struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
	Source  string `json:"source,omitempty"`
}

// GeneratedImage is an image produced by the assistant in image mode.
type GeneratedImage struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
	Size   string `json:"size,omitempty"`
}

// Message represents one entry in a thread's conversation sequence.
//
// Role is immutable after creation. Assistant messages are created as
// streaming placeholders (IsStreaming=true, empty content) and mutated in
// place exactly once to reach a terminal state; IsStreaming never goes
// false -> true.
type Message struct {
	ID          uuid.UUID        `json:"id"`
	ThreadID    uuid.UUID        `json:"thread_id"`
	Role        MessageRole      `json:"role"`
	Content     string           `json:"content"`
	Mode        Mode             `json:"mode"`
	CreatedAt   time.Time        `json:"created_at"`
	Attachments []Attachment     `json:"attachments,omitempty"`
	Citations   []Citation       `json:"citations,omitempty"`
	Images      []GeneratedImage `json:"images,omitempty"`
	IsStreaming bool             `json:"is_streaming"`
	Error       string           `json:"error,omitempty"`
}

// MessagePatch is a partial update applied to an existing message.
// Nil fields are left untouched.
type MessagePatch struct {
	Content     *string          `json:"content,omitempty"`
	IsStreaming *bool            `json:"is_streaming,omitempty"`
	Error       *string          `json:"error,omitempty"`
	Citations   []Citation       `json:"citations,omitempty"`
	Images      []GeneratedImage `json:"images,omitempty"`
}
