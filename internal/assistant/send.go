package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/chat"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/mode"
	"github.com/rs/zerolog/log"
)

// FallbackReply replaces the assistant content when a completion fails.
const FallbackReply = "Sorry, I could not generate a response. Please try again."

// Sender identifies the authenticated user issuing a send.
type Sender struct {
	UserID uuid.UUID
	Email  string
	Role   domain.Role
}

// SendResult reports the two messages produced by one send: the optimistic
// user message and the assistant message in its terminal state.
type SendResult struct {
	UserMessage      domain.Message `json:"user_message"`
	AssistantMessage domain.Message `json:"assistant_message"`
}

// AppendMessage assigns a fresh id and timestamp, appends the message to its
// thread, and updates the thread's cached MessageCount and LastMessage in
// the same mutation. Always succeeds.
func (s *Store) AppendMessage(msg domain.Message) domain.Message {
	s.mu.Lock()
	appended := s.appendLocked(msg)
	s.mu.Unlock()

	s.publish()
	return appended
}

func (s *Store) appendLocked(msg domain.Message) domain.Message {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now()

	m := msg
	s.messages[m.ThreadID] = append(s.messages[m.ThreadID], &m)

	if t := s.findThread(m.ThreadID); t != nil {
		t.MessageCount = len(s.messages[m.ThreadID])
		t.LastMessage = truncatePreview(m.Content)
		t.UpdatedAt = m.CreatedAt
	}
	return m
}

// PatchMessage shallow-merges the non-nil fields of patch into the message
// with the given id. Unknown ids are a silent no-op. A message that already
// left the streaming state cannot re-enter it.
func (s *Store) PatchMessage(id uuid.UUID, patch domain.MessagePatch) {
	s.mu.Lock()
	ok := s.patchLocked(id, patch)
	s.mu.Unlock()

	if ok {
		s.publish()
	}
}

func (s *Store) patchLocked(id uuid.UUID, patch domain.MessagePatch) bool {
	m := s.findMessage(id)
	if m == nil {
		return false
	}

	if patch.Content != nil {
		m.Content = *patch.Content
	}
	if patch.IsStreaming != nil && !*patch.IsStreaming {
		m.IsStreaming = false
	}
	if patch.Error != nil {
		m.Error = *patch.Error
	}
	if patch.Citations != nil {
		m.Citations = patch.Citations
	}
	if patch.Images != nil {
		m.Images = patch.Images
	}

	// Keep the thread preview in sync when the patched message is the
	// latest one in its thread.
	if msgs := s.messages[m.ThreadID]; len(msgs) > 0 && msgs[len(msgs)-1].ID == m.ID {
		if t := s.findThread(m.ThreadID); t != nil {
			t.LastMessage = truncatePreview(m.Content)
		}
	}
	return true
}

// Send runs the full send orchestration: it ensures an active thread,
// appends the optimistic user message, clears the composer, inserts a
// streaming assistant placeholder, calls the completion client with a
// bounded history window, and patches the placeholder with the final
// content or the fallback error reply. Remote failures are absorbed into
// the placeholder and never returned to the caller.
//
// A send issued while another completion is outstanding is rejected with
// domain.ErrGenerationInProgress and mutates nothing.
func (s *Store) Send(ctx context.Context, sender Sender, content string, attachments []domain.Attachment) (*SendResult, error) {
	if sender.UserID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return nil, domain.ErrGenerationInProgress
	}

	// 1. Ensure an active thread in the current mode.
	active := s.findThread(s.activeThreadID)
	if active == nil {
		now := time.Now()
		active = &domain.Thread{
			ID:        uuid.New(),
			Title:     mode.ThreadTitle(s.activeMode),
			Mode:      s.activeMode,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.threads = append([]*domain.Thread{active}, s.threads...)
		s.activeThreadID = active.ID
		s.composer.Hint = mode.Hint(s.activeMode)
	}

	language := s.composer.Language
	temperature := s.settings.Temperature

	// 2. Optimistic user message: visible immediately, never rolled back.
	userMsg := s.appendLocked(domain.Message{
		ThreadID:    active.ID,
		Role:        domain.RoleUser,
		Content:     content,
		Mode:        active.Mode,
		Attachments: attachments,
	})

	// 3. Clear the composer.
	s.clearComposerLocked()

	// 4-5. Raise the generating flag and insert the streaming placeholder.
	s.generating = true
	s.genToken++
	token := s.genToken

	placeholder := s.appendLocked(domain.Message{
		ThreadID:    active.ID,
		Role:        domain.RoleAssistant,
		Mode:        active.Mode,
		IsStreaming: true,
	})

	// 6. Bounded history window: the thread's prior messages, excluding the
	// new user message (carried in Request.Message) and the placeholder.
	msgs := s.messages[active.ID]
	prior := msgs[:len(msgs)-2]
	start := 0
	if len(prior) > chat.HistoryWindow {
		start = len(prior) - chat.HistoryWindow
	}
	history := make([]chat.Turn, 0, len(prior)-start)
	for _, m := range prior[start:] {
		history = append(history, chat.Turn{Role: m.Role, Content: m.Content})
	}

	req := chat.Request{
		Message:      content,
		ThreadID:     active.ID,
		Role:         sender.Role,
		Language:     language,
		Mode:         active.Mode,
		SystemPrompt: mode.SystemPrompt(active.Mode),
		Temperature:  temperature,
		Attachments:  attachments,
		History:      history,
	}

	genCtx, cancel := context.WithCancel(ctx)
	s.cancelGen = cancel
	threadID := active.ID
	threadMode := active.Mode
	s.mu.Unlock()

	s.publish()

	// 7. Await the completion.
	resp, err := s.chatClient.Complete(genCtx, req)
	cancel()

	s.mu.Lock()
	stale := token != s.genToken

	if !stale {
		if m := s.findMessage(placeholder.ID); m != nil && m.IsStreaming {
			if err != nil {
				// 9. Failure is absorbed into the placeholder.
				errText := "The assistant could not respond. Please try again."
				s.patchLocked(placeholder.ID, domain.MessagePatch{
					Content:     strPtr(FallbackReply),
					IsStreaming: boolPtr(false),
					Error:       strPtr(errText),
				})
				log.Error().Err(err).
					Str("thread_id", threadID.String()).
					Str("mode", string(threadMode)).
					Msg("completion failed")
			} else {
				// 8. Success: final content replaces the placeholder.
				s.patchLocked(placeholder.ID, domain.MessagePatch{
					Content:     strPtr(resp.Text),
					IsStreaming: boolPtr(false),
				})
			}
		}
		// 10. Always clear the generating flag for this send.
		s.generating = false
		s.cancelGen = nil
	}

	// The thread may have been deleted while the call was in flight; fall
	// back to the placeholder's last known state.
	final := placeholder
	final.IsStreaming = false
	if m := s.findMessage(placeholder.ID); m != nil {
		final = *m
	}
	s.mu.Unlock()

	s.publish()

	return &SendResult{UserMessage: userMsg, AssistantMessage: final}, nil
}

// StopGeneration hard-cancels the in-flight completion: the generating flag
// drops, the outstanding request context is cancelled, the generation token
// is invalidated so a late-arriving result is ignored, and every message
// still streaming is forced to its terminal state with whatever content it
// has.
func (s *Store) StopGeneration() {
	s.mu.Lock()
	s.generating = false
	s.genToken++
	if s.cancelGen != nil {
		s.cancelGen()
		s.cancelGen = nil
	}
	for _, msgs := range s.messages {
		for _, m := range msgs {
			if m.IsStreaming {
				m.IsStreaming = false
			}
		}
	}
	s.mu.Unlock()

	s.publish()
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
