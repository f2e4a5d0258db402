// Package assistant implements the conversation state store: thread
// lifecycle, optimistic message appends with streaming placeholders,
// composer staging, and session settings. One Store instance holds the
// state of one user session; every UI surface reads and mutates it through
// the methods here, never directly.
package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/chat"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/mode"
)

// lastMessagePreviewLen caps the cached thread preview.
const lastMessagePreviewLen = 100

// Listener is notified after each committed mutation.
type Listener func()

// DirectionNotifier is invoked when RTL is toggled so the rendering layer
// can flip the document direction.
type DirectionNotifier func(rtl bool)

// Store is the conversation state container. All state transitions happen
// under its mutex; listeners are notified after the mutation commits.
type Store struct {
	mu sync.RWMutex

	chatClient chat.Client

	threads        []*domain.Thread
	messages       map[uuid.UUID][]*domain.Message
	activeThreadID uuid.UUID
	activeMode     domain.Mode
	composer       domain.Composer
	settings       domain.Settings

	generating bool
	genToken   uint64
	cancelGen  func()

	dirNotify DirectionNotifier

	listenerMu sync.Mutex
	listeners  map[int]Listener
	nextListen int
}

// NewStore creates an empty store bound to a chat-completion client.
func NewStore(chatClient chat.Client) *Store {
	return &Store{
		chatClient: chatClient,
		messages:   make(map[uuid.UUID][]*domain.Message),
		activeMode: domain.ModeChat,
		composer:   domain.Composer{Language: "ar", Hint: mode.DefaultHint},
		settings:   domain.DefaultSettings(),
		listeners:  make(map[int]Listener),
	}
}

// Subscribe registers a listener called after every committed mutation.
// The returned function unsubscribes it.
func (s *Store) Subscribe(l Listener) func() {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	id := s.nextListen
	s.nextListen++
	s.listeners[id] = l

	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		delete(s.listeners, id)
	}
}

// SetDirectionNotifier installs the rendering-layer hook fired by ToggleRTL.
func (s *Store) SetDirectionNotifier(fn DirectionNotifier) {
	s.mu.Lock()
	s.dirNotify = fn
	s.mu.Unlock()
}

// publish runs outside the state lock.
func (s *Store) publish() {
	s.listenerMu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.listenerMu.Unlock()

	for _, l := range ls {
		l()
	}
}

// Threads returns a copy of the thread list, newest first.
func (s *Store) Threads() []domain.Thread {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Thread, len(s.threads))
	for i, t := range s.threads {
		out[i] = *t
	}
	return out
}

// Thread returns a copy of one thread.
func (s *Store) Thread(id uuid.UUID) (domain.Thread, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t := s.findThread(id); t != nil {
		return *t, true
	}
	return domain.Thread{}, false
}

// Messages returns a copy of a thread's message sequence in append order.
func (s *Store) Messages(threadID uuid.UUID) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[threadID]
	out := make([]domain.Message, len(msgs))
	for i, m := range msgs {
		out[i] = *m
	}
	return out
}

// ActiveThreadID returns the active thread pointer, nil when none is active.
func (s *Store) ActiveThreadID() *uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeThreadID == uuid.Nil {
		return nil
	}
	id := s.activeThreadID
	return &id
}

// ActiveMode returns the currently active mode.
func (s *Store) ActiveMode() domain.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeMode
}

// Composer returns a copy of the composer state.
func (s *Store) Composer() domain.Composer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.composer
}

// Settings returns a copy of the settings.
func (s *Store) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// IsGenerating reports whether a completion request is outstanding.
func (s *Store) IsGenerating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generating
}

// Snapshot exports the persistent subset of the state: threads, active
// pointer, messages, and settings. Composer and the generating flag are
// session-only and excluded.
func (s *Store) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &domain.Snapshot{
		Threads:  make([]domain.Thread, len(s.threads)),
		Messages: make(map[uuid.UUID][]domain.Message, len(s.messages)),
		Settings: s.settings,
		SavedAt:  time.Now(),
	}
	for i, t := range s.threads {
		snap.Threads[i] = *t
	}
	for id, msgs := range s.messages {
		copied := make([]domain.Message, len(msgs))
		for i, m := range msgs {
			copied[i] = *m
		}
		snap.Messages[id] = copied
	}
	if s.activeThreadID != uuid.Nil {
		id := s.activeThreadID
		snap.ActiveThreadID = &id
	}
	return snap
}

// Restore replaces the persistent state from a snapshot. Session-only state
// (composer text, generating flag) is reset.
func (s *Store) Restore(snap *domain.Snapshot) {
	if snap == nil {
		return
	}

	s.mu.Lock()
	s.threads = make([]*domain.Thread, len(snap.Threads))
	for i := range snap.Threads {
		t := snap.Threads[i]
		s.threads[i] = &t
	}
	s.messages = make(map[uuid.UUID][]*domain.Message, len(snap.Messages))
	for id, msgs := range snap.Messages {
		copied := make([]*domain.Message, len(msgs))
		for i := range msgs {
			m := msgs[i]
			copied[i] = &m
		}
		s.messages[id] = copied
	}
	s.settings = snap.Settings
	s.activeThreadID = uuid.Nil
	s.activeMode = domain.ModeChat
	if snap.ActiveThreadID != nil {
		if t := s.findThread(*snap.ActiveThreadID); t != nil {
			s.activeThreadID = t.ID
			s.activeMode = t.Mode
		}
	}
	s.composer.Hint = mode.Hint(s.activeMode)
	s.generating = false
	s.mu.Unlock()

	s.publish()
}

// findThread must be called with the lock held.
func (s *Store) findThread(id uuid.UUID) *domain.Thread {
	for _, t := range s.threads {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// findMessage must be called with the lock held. Message ids are globally
// unique, so the search spans all threads.
func (s *Store) findMessage(id uuid.UUID) *domain.Message {
	for _, msgs := range s.messages {
		for _, m := range msgs {
			if m.ID == id {
				return m
			}
		}
	}
	return nil
}

func truncatePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= lastMessagePreviewLen {
		return content
	}
	return string(runes[:lastMessagePreviewLen])
}
