package assistant

import (
	"time"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/mode"
)

// CreateThread allocates a new thread in the given mode, inserts it at the
// front of the list, and makes it active. The composer hint is re-derived
// from the mode's configuration. Always succeeds.
func (s *Store) CreateThread(m domain.Mode) domain.Thread {
	s.mu.Lock()
	now := time.Now()
	t := &domain.Thread{
		ID:        uuid.New(),
		Title:     mode.ThreadTitle(m),
		Mode:      m,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.threads = append([]*domain.Thread{t}, s.threads...)
	s.activeThreadID = t.ID
	s.activeMode = m
	s.composer.Hint = mode.Hint(m)
	created := *t
	s.mu.Unlock()

	s.publish()
	return created
}

// SetActiveThread switches the active-thread pointer and mode to an
// existing thread. Unknown ids are a silent no-op.
func (s *Store) SetActiveThread(id uuid.UUID) {
	s.mu.Lock()
	t := s.findThread(id)
	if t == nil {
		s.mu.Unlock()
		return
	}
	s.activeThreadID = t.ID
	s.activeMode = t.Mode
	s.composer.Hint = mode.Hint(t.Mode)
	s.mu.Unlock()

	s.publish()
}

// SwitchMode applies the one-thread-per-mode-activation rule: if the active
// thread already has this mode only the composer hint is refreshed,
// otherwise a new thread is created in the requested mode.
func (s *Store) SwitchMode(m domain.Mode) domain.Thread {
	s.mu.Lock()
	if active := s.findThread(s.activeThreadID); active != nil && active.Mode == m {
		s.activeMode = m
		s.composer.Hint = mode.Hint(m)
		current := *active
		s.mu.Unlock()
		s.publish()
		return current
	}
	s.mu.Unlock()

	return s.CreateThread(m)
}

// StarThread toggles the star flag. Unknown ids are a silent no-op.
func (s *Store) StarThread(id uuid.UUID) {
	s.toggleFlag(id, func(t *domain.Thread) { t.IsStarred = !t.IsStarred })
}

// ArchiveThread toggles the archive flag. Unknown ids are a silent no-op.
// Archiving does not affect the visibility of the thread's history.
func (s *Store) ArchiveThread(id uuid.UUID) {
	s.toggleFlag(id, func(t *domain.Thread) { t.IsArchived = !t.IsArchived })
}

func (s *Store) toggleFlag(id uuid.UUID, apply func(*domain.Thread)) {
	s.mu.Lock()
	t := s.findThread(id)
	if t == nil {
		s.mu.Unlock()
		return
	}
	apply(t)
	s.mu.Unlock()

	s.publish()
}

// RenameThread sets a thread's display title. Unknown ids are a silent no-op.
func (s *Store) RenameThread(id uuid.UUID, title string) {
	s.mu.Lock()
	t := s.findThread(id)
	if t == nil {
		s.mu.Unlock()
		return
	}
	t.Title = title
	t.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.publish()
}

// DeleteThread removes a thread and its message collection atomically. If
// the deleted thread was active, the active pointer and the active
// service-mode marker are cleared.
func (s *Store) DeleteThread(id uuid.UUID) {
	s.mu.Lock()
	idx := -1
	for i, t := range s.threads {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return
	}

	s.threads = append(s.threads[:idx], s.threads[idx+1:]...)
	delete(s.messages, id)

	if s.activeThreadID == id {
		s.activeThreadID = uuid.Nil
		s.activeMode = domain.ModeChat
		s.composer.Hint = mode.DefaultHint
	}
	s.mu.Unlock()

	s.publish()
}
