package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the durable conversation state for one user, serialized as a
// single named blob: thread list, active-thread pointer, messages keyed by
// thread, and settings. The composer and the generating flag are
// session-only and excluded.
type Snapshot struct {
	Threads        []Thread                `json:"threads"`
	ActiveThreadID *uuid.UUID              `json:"active_thread_id,omitempty"`
	Messages       map[uuid.UUID][]Message `json:"messages"`
	Settings       Settings                `json:"settings"`
	SavedAt        time.Time               `json:"saved_at"`
}

// SnapshotRepository stores one snapshot blob per user.
// Get returns (nil, nil) when the user has no snapshot yet.
type SnapshotRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*Snapshot, error)
	Save(ctx context.Context, userID uuid.UUID, snapshot *Snapshot) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
