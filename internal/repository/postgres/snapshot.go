package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/muhandis-app/assistant-api/internal/domain"
)

// SnapshotRepository implements domain.SnapshotRepository on Postgres. The
// conversation state is stored as one JSONB blob per user.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Snapshot, error) {
	var data []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT state FROM conversation_snapshots WHERE user_id = $1`, userID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (r *SnapshotRepository) Save(ctx context.Context, userID uuid.UUID, snapshot *domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO conversation_snapshots (user_id, state, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET state = $2, saved_at = $3
	`
	if _, err := r.db.Pool.Exec(ctx, query, userID, data, snapshot.SavedAt); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Pool.Exec(ctx,
		`DELETE FROM conversation_snapshots WHERE user_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
