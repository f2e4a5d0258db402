// Package sqlite provides an embedded snapshot store for single-node and
// development deployments.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/config"
	"github.com/muhandis-app/assistant-api/internal/domain"
	_ "modernc.org/sqlite"
)

// SnapshotRepository implements domain.SnapshotRepository on a local SQLite
// file.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository opens (and initializes) the SQLite database file.
func NewSnapshotRepository(cfg config.SQLiteConfig) (*SnapshotRepository, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite database path is required")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS conversation_snapshots (
			user_id  TEXT PRIMARY KEY,
			state    TEXT NOT NULL,
			saved_at TIMESTAMP NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SnapshotRepository{db: db}, nil
}

// Close closes the database handle.
func (r *SnapshotRepository) Close() error {
	return r.db.Close()
}

func (r *SnapshotRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Snapshot, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT state FROM conversation_snapshots WHERE user_id = ?`, userID.String(),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
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
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET state = excluded.state, saved_at = excluded.saved_at
	`
	if _, err := r.db.ExecContext(ctx, query, userID.String(), data, snapshot.SavedAt); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM conversation_snapshots WHERE user_id = ?`, userID.String(),
	); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
