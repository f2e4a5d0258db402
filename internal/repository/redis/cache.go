package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/domain"
)

const (
	snapshotCachePrefix = "snapshot:"
	snapshotCacheTTL    = 10 * time.Minute
)

// SnapshotCache fronts the snapshot store with a per-user read-through
// cache in Redis.
type SnapshotCache struct {
	client *Client
}

// NewSnapshotCache creates a new snapshot cache
func NewSnapshotCache(client *Client) *SnapshotCache {
	return &SnapshotCache{client: client}
}

// Get retrieves the cached snapshot for a user
func (c *SnapshotCache) Get(ctx context.Context, userID uuid.UUID) (*domain.Snapshot, error) {
	key := fmt.Sprintf("%s%s", snapshotCachePrefix, userID.String())

	data, err := c.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snap, nil
}

// Set caches the snapshot for a user
func (c *SnapshotCache) Set(ctx context.Context, userID uuid.UUID, snap *domain.Snapshot) error {
	key := fmt.Sprintf("%s%s", snapshotCachePrefix, userID.String())

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return c.client.rdb.Set(ctx, key, data, snapshotCacheTTL).Err()
}

// Invalidate removes the cached snapshot for a user
func (c *SnapshotCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	key := fmt.Sprintf("%s%s", snapshotCachePrefix, userID.String())
	return c.client.rdb.Del(ctx, key).Err()
}
