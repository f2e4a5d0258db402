package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/config"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "conversation_snapshots"

// SnapshotRepository implements domain.SnapshotRepository on MongoDB. The
// snapshot is stored as one JSON blob per user, matching the other
// backends.
type SnapshotRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type snapshotDoc struct {
	UserID  string    `bson:"_id"`
	State   []byte    `bson:"state"`
	SavedAt time.Time `bson:"saved_at"`
}

// NewSnapshotRepository connects to MongoDB and verifies the connection.
func NewSnapshotRepository(ctx context.Context, cfg config.MongoConfig) (*SnapshotRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	return &SnapshotRepository{
		client: client,
		coll:   client.Database(cfg.Database).Collection(collectionName),
	}, nil
}

// Close disconnects the client.
func (r *SnapshotRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

func (r *SnapshotRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Snapshot, error) {
	var doc snapshotDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": userID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(doc.State, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (r *SnapshotRepository) Save(ctx context.Context, userID uuid.UUID, snapshot *domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	doc := snapshotDoc{
		UserID:  userID.String(),
		State:   data,
		SavedAt: snapshot.SavedAt,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": userID.String()}, doc, opts); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": userID.String()}); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
