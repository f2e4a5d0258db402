package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/assistant"
	"github.com/muhandis-app/assistant-api/internal/chat"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/repository/redis"
	"github.com/rs/zerolog/log"
)

// AssistantService owns one conversation store per authenticated user. It
// restores the store from the snapshot repository on first access and
// persists it after every committed mutation; the redis cache fronts the
// repository on reads.
type AssistantService struct {
	userRepo    domain.UserRepository
	snapshots   domain.SnapshotRepository
	cache       *redis.SnapshotCache
	chatClient  chat.Client
	chatTimeout time.Duration

	mu     sync.Mutex
	stores map[uuid.UUID]*assistant.Store
}

// NewAssistantService creates a new assistant service. cache may be nil.
func NewAssistantService(
	userRepo domain.UserRepository,
	snapshots domain.SnapshotRepository,
	cache *redis.SnapshotCache,
	chatClient chat.Client,
	chatTimeout time.Duration,
) *AssistantService {
	return &AssistantService{
		userRepo:    userRepo,
		snapshots:   snapshots,
		cache:       cache,
		chatClient:  chatClient,
		chatTimeout: chatTimeout,
		stores:      make(map[uuid.UUID]*assistant.Store),
	}
}

// StoreFor returns the user's conversation store, loading the persisted
// snapshot on first access.
func (s *AssistantService) StoreFor(ctx context.Context, userID uuid.UUID) (*assistant.Store, error) {
	s.mu.Lock()
	if store, ok := s.stores[userID]; ok {
		s.mu.Unlock()
		return store, nil
	}
	s.mu.Unlock()

	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have raced the load.
	if store, ok := s.stores[userID]; ok {
		return store, nil
	}

	store := assistant.NewStore(s.chatClient)
	if snap != nil {
		store.Restore(snap)
	}
	store.Subscribe(func() { s.persist(userID, store) })
	s.stores[userID] = store

	return store, nil
}

// Send resolves the caller's identity and role and runs the store's send
// orchestration with the configured completion timeout.
func (s *AssistantService) Send(ctx context.Context, userID uuid.UUID, content string, attachments []domain.Attachment) (*assistant.SendResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}

	store, err := s.StoreFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	sendCtx := ctx
	if s.chatTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.chatTimeout)
		defer cancel()
	}

	return store.Send(sendCtx, assistant.Sender{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, content, attachments)
}

// DeleteState removes the user's persisted conversation state entirely.
func (s *AssistantService) DeleteState(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	delete(s.stores, userID)
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate snapshot cache")
		}
	}
	return s.snapshots.Delete(ctx, userID)
}

func (s *AssistantService) loadSnapshot(ctx context.Context, userID uuid.UUID) (*domain.Snapshot, error) {
	if s.cache != nil {
		if snap, err := s.cache.Get(ctx, userID); err == nil && snap != nil {
			return snap, nil
		}
	}

	snap, err := s.snapshots.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return snap, nil
}

// persist runs as a store listener after each committed mutation. Failures
// are logged, not surfaced: the in-memory state remains authoritative for
// the session.
func (s *AssistantService) persist(userID uuid.UUID, store *assistant.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snap := store.Snapshot()
	if err := s.snapshots.Save(ctx, userID, snap); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to persist snapshot")
		return
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, snap); err != nil {
			log.Warn().Err(err).Msg("failed to cache snapshot")
		}
	}
}
