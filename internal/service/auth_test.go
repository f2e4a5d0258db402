package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/security"
	"github.com/muhandis-app/assistant-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memUserRepo is an in-memory domain.UserRepository for tests.
type memUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

func newAuthService(repo domain.UserRepository) *service.AuthService {
	jwtManager := security.NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	return service.NewAuthService(repo, jwtManager)
}

func TestRegister(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), domain.UserCreate{
		Email:    "eng@example.sa",
		Phone:    "+966501234567",
		Password: "correct horse battery",
		Role:     domain.RoleEngineer,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, domain.RoleEngineer, user.Role)

	// Password is stored hashed.
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery"))
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	input := domain.UserCreate{
		Email:    "eng@example.sa",
		Password: "correct horse battery",
		Role:     domain.RoleClient,
	}

	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	assert.Error(t, err)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newAuthService(newMemUserRepo())

	_, err := svc.Register(context.Background(), domain.UserCreate{
		Email:    "eng@example.sa",
		Password: "correct horse battery",
		Role:     "superuser",
	})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), domain.UserCreate{
		Email:    "client@example.sa",
		Password: "correct horse battery",
		Role:     domain.RoleClient,
	})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), domain.UserLogin{
		Email:    "client@example.sa",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), tokens.ExpiresIn)

	_, err = svc.Login(context.Background(), domain.UserLogin{
		Email:    "client@example.sa",
		Password: "wrong",
	})
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), domain.UserLogin{
		Email:    "nobody@example.sa",
		Password: "correct horse battery",
	})
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), domain.UserCreate{
		Email:    "ent@example.sa",
		Password: "correct horse battery",
		Role:     domain.RoleEnterprise,
	})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), domain.UserLogin{
		Email:    "ent@example.sa",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.Error(t, err)
}
