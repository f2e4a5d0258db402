package security_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *security.JWTManager {
	return security.NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newManager()
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "eng@example.sa", domain.RoleEngineer)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "eng@example.sa", claims.Email)
	assert.Equal(t, domain.RoleEngineer, claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newManager()
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := newManager()
	other := security.NewJWTManager("other-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "a@b.sa", domain.RoleClient)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := security.NewJWTManager("test-secret", -time.Minute, -time.Minute)

	token, err := m.GenerateAccessToken(uuid.New(), "a@b.sa", domain.RoleClient)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := newManager()

	_, err := m.ValidateAccessToken("not.a.token")
	assert.Error(t, err)

	_, err = m.ValidateRefreshToken("")
	assert.Error(t, err)
}

func TestTokenPair(t *testing.T) {
	m := newManager()

	access, refresh, expiresIn, err := m.GenerateTokenPair(uuid.New(), "a@b.sa", domain.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), expiresIn)
}
