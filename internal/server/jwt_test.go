package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
)

func newTestJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-at-least-32-characters-long",
		ExpirationHours: 1,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, db.RoleEmployer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, db.RoleEmployer, claims.GetRole())
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken(uuid.New(), db.RoleJobSeeker)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := newTestJWTService().GenerateToken(uuid.New(), db.RoleJobSeeker)
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{
		Secret:          "a-completely-different-signing-secret!!",
		ExpirationHours: 1,
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
