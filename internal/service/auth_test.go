package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/testhelpers"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	return NewAuthService(db, "test-secret", "let-me-in")
}

func TestRegister(t *testing.T) {
	t.Run("creates a regular user", func(t *testing.T) {
		auth := newAuthService(t)
		user, err := auth.Register("Cook@Example.com", "password123", "")
		require.NoError(t, err)
		assert.Equal(t, "cook@example.com", user.Email)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.NotEqual(t, "password123", user.PasswordHash)
	})

	t.Run("admin invite grants admin role", func(t *testing.T) {
		auth := newAuthService(t)
		user, err := auth.Register("admin@example.com", "password123", "LET-ME-IN")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("wrong invite yields regular user", func(t *testing.T) {
		auth := newAuthService(t)
		user, err := auth.Register("user@example.com", "password123", "wrong-code")
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		auth := newAuthService(t)
		_, err := auth.Register("dup@example.com", "password123", "")
		require.NoError(t, err)
		_, err = auth.Register("DUP@example.com", "password456", "")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	auth := newAuthService(t)
	_, err := auth.Register("cook@example.com", "password123", "")
	require.NoError(t, err)

	t.Run("valid credentials return a token", func(t *testing.T) {
		token, user, err := auth.Login("cook@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "cook@example.com", user.Email)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := auth.Login("cook@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		_, _, err := auth.Login("ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	auth := newAuthService(t)
	user, err := auth.Register("cook@example.com", "password123", "let-me-in")
	require.NoError(t, err)

	token, _, err := auth.Login("cook@example.com", "password123")
	require.NoError(t, err)

	t.Run("round trips claims", func(t *testing.T) {
		claims, err := auth.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, models.RoleAdmin, claims.Role)
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other := NewAuthService(testhelpers.NewTestDB(t), "other-secret", "")
		_, err := other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := auth.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}
